package http

import (
	"context"
	"io"

	"github.com/MKhiriev/traveltrek/internal/service"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/models"
)

// ─────────────────────────────────────────────
// AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	registerFn          func(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error)
	loginFn             func(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)
	memberLoginFn       func(ctx context.Context, req models.MemberLoginRequest) (models.MemberLoginResult, error)
	setMemberPasswordFn func(ctx context.Context, req models.SetMemberPasswordRequest) (models.AuthResult, error)
	forgotPasswordFn    func(ctx context.Context, req models.ForgotPasswordRequest) error
	resetPasswordFn     func(ctx context.Context, req models.ResetPasswordRequest) error
	googleSignInFn      func(ctx context.Context, req models.GoogleAuthRequest) (models.AuthResult, error)
	authenticateFn      func(ctx context.Context, tokenString string) (models.User, error)
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	return m.loginFn(ctx, req)
}

func (m *mockAuthService) MemberLogin(ctx context.Context, req models.MemberLoginRequest) (models.MemberLoginResult, error) {
	return m.memberLoginFn(ctx, req)
}

func (m *mockAuthService) SetMemberPassword(ctx context.Context, req models.SetMemberPasswordRequest) (models.AuthResult, error) {
	return m.setMemberPasswordFn(ctx, req)
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	return m.forgotPasswordFn(ctx, req)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	return m.resetPasswordFn(ctx, req)
}

func (m *mockAuthService) GoogleSignIn(ctx context.Context, req models.GoogleAuthRequest) (models.AuthResult, error) {
	return m.googleSignInFn(ctx, req)
}

func (m *mockAuthService) CreateToken(context.Context, models.User) (models.Token, error) {
	return models.Token{}, nil
}

func (m *mockAuthService) ParseToken(context.Context, string) (models.Token, error) {
	return models.Token{}, nil
}

// Authenticate resolves the token "<role>-token" to a user with that role
// unless authenticateFn is set.
func (m *mockAuthService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, tokenString)
	}
	if user, ok := tokenUsers[tokenString]; ok {
		return user, nil
	}
	return models.User{}, service.ErrTokenIsExpiredOrInvalid
}

var tokenUsers = map[string]models.User{
	"user-token":    {ID: 1, Name: "Asha", Email: "asha@example.com", Role: models.RoleUser},
	"support-token": {ID: 2, Name: "Sam", Email: "sam@example.com", Role: models.RoleSupport},
	"ops-token":     {ID: 3, Name: "Olu", Email: "olu@example.com", Role: models.RoleOps},
	"admin-token":   {ID: 4, Name: "Ada", Email: "ada@example.com", Role: models.RoleAdmin},
}

// ─────────────────────────────────────────────
// MembershipService
// ─────────────────────────────────────────────

type mockMembershipService struct {
	enrollFn        func(ctx context.Context, req models.EnrollRequest) (models.EnrollResult, error)
	choosePlanFn    func(ctx context.Context, userID int64, planType models.PlanType) (models.ChoosePlanResult, error)
	getFn           func(ctx context.Context, userID int64) (models.MembershipState, error)
	cancelFn        func(ctx context.Context, userID int64) error
	paymentDoneFn   func(ctx context.Context, userID int64, req models.PaymentDoneRequest) error
	activateFn      func(ctx context.Context, id int64) (models.ActivationResult, error)
	rejectFn        func(ctx context.Context, id int64, reason string) (models.RejectionResult, error)
	extendFn        func(ctx context.Context, id int64, ext models.MembershipExtension) (models.Membership, error)
	applyOverrideFn func(ctx context.Context, id int64, override models.MembershipOverride) (models.Membership, error)
	recordUsageFn   func(ctx context.Context, id int64, days int) (models.Membership, error)
	listFn          func(ctx context.Context, status *models.MembershipStatus) ([]models.MembershipWithUser, error)
}

func (m *mockMembershipService) Enroll(ctx context.Context, req models.EnrollRequest) (models.EnrollResult, error) {
	return m.enrollFn(ctx, req)
}

func (m *mockMembershipService) ChoosePlan(ctx context.Context, userID int64, planType models.PlanType) (models.ChoosePlanResult, error) {
	return m.choosePlanFn(ctx, userID, planType)
}

func (m *mockMembershipService) Get(ctx context.Context, userID int64) (models.MembershipState, error) {
	return m.getFn(ctx, userID)
}

func (m *mockMembershipService) Cancel(ctx context.Context, userID int64) error {
	return m.cancelFn(ctx, userID)
}

func (m *mockMembershipService) MarkPaymentDone(ctx context.Context, userID int64, req models.PaymentDoneRequest) error {
	return m.paymentDoneFn(ctx, userID, req)
}

func (m *mockMembershipService) Activate(ctx context.Context, id int64) (models.ActivationResult, error) {
	return m.activateFn(ctx, id)
}

func (m *mockMembershipService) Reject(ctx context.Context, id int64, reason string) (models.RejectionResult, error) {
	return m.rejectFn(ctx, id, reason)
}

func (m *mockMembershipService) Extend(ctx context.Context, id int64, ext models.MembershipExtension) (models.Membership, error) {
	return m.extendFn(ctx, id, ext)
}

func (m *mockMembershipService) ApplyOverride(ctx context.Context, id int64, override models.MembershipOverride) (models.Membership, error) {
	return m.applyOverrideFn(ctx, id, override)
}

func (m *mockMembershipService) RecordUsage(ctx context.Context, id int64, days int) (models.Membership, error) {
	return m.recordUsageFn(ctx, id, days)
}

func (m *mockMembershipService) List(ctx context.Context, status *models.MembershipStatus) ([]models.MembershipWithUser, error) {
	return m.listFn(ctx, status)
}

// ─────────────────────────────────────────────
// PlanService / DestinationService
// ─────────────────────────────────────────────

type mockPlanService struct {
	plans    []models.PlanConfig
	err      error
	updateFn func(ctx context.Context, id int64, update models.PlanConfigUpdate) (models.PlanConfig, error)
}

func (m *mockPlanService) ListActive(context.Context) ([]models.PlanConfig, error) {
	var active []models.PlanConfig
	for _, p := range m.plans {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, m.err
}

func (m *mockPlanService) ListAll(context.Context) ([]models.PlanConfig, error) {
	return m.plans, m.err
}

func (m *mockPlanService) Update(ctx context.Context, id int64, update models.PlanConfigUpdate) (models.PlanConfig, error) {
	return m.updateFn(ctx, id, update)
}

type mockDestinationService struct {
	destinations []models.Destination
	createFn     func(ctx context.Context, req models.DestinationCreate) (models.Destination, error)
	updateFn     func(ctx context.Context, id int64, update models.DestinationUpdate) (models.Destination, error)
	deleteFn     func(ctx context.Context, id int64) error
}

func (m *mockDestinationService) List(context.Context) ([]models.Destination, error) {
	return m.destinations, nil
}

func (m *mockDestinationService) Get(_ context.Context, id int64) (models.Destination, error) {
	for _, d := range m.destinations {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Destination{}, store.ErrDestinationNotFound
}

func (m *mockDestinationService) Create(ctx context.Context, req models.DestinationCreate) (models.Destination, error) {
	return m.createFn(ctx, req)
}

func (m *mockDestinationService) Update(ctx context.Context, id int64, update models.DestinationUpdate) (models.Destination, error) {
	return m.updateFn(ctx, id, update)
}

func (m *mockDestinationService) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

// ─────────────────────────────────────────────
// UserService
// ─────────────────────────────────────────────

type mockUserService struct {
	getProfileFn            func(ctx context.Context, userID int64) (models.User, error)
	updateProfileFn         func(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error)
	updateFCMTokenFn        func(ctx context.Context, userID int64, token string) error
	requestProfileChangeFn  func(ctx context.Context, userID int64, req models.ProfileChangeRequest) error
	verifyProfileChangeFn   func(ctx context.Context, userID int64, req models.ProfileChangeVerify) (models.User, error)
	requestPasswordChangeFn func(ctx context.Context, userID int64, req models.PasswordChangeRequest) error
	verifyPasswordChangeFn  func(ctx context.Context, userID int64, req models.PasswordChangeVerify) error
}

func (m *mockUserService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	return m.getProfileFn(ctx, userID)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error) {
	return m.updateProfileFn(ctx, userID, req)
}

func (m *mockUserService) UpdateFCMToken(ctx context.Context, userID int64, token string) error {
	return m.updateFCMTokenFn(ctx, userID, token)
}

func (m *mockUserService) RequestProfileChange(ctx context.Context, userID int64, req models.ProfileChangeRequest) error {
	return m.requestProfileChangeFn(ctx, userID, req)
}

func (m *mockUserService) VerifyProfileChange(ctx context.Context, userID int64, req models.ProfileChangeVerify) (models.User, error) {
	return m.verifyProfileChangeFn(ctx, userID, req)
}

func (m *mockUserService) RequestPasswordChange(ctx context.Context, userID int64, req models.PasswordChangeRequest) error {
	return m.requestPasswordChangeFn(ctx, userID, req)
}

func (m *mockUserService) VerifyPasswordChange(ctx context.Context, userID int64, req models.PasswordChangeVerify) error {
	return m.verifyPasswordChangeFn(ctx, userID, req)
}

// ─────────────────────────────────────────────
// ChatService
// ─────────────────────────────────────────────

type mockChatService struct {
	sendFn    func(ctx context.Context, userID int64, message string, sink service.ChatSink) error
	history   []models.ChatMessage
	clearedBy []int64
}

func (m *mockChatService) Send(ctx context.Context, userID int64, message string, sink service.ChatSink) error {
	return m.sendFn(ctx, userID, message, sink)
}

func (m *mockChatService) History(context.Context, int64) ([]models.ChatMessage, error) {
	return m.history, nil
}

func (m *mockChatService) ClearHistory(_ context.Context, userID int64) error {
	m.clearedBy = append(m.clearedBy, userID)
	return nil
}

// ─────────────────────────────────────────────
// AdminService / BrochureService / UploadService
// ─────────────────────────────────────────────

type mockAdminService struct {
	stats models.DashboardStats
	users []models.UserWithMembership
}

func (m *mockAdminService) Stats(context.Context) (models.DashboardStats, error) {
	return m.stats, nil
}

func (m *mockAdminService) ListUsers(context.Context) ([]models.UserWithMembership, error) {
	return m.users, nil
}

type mockBrochureService struct {
	brochures []models.Brochure
	created   []models.Brochure
	deleteErr error
}

func (m *mockBrochureService) List(context.Context) ([]models.Brochure, error) {
	return m.brochures, nil
}

func (m *mockBrochureService) Create(_ context.Context, b models.Brochure) (models.Brochure, error) {
	b.ID = int64(len(m.created) + 1)
	m.created = append(m.created, b)
	return b, nil
}

func (m *mockBrochureService) Delete(context.Context, int64) error {
	return m.deleteErr
}

type mockUploadService struct {
	uploadFn func(ctx context.Context, filename, contentType string, size int64, r io.Reader) (models.UploadedFile, error)
}

func (m *mockUploadService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (models.UploadedFile, error) {
	return m.uploadFn(ctx, filename, contentType, size, r)
}

// ─────────────────────────────────────────────
// AppInfoService / HealthChecker
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	info models.BuildInfo
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.info.Version
}

func (m *mockAppInfoService) GetBuildInfo(context.Context) models.BuildInfo {
	return m.info
}

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) Ping(context.Context) error {
	return m.err
}
