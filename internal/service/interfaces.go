package service

import (
	"context"
	"io"

	"github.com/MKhiriev/traveltrek/models"
)

//go:generate mockgen -destination=../mock/service_mock.go -package=mock . Notifier,ChatResponder,ChatSink

// MembershipService owns every lifecycle transition of a membership.
type MembershipService interface {
	Enroll(ctx context.Context, req models.EnrollRequest) (models.EnrollResult, error)
	ChoosePlan(ctx context.Context, userID int64, planType models.PlanType) (models.ChoosePlanResult, error)
	Get(ctx context.Context, userID int64) (models.MembershipState, error)
	Cancel(ctx context.Context, userID int64) error
	MarkPaymentDone(ctx context.Context, userID int64, req models.PaymentDoneRequest) error

	Activate(ctx context.Context, id int64) (models.ActivationResult, error)
	Reject(ctx context.Context, id int64, reason string) (models.RejectionResult, error)
	Extend(ctx context.Context, id int64, ext models.MembershipExtension) (models.Membership, error)
	ApplyOverride(ctx context.Context, id int64, override models.MembershipOverride) (models.Membership, error)
	RecordUsage(ctx context.Context, id int64, days int) (models.Membership, error)
	List(ctx context.Context, status *models.MembershipStatus) ([]models.MembershipWithUser, error)
}

type PlanService interface {
	ListActive(ctx context.Context) ([]models.PlanConfig, error)
	ListAll(ctx context.Context) ([]models.PlanConfig, error)
	Update(ctx context.Context, id int64, update models.PlanConfigUpdate) (models.PlanConfig, error)
}

type DestinationService interface {
	List(ctx context.Context) ([]models.Destination, error)
	Get(ctx context.Context, id int64) (models.Destination, error)
	Create(ctx context.Context, req models.DestinationCreate) (models.Destination, error)
	Update(ctx context.Context, id int64, update models.DestinationUpdate) (models.Destination, error)
	Delete(ctx context.Context, id int64) error
}

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)
	MemberLogin(ctx context.Context, req models.MemberLoginRequest) (models.MemberLoginResult, error)
	SetMemberPassword(ctx context.Context, req models.SetMemberPasswordRequest) (models.AuthResult, error)
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error
	GoogleSignIn(ctx context.Context, req models.GoogleAuthRequest) (models.AuthResult, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// Authenticate parses the token and re-reads its owner, so role
	// changes apply to the next request.
	Authenticate(ctx context.Context, tokenString string) (models.User, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error)
	UpdateFCMToken(ctx context.Context, userID int64, token string) error
	RequestProfileChange(ctx context.Context, userID int64, req models.ProfileChangeRequest) error
	VerifyProfileChange(ctx context.Context, userID int64, req models.ProfileChangeVerify) (models.User, error)
	RequestPasswordChange(ctx context.Context, userID int64, req models.PasswordChangeRequest) error
	VerifyPasswordChange(ctx context.Context, userID int64, req models.PasswordChangeVerify) error
}

// ChatSink receives a streamed assistant reply.
type ChatSink interface {
	Chunk(text string) error
	Done(messageID int64) error
}

type ChatService interface {
	Send(ctx context.Context, userID int64, message string, sink ChatSink) error
	History(ctx context.Context, userID int64) ([]models.ChatMessage, error)
	ClearHistory(ctx context.Context, userID int64) error
}

type AdminService interface {
	Stats(ctx context.Context) (models.DashboardStats, error)
	ListUsers(ctx context.Context) ([]models.UserWithMembership, error)
}

type BrochureService interface {
	List(ctx context.Context) ([]models.Brochure, error)
	Create(ctx context.Context, brochure models.Brochure) (models.Brochure, error)
	Delete(ctx context.Context, id int64) error
}

type UploadService interface {
	Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (models.UploadedFile, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.BuildInfo
}

// Notifier hands notifications off for asynchronous delivery. Errors
// only report that the hand-off failed.
type Notifier interface {
	NotifyActivation(ctx context.Context, user models.User, membershipID string, plan models.PlanType) error
	NotifyWelcome(ctx context.Context, user models.User) error
	NotifyOTP(ctx context.Context, user models.User, purpose, code string) error
	NotifyRejection(ctx context.Context, user models.User, plan models.PlanType, reason string) error
}

// IdentityVerifier validates a Google ID token and returns the identity
// it was issued for.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (models.GoogleIdentity, error)
}

// ChatResponder generates assistant replies. It returns the full text and
// the reply source.
type ChatResponder interface {
	Reply(ctx context.Context, cc models.ChatContext, history []models.ChatMessage, message string, onChunk func(string) error) (string, string, error)
}
