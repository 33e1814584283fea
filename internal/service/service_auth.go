package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/traveltrek/internal/config"
	"github.com/MKhiriev/traveltrek/internal/ephemeral"
	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/metrics"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/internal/utils"
	"github.com/MKhiriev/traveltrek/models"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// authService handles registration, the three sign-in flows, password
// recovery and JWT lifecycle.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// membershipRepository resolves membership identifiers on member login.
	membershipRepository store.MembershipRepository

	otpStore ephemeral.OTPStore
	notifier Notifier

	// google verifies ID tokens; nil disables Google sign-in.
	google IdentityVerifier

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService populated with token
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(storages *store.Storages, otpStore ephemeral.OTPStore, notifier Notifier, google IdentityVerifier, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:       storages.UserRepository,
		membershipRepository: storages.MembershipRepository,
		otpStore:             otpStore,
		notifier:             notifier,
		google:               google,
		tokenSignKey:         cfg.TokenSignKey,
		tokenIssuer:          cfg.TokenIssuer,
		tokenDuration:        cfg.TokenDuration,
		now:                  time.Now,
		logger:               logger,
	}
}

// Register creates a password account and sends the onboarding messages.
// No membership is created.
//
// Returns store.ErrEmailAlreadyExists if the email is taken.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	email := models.NormalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.Name) == "" {
		return models.AuthResult{}, ErrInvalidDataProvided
	}
	if len(req.Password) < minPasswordLength {
		return models.AuthResult{}, ErrPasswordTooShort
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return models.AuthResult{}, err
	}

	user, err := a.userRepository.Create(ctx, models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: &hash,
		PasswordSet:  true,
		Role:         models.RoleUser,
	})
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.onboard(ctx, user)
	log.Info().Str("func", "*authService.Register").Int64("user_id", user.ID).Msg("user registered")

	return a.authResult(ctx, user, false)
}

// Login authenticates by email and password. Unknown emails, accounts
// without a password and wrong passwords all yield ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.GetByEmail(ctx, models.NormalizeEmail(req.Email))
	if errors.Is(err, store.ErrUserNotFound) {
		return models.AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !checkPassword(user.PasswordHash, req.Password) {
		log.Warn().Str("func", "*authService.Login").Int64("user_id", user.ID).Msg("wrong password")
		return models.AuthResult{}, ErrInvalidCredentials
	}

	hasMembership := true
	if _, err = a.membershipRepository.GetByUserID(ctx, user.ID); errors.Is(err, store.ErrMembershipNotFound) {
		hasMembership = false
	} else if err != nil {
		return models.AuthResult{}, fmt.Errorf("membership lookup failed: %w", err)
	}

	return a.authResult(ctx, user, hasMembership)
}

// MemberLogin authenticates with a membership identifier. Members who have
// not chosen a password yet get NeedsPasswordSetup instead of a token.
func (a *authService) MemberLogin(ctx context.Context, req models.MemberLoginRequest) (models.MemberLoginResult, error) {
	membershipID := strings.TrimSpace(req.MembershipID)
	if membershipID == "" {
		return models.MemberLoginResult{}, ErrInvalidDataProvided
	}

	membership, err := a.membershipRepository.GetByMembershipID(ctx, membershipID)
	if errors.Is(err, store.ErrMembershipNotFound) {
		return models.MemberLoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.MemberLoginResult{}, fmt.Errorf("membership lookup failed: %w", err)
	}

	if status := DeriveStatus(membership, a.now()); status != models.StatusActive {
		return models.MemberLoginResult{}, fmt.Errorf("%w: status is %s", ErrMembershipNotActive, status)
	}

	user, err := a.userRepository.GetByID(ctx, membership.UserID)
	if err != nil {
		return models.MemberLoginResult{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if !user.PasswordSet {
		return models.MemberLoginResult{
			NeedsPasswordSetup: true,
			Email:              user.Email,
			MembershipID:       membershipID,
		}, nil
	}

	if req.Password == "" {
		return models.MemberLoginResult{}, ErrPasswordRequired
	}
	if !checkPassword(user.PasswordHash, req.Password) {
		return models.MemberLoginResult{}, ErrInvalidCredentials
	}

	result, err := a.authResult(ctx, user, true)
	if err != nil {
		return models.MemberLoginResult{}, err
	}
	return models.MemberLoginResult{MembershipID: membershipID, Auth: &result}, nil
}

// SetMemberPassword sets the first password of an enrolled member. The
// email must match the membership owner.
func (a *authService) SetMemberPassword(ctx context.Context, req models.SetMemberPasswordRequest) (models.AuthResult, error) {
	if req.Password != req.ConfirmPassword {
		return models.AuthResult{}, ErrPasswordMismatch
	}
	if len(req.Password) < minPasswordLength {
		return models.AuthResult{}, ErrPasswordTooShort
	}

	membership, err := a.membershipRepository.GetByMembershipID(ctx, strings.TrimSpace(req.MembershipID))
	if err != nil {
		return models.AuthResult{}, err
	}

	user, err := a.userRepository.GetByID(ctx, membership.UserID)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("user lookup failed: %w", err)
	}
	if models.NormalizeEmail(req.Email) != user.Email {
		return models.AuthResult{}, ErrEmailMismatch
	}
	if user.PasswordSet {
		return models.AuthResult{}, ErrPasswordAlreadySet
	}

	if user, err = a.setPassword(ctx, user.ID, req.Password); err != nil {
		return models.AuthResult{}, err
	}

	return a.authResult(ctx, user, true)
}

// ForgotPassword sends a reset code to a known email. Unknown emails are
// accepted silently so that callers cannot probe for accounts.
func (a *authService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.GetByEmail(ctx, models.NormalizeEmail(req.Email))
	if errors.Is(err, store.ErrUserNotFound) {
		log.Info().Str("func", "*authService.ForgotPassword").Msg("reset requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("user search by email failed: %w", err)
	}

	return issueOTP(ctx, a.otpStore, a.notifier, user, models.PurposeForgotPassword, "")
}

// ResetPassword verifies the reset code and replaces the password.
func (a *authService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := a.userRepository.GetByEmail(ctx, models.NormalizeEmail(req.Email))
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrInvalidDataProvided
	}
	if err != nil {
		return fmt.Errorf("user search by email failed: %w", err)
	}

	if _, err = verifyOTP(ctx, a.otpStore, user.ID, models.PurposeForgotPassword, req.OTP); err != nil {
		return err
	}

	_, err = a.setPassword(ctx, user.ID, req.NewPassword)
	return err
}

// GoogleSignIn signs in a Google identity confirmed by req.IDToken. The
// token's subject and email must match the request. Unknown emails get a
// new password-less account. An existing USER account without a Google ID
// gets it linked; operator accounts are never linked this way. An account
// linked to a different Google ID is refused.
func (a *authService) GoogleSignIn(ctx context.Context, req models.GoogleAuthRequest) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	email := models.NormalizeEmail(req.Email)
	if email == "" || req.GoogleID == "" || req.IDToken == "" {
		return models.AuthResult{}, ErrInvalidDataProvided
	}
	if a.google == nil {
		return models.AuthResult{}, ErrGoogleSignInDisabled
	}

	identity, err := a.google.Verify(ctx, req.IDToken)
	if err != nil {
		log.Warn().Err(err).Str("func", "*authService.GoogleSignIn").Msg("google token verification failed")
		return models.AuthResult{}, ErrInvalidCredentials
	}
	if identity.Subject != req.GoogleID || identity.Email != email {
		log.Warn().Str("func", "*authService.GoogleSignIn").Msg("google token does not match the request")
		return models.AuthResult{}, ErrInvalidCredentials
	}

	user, err := a.userRepository.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = identity.Name
		}
		if name == "" {
			name, _, _ = strings.Cut(email, "@")
		}
		googleID := identity.Subject
		user, err = a.userRepository.Create(ctx, models.User{
			Name:     name,
			Email:    email,
			Role:     models.RoleUser,
			GoogleID: &googleID,
		})
		if err != nil {
			return models.AuthResult{}, fmt.Errorf("user creation ended with error: %w", err)
		}
		a.onboard(ctx, user)
	case err != nil:
		return models.AuthResult{}, fmt.Errorf("user search by email failed: %w", err)
	case user.GoogleID != nil:
		if *user.GoogleID != identity.Subject {
			log.Warn().Str("func", "*authService.GoogleSignIn").Int64("user_id", user.ID).Msg("google id differs from the linked one")
			return models.AuthResult{}, ErrInvalidCredentials
		}
	case user.Role != models.RoleUser:
		log.Warn().Str("func", "*authService.GoogleSignIn").Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("refusing to link google id to operator account")
		return models.AuthResult{}, ErrInvalidCredentials
	default:
		googleID := identity.Subject
		if user, err = a.userRepository.Update(ctx, user.ID, models.UserUpdate{GoogleID: &googleID}); err != nil {
			return models.AuthResult{}, fmt.Errorf("linking google account failed: %w", err)
		}
	}

	hasMembership := true
	if _, err = a.membershipRepository.GetByUserID(ctx, user.ID); errors.Is(err, store.ErrMembershipNotFound) {
		hasMembership = false
	} else if err != nil {
		return models.AuthResult{}, fmt.Errorf("membership lookup failed: %w", err)
	}

	return a.authResult(ctx, user, hasMembership)
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, user.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised
// to ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.GetByID(ctx, token.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user, nil
}

func (a *authService) authResult(ctx context.Context, user models.User, hasMembership bool) (models.AuthResult, error) {
	token, err := a.CreateToken(ctx, user)
	if err != nil {
		return models.AuthResult{}, err
	}
	return models.AuthResult{Token: token.String(), User: user, HasMembership: hasMembership}, nil
}

func (a *authService) setPassword(ctx context.Context, userID int64, password string) (models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	passwordSet := true
	user, err := a.userRepository.Update(ctx, userID, models.UserUpdate{PasswordHash: &hash, PasswordSet: &passwordSet})
	if err != nil {
		return models.User{}, fmt.Errorf("error updating password: %w", err)
	}
	return user, nil
}

func (a *authService) onboard(ctx context.Context, user models.User) {
	if err := a.notifier.NotifyWelcome(ctx, user); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.onboard").Int64("user_id", user.ID).Msg("failed to enqueue welcome messages")
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(hash *string, password string) bool {
	if hash == nil || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*hash), []byte(password)) == nil
}

// issueOTP stores a fresh code for (user, purpose) and enqueues it by email.
// A failed hand-off is logged; the code stays valid.
func issueOTP(ctx context.Context, otpStore ephemeral.OTPStore, notifier Notifier, user models.User, purpose, pendingValue string) error {
	log := logger.FromContext(ctx)

	code, err := ephemeral.GenerateCode()
	if err != nil {
		return err
	}
	if err = otpStore.Store(ctx, otpOwner(user.ID), purpose, pendingValue, code); err != nil {
		return err
	}
	metrics.RecordOTP(purpose, metrics.OTPIssued)

	if err = notifier.NotifyOTP(ctx, user, purpose, code); err != nil {
		log.Err(err).Str("func", "issueOTP").Int64("user_id", user.ID).Str("purpose", purpose).Msg("failed to enqueue OTP email")
	}
	return nil
}

// verifyOTP consumes the code and returns the pending value stored with it.
// Wrong, expired and missing codes all yield ErrInvalidOrExpiredOTP.
func verifyOTP(ctx context.Context, otpStore ephemeral.OTPStore, userID int64, purpose, code string) (string, error) {
	result, err := otpStore.Verify(ctx, otpOwner(userID), purpose, strings.TrimSpace(code))
	if err != nil {
		return "", err
	}
	if !result.Valid {
		metrics.RecordOTP(purpose, metrics.OTPRejected)
		return "", ErrInvalidOrExpiredOTP
	}

	metrics.RecordOTP(purpose, metrics.OTPVerified)
	return result.PendingValue, nil
}

func otpOwner(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
