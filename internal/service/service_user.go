package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/traveltrek/internal/ephemeral"
	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/internal/store"
	"github.com/MKhiriev/traveltrek/models"
)

// userService manages the member's own profile. Name, phone and password
// changes are confirmed with an emailed one-time code; the new value is
// held with the code and applied on verification.
type userService struct {
	userRepository store.UserRepository
	otpStore       ephemeral.OTPStore
	notifier       Notifier

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, otpStore ephemeral.OTPStore, notifier Notifier, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		otpStore:       otpStore,
		notifier:       notifier,
		logger:         logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	return s.userRepository.GetByID(ctx, userID)
}

// UpdateProfile applies a direct partial update of name and phone.
func (s *userService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error) {
	var update models.UserUpdate
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 2 {
			return models.User{}, ErrInvalidDataProvided
		}
		update.Name = &name
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if len(phone) < 10 {
			return models.User{}, ErrInvalidDataProvided
		}
		update.Phone = &phone
	}
	if update.IsEmpty() {
		return models.User{}, ErrNoFieldsToUpdate
	}

	user, err := s.userRepository.Update(ctx, userID, update)
	if err != nil {
		return models.User{}, fmt.Errorf("error updating profile: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateFCMToken(ctx context.Context, userID int64, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidDataProvided
	}

	if _, err := s.userRepository.Update(ctx, userID, models.UserUpdate{FCMToken: &token}); err != nil {
		return fmt.Errorf("error updating push token: %w", err)
	}
	return nil
}

// RequestProfileChange emails a code confirming a new name or phone.
func (s *userService) RequestProfileChange(ctx context.Context, userID int64, req models.ProfileChangeRequest) error {
	purpose, err := profilePurpose(req.Field)
	if err != nil {
		return err
	}
	value := strings.TrimSpace(req.NewValue)
	if value == "" {
		return ErrInvalidDataProvided
	}

	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	return issueOTP(ctx, s.otpStore, s.notifier, user, purpose, value)
}

// VerifyProfileChange applies the value stored with the code.
func (s *userService) VerifyProfileChange(ctx context.Context, userID int64, req models.ProfileChangeVerify) (models.User, error) {
	purpose, err := profilePurpose(req.Field)
	if err != nil {
		return models.User{}, err
	}

	value, err := verifyOTP(ctx, s.otpStore, userID, purpose, req.OTP)
	if err != nil {
		return models.User{}, err
	}

	var update models.UserUpdate
	if purpose == models.PurposeName {
		update.Name = &value
	} else {
		update.Phone = &value
	}

	user, err := s.userRepository.Update(ctx, userID, update)
	if err != nil {
		return models.User{}, fmt.Errorf("error applying profile change: %w", err)
	}
	return user, nil
}

// RequestPasswordChange hashes the new password up front and holds the
// hash with the code, so the plain password is never kept.
func (s *userService) RequestPasswordChange(ctx context.Context, userID int64, req models.PasswordChangeRequest) error {
	if len(req.NewPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return issueOTP(ctx, s.otpStore, s.notifier, user, models.PurposePassword, hash)
}

func (s *userService) VerifyPasswordChange(ctx context.Context, userID int64, req models.PasswordChangeVerify) error {
	hash, err := verifyOTP(ctx, s.otpStore, userID, models.PurposePassword, req.OTP)
	if err != nil {
		return err
	}

	passwordSet := true
	if _, err = s.userRepository.Update(ctx, userID, models.UserUpdate{PasswordHash: &hash, PasswordSet: &passwordSet}); err != nil {
		return fmt.Errorf("error applying password change: %w", err)
	}
	return nil
}

func profilePurpose(field string) (string, error) {
	switch field {
	case models.PurposeName, models.PurposePhone:
		return field, nil
	default:
		return "", ErrInvalidDataProvided
	}
}
