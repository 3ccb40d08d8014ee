package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/notesapp/backend/internal/app/repository"
	"github.com/notesapp/backend/pkg/logger"
	"github.com/notesapp/backend/pkg/mailer"
	"github.com/notesapp/backend/pkg/util"
	"gorm.io/gorm"
)

var (
	// ErrInvalidResetToken covers both a wrong token and an expired one.
	// The two are deliberately indistinguishable to callers.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	ErrEmailNotFound     = errors.New("no account for that email")
)

const (
	// ResetTokenExpiry is the window during which a reset token is valid
	ResetTokenExpiry = 15 * time.Minute
	// ResetTokenLength is the byte length of the reset token (hex doubles it)
	ResetTokenLength = 32
)

type PasswordResetService interface {
	RequestReset(email string) (string, error)
	ResetPassword(token, newPassword string) error
}

type passwordResetService struct {
	userRepo repository.UserRepository
	mailer   mailer.Mailer
}

func NewPasswordResetService(
	userRepo repository.UserRepository,
	m mailer.Mailer,
) PasswordResetService {
	return &passwordResetService{
		userRepo: userRepo,
		mailer:   m,
	}
}

// RequestReset issues a fresh reset token for the account, overwriting any
// token from a prior request, and hands it to the mailer. The token is also
// returned so the boundary can echo it per its contract.
func (s *passwordResetService) RequestReset(email string) (string, error) {
	email = NormalizeEmail(email)

	logger.Info("Processing password reset request", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Password reset requested for non-existent email", map[string]interface{}{
				"email": email,
			})
			return "", ErrEmailNotFound
		}
		logger.Error("Failed to find user for password reset", err, map[string]interface{}{
			"email": email,
		})
		return "", err
	}

	token, err := generateResetToken()
	if err != nil {
		logger.Error("Failed to generate reset token", err, map[string]interface{}{
			"email": email,
		})
		return "", err
	}

	expiry := time.Now().Add(ResetTokenExpiry)
	if err := s.userRepo.SetResetToken(user.ID, token, expiry); err != nil {
		logger.Error("Failed to persist reset token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return "", err
	}

	if err := s.mailer.SendPasswordReset(user.Email, token); err != nil {
		// The token is persisted and usable; delivery failure is logged,
		// not surfaced, since the boundary also returns the token.
		logger.Error("Failed to deliver reset token", err, map[string]interface{}{
			"user_id": user.ID,
		})
	}

	logger.Info("Password reset token issued", map[string]interface{}{
		"user_id":    user.ID,
		"expires_at": expiry,
	})

	return token, nil
}

// ResetPassword redeems a reset token. Token match and expiry check happen
// in one store predicate, and the same update installs the new hash and
// clears the token, so a token can be consumed at most once.
func (s *passwordResetService) ResetPassword(token, newPassword string) error {
	logger.Info("Processing password reset with token")

	if token == "" {
		return ErrInvalidResetToken
	}

	hashedPassword, err := util.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash new password", err, nil)
		return err
	}

	consumed, err := s.userRepo.ConsumeResetToken(token, hashedPassword, time.Now())
	if err != nil {
		logger.Error("Failed to consume reset token", err, nil)
		return err
	}
	if !consumed {
		// Wrong token and expired token fail the same way
		logger.Warn("Invalid or expired reset token provided", nil)
		return ErrInvalidResetToken
	}

	logger.Info("Password reset successful")
	return nil
}

// generateResetToken creates a cryptographically secure random token
func generateResetToken() (string, error) {
	bytes := make([]byte, ResetTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
