package repository

import (
	"time"

	"github.com/notesapp/backend/internal/app/model"
	"github.com/notesapp/backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	UpdatePassword(userID uint, passwordHash string) error
	SetResetToken(userID uint, token string, expiry time.Time) error
	ConsumeResetToken(token, passwordHash string, now time.Time) (bool, error)
	ClearExpiredResetTokens(before time.Time) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email": user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		logger.Error("Failed to find user by ID in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		logger.Error("Failed to find user by email in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	logger.Debug("Updating user in database", map[string]interface{}{
		"user_id": user.ID,
	})

	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

func (r *userRepository) UpdatePassword(userID uint, passwordHash string) error {
	logger.Debug("Updating user password in database", map[string]interface{}{
		"user_id": userID,
	})

	if err := r.db.Model(&model.User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash).Error; err != nil {
		logger.Error("Failed to update user password in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

// SetResetToken stores a reset token and its expiry on the user row,
// overwriting any prior token. One active token per user.
func (r *userRepository) SetResetToken(userID uint, token string, expiry time.Time) error {
	logger.Debug("Setting reset token in database", map[string]interface{}{
		"user_id": userID,
	})

	if err := r.db.Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expiry": expiry,
		}).Error; err != nil {
		logger.Error("Failed to set reset token in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

// ConsumeResetToken redeems a reset token in a single conditional update:
// the token must match AND still be unexpired in the same predicate, and
// the update writes the new password hash while clearing both reset
// fields. Row-level atomicity guarantees at most one of two concurrent
// consumers sees an affected row.
func (r *userRepository) ConsumeResetToken(token, passwordHash string, now time.Time) (bool, error) {
	result := r.db.Model(&model.User{}).
		Where("reset_token = ? AND reset_token_expiry > ?", token, now).
		Updates(map[string]interface{}{
			"password_hash":      passwordHash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})
	if result.Error != nil {
		logger.Error("Failed to consume reset token in database", result.Error, nil)
		return false, result.Error
	}

	logger.Debug("Reset token consume attempted", map[string]interface{}{
		"rows_affected": result.RowsAffected,
	})
	return result.RowsAffected == 1, nil
}

// ClearExpiredResetTokens is housekeeping only; expired tokens are already
// unusable because consumption checks expiry in its predicate.
func (r *userRepository) ClearExpiredResetTokens(before time.Time) (int64, error) {
	result := r.db.Model(&model.User{}).
		Where("reset_token_expiry IS NOT NULL AND reset_token_expiry < ?", before).
		Updates(map[string]interface{}{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})
	if result.Error != nil {
		logger.Error("Failed to clear expired reset tokens from database", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
