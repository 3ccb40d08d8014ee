package controller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/notesapp/backend/internal/app/service"
	apperrors "github.com/notesapp/backend/internal/errors"
	"github.com/notesapp/backend/internal/middleware"
	"github.com/notesapp/backend/pkg/redis"
	"github.com/notesapp/backend/pkg/util"
)

type AuthController struct {
	authService          service.AuthService
	passwordResetService service.PasswordResetService
	jwtSecret            string
}

func NewAuthController(authService service.AuthService, passwordResetService service.PasswordResetService, jwtSecret string) *AuthController {
	return &AuthController{
		authService:          authService,
		passwordResetService: passwordResetService,
		jwtSecret:            jwtSecret,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// Register handles user registration
// POST /api/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, apperrors.BindingFields(err))
		return
	}

	log.Debug("Processing registration", map[string]interface{}{
		"email": req.Email,
	})

	user, err := ctrl.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			log.Warn("Registration failed: email already exists", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.BadRequest(c, apperrors.AuthEmailAlreadyExists, "Email already registered")
			return
		}
		log.Error("Registration failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "register user")
		return
	}

	log.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
	})
}

// Login handles user login
// POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, apperrors.BindingFields(err))
		return
	}

	log.Debug("Processing login", map[string]interface{}{
		"email": req.Email,
	})

	user, token, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed: invalid credentials", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid email or password")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "login")
		return
	}

	log.Info("Login successful", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// ForgotPassword issues a password reset token for a known account
// POST /api/auth/forgot-password
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid forgot password request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, apperrors.BindingFields(err))
		return
	}

	log.Debug("Processing forgot password request", map[string]interface{}{
		"email": req.Email,
	})

	resetToken, err := ctrl.passwordResetService.RequestReset(req.Email)
	if err != nil {
		if errors.Is(err, service.ErrEmailNotFound) {
			log.Warn("Forgot password for unknown email", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.NotFound(c, apperrors.ResourceNotFound, "No account with that email")
			return
		}
		log.Error("Failed to process password reset request", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "Failed to process password reset request")
		return
	}

	log.Info("Password reset token issued", map[string]interface{}{
		"email": req.Email,
	})

	// Token is echoed in the response alongside email delivery
	c.JSON(http.StatusOK, gin.H{
		"message":    "Password reset token generated",
		"resetToken": resetToken,
	})
}

// ResetPassword consumes a reset token and sets a new password
// POST /api/auth/reset-password/:token
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token := c.Param("token")

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid reset password request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithValidationError(c, apperrors.BindingFields(err))
		return
	}

	log.Debug("Processing password reset with token")

	if err := ctrl.passwordResetService.ResetPassword(token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			log.Warn("Password reset failed: invalid or expired token", nil)
			apperrors.BadRequest(c, apperrors.AuthResetTokenInvalid, "Invalid or expired reset token")
			return
		}
		log.Error("Failed to reset password", err, nil)
		apperrors.InternalError(c, "Failed to reset password")
		return
	}

	log.Info("Password reset successful")

	c.JSON(http.StatusOK, gin.H{
		"message": "Password has been reset successfully",
	})
}

// Logout revokes the presented session token
// POST /api/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, _ := middleware.GetUserID(c)

	// Blacklist the session token for its remaining lifetime. Without
	// redis the token simply ages out at its natural expiry.
	if redis.Enabled() {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			token := parts[1]
			if claims, err := util.ValidateToken(token, ctrl.jwtSecret); err == nil {
				ttl := time.Until(claims.ExpiresAt.Time)
				if ttl > 0 {
					if err := redis.BlacklistToken(c.Request.Context(), token, ttl); err != nil {
						log.Error("Failed to blacklist token during logout", err, map[string]interface{}{
							"user_id": userID,
						})
						// logout still succeeds from the caller's perspective
					}
				}
			}
		}
	}

	log.Info("User logged out", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetMe returns the authenticated user's profile
// GET /api/users/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to GetMe endpoint", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			log.Warn("User not found", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to get user information", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		},
	})
}

// UpdateMe updates the authenticated user's profile
// PUT /api/users/me
func (ctrl *AuthController) UpdateMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to UpdateMe endpoint", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update profile request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.RespondWithValidationError(c, apperrors.BindingFields(err))
		return
	}

	user, err := ctrl.authService.UpdateProfile(userID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			log.Warn("User not found for profile update", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to update user profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update profile")
		return
	}

	log.Info("User profile updated", map[string]interface{}{
		"user_id": user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// ChangePassword changes the authenticated user's password
// PUT /api/users/change-password
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to ChangePassword endpoint", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid change password request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.RespondWithValidationError(c, apperrors.BindingFields(err))
		return
	}

	if err := ctrl.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			log.Warn("Change password failed: wrong current password", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c, apperrors.AuthWrongPassword, "Current password is incorrect")
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			log.Warn("User not found for password change", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to change password", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "change password")
		return
	}

	log.Info("Password changed", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully",
	})
}
