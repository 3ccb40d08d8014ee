package service

import (
	"testing"
	"time"

	"github.com/notesapp/backend/internal/app/repository"
	"github.com/notesapp/backend/internal/db"
	"github.com/notesapp/backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

func setupAuthServiceTest(t *testing.T) (AuthService, repository.UserRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(userRepo, testJWTSecret, 24*time.Hour)

	return authService, userRepo
}

func TestAuthService_Register(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid registration",
			userName: "Test User",
			email:    "test@example.com",
			password: "password123",
			wantErr:  nil,
		},
		{
			name:     "Duplicate email",
			userName: "Another User",
			email:    "test@example.com",
			password: "password456",
			wantErr:  ErrEmailAlreadyExists,
		},
		{
			name:     "Duplicate email different case",
			userName: "Shouty User",
			email:    "TEST@Example.COM",
			password: "password789",
			wantErr:  ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := authService.Register(tt.userName, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, "test@example.com", user.Email)
				assert.Equal(t, tt.userName, user.Name)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	email := "test@example.com"
	password := "password123"
	_, err := authService.Register("Test User", email, password)
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid login",
			email:    email,
			password: password,
			wantErr:  nil,
		},
		{
			name:     "Mixed-case email",
			email:    "Test@Example.com",
			password: password,
			wantErr:  nil,
		},
		{
			name:     "Wrong password",
			email:    email,
			password: "wrongpassword",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Non-existing user",
			email:    "notfound@example.com",
			password: password,
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := authService.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotEmpty(t, token)

				// The issued token round-trips to the same identity
				claims, err := util.ValidateToken(token, testJWTSecret)
				require.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
			}
		})
	}
}

func TestAuthService_Login_UniformError(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Register("Test User", "known@example.com", "password123")
	require.NoError(t, err)

	// Wrong password and unknown email must be indistinguishable
	_, _, errWrongPass := authService.Login("known@example.com", "badpassword")
	_, _, errNoUser := authService.Login("unknown@example.com", "badpassword")

	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

func TestAuthService_GetUserByID(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, err := authService.Register("Test User", "test@example.com", "password123")
	require.NoError(t, err)

	tests := []struct {
		name    string
		userID  uint
		wantErr error
	}{
		{
			name:    "Existing user",
			userID:  user.ID,
			wantErr: nil,
		},
		{
			name:    "Non-existing user",
			userID:  9999,
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := authService.GetUserByID(tt.userID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, found)
			} else {
				require.NoError(t, err)
				require.NotNil(t, found)
				assert.Equal(t, user.Email, found.Email)
			}
		})
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, err := authService.Register("Old Name", "test@example.com", "password123")
	require.NoError(t, err)

	updated, err := authService.UpdateProfile(user.ID, "New Name")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)

	_, err = authService.UpdateProfile(9999, "Ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_ChangePassword(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	user, err := authService.Register("Test User", "test@example.com", "oldpassword")
	require.NoError(t, err)

	// Wrong current password is rejected
	err = authService.ChangePassword(user.ID, "notmypassword", "newpassword")
	assert.ErrorIs(t, err, ErrWrongPassword)

	// Correct current password succeeds
	err = authService.ChangePassword(user.ID, "oldpassword", "newpassword")
	require.NoError(t, err)

	// Old password no longer works, new one does
	_, _, err = authService.Login("test@example.com", "oldpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = authService.Login("test@example.com", "newpassword")
	assert.NoError(t, err)
}
