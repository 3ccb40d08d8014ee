package service

import (
	"testing"
	"time"

	"github.com/notesapp/backend/internal/app/repository"
	"github.com/notesapp/backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMailer captures delivered tokens instead of sending mail
type recordingMailer struct {
	sentTo    []string
	sentToken []string
}

func (m *recordingMailer) SendPasswordReset(toEmail, token string) error {
	m.sentTo = append(m.sentTo, toEmail)
	m.sentToken = append(m.sentToken, token)
	return nil
}

func setupResetServiceTest(t *testing.T) (PasswordResetService, AuthService, repository.UserRepository, *recordingMailer) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(userRepo, testJWTSecret, 24*time.Hour)
	m := &recordingMailer{}
	resetService := NewPasswordResetService(userRepo, m)

	return resetService, authService, userRepo, m
}

func TestPasswordResetService_RequestReset(t *testing.T) {
	resetService, authService, _, m := setupResetServiceTest(t)

	_, err := authService.Register("Test User", "test@example.com", "password123")
	require.NoError(t, err)

	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{
			name:    "Known email",
			email:   "test@example.com",
			wantErr: nil,
		},
		{
			name:    "Known email different case",
			email:   "Test@Example.COM",
			wantErr: nil,
		},
		{
			name:    "Unknown email",
			email:   "missing@example.com",
			wantErr: ErrEmailNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := resetService.RequestReset(tt.email)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				// 32 random bytes, hex encoded
				assert.Len(t, token, 64)
			}
		})
	}

	// Delivery went to the canonical address for each successful request
	require.Len(t, m.sentTo, 2)
	assert.Equal(t, "test@example.com", m.sentTo[0])
	assert.Equal(t, "test@example.com", m.sentTo[1])
}

func TestPasswordResetService_ConsumeOnce(t *testing.T) {
	resetService, authService, _, _ := setupResetServiceTest(t)

	_, err := authService.Register("Test User", "test@example.com", "oldpassword")
	require.NoError(t, err)

	token, err := resetService.RequestReset("test@example.com")
	require.NoError(t, err)

	// First consumption succeeds
	err = resetService.ResetPassword(token, "newpassword")
	require.NoError(t, err)

	// Replay with the same token fails uniformly
	err = resetService.ResetPassword(token, "anotherpassword")
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	// Only the first reset took effect
	_, _, err = authService.Login("test@example.com", "newpassword")
	assert.NoError(t, err)
	_, _, err = authService.Login("test@example.com", "anotherpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordResetService_WrongToken(t *testing.T) {
	resetService, authService, _, _ := setupResetServiceTest(t)

	_, err := authService.Register("Test User", "test@example.com", "oldpassword")
	require.NoError(t, err)

	_, err = resetService.RequestReset("test@example.com")
	require.NoError(t, err)

	err = resetService.ResetPassword("not-the-token", "newpassword")
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	err = resetService.ResetPassword("", "newpassword")
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	// Password unchanged
	_, _, err = authService.Login("test@example.com", "oldpassword")
	assert.NoError(t, err)
}

func TestPasswordResetService_ExpiredToken(t *testing.T) {
	resetService, authService, userRepo, _ := setupResetServiceTest(t)

	user, err := authService.Register("Test User", "test@example.com", "oldpassword")
	require.NoError(t, err)

	token, err := resetService.RequestReset("test@example.com")
	require.NoError(t, err)

	// Age the token past its window
	require.NoError(t, userRepo.SetResetToken(user.ID, token, time.Now().Add(-time.Minute)))

	// Expired fails with the same error as wrong
	err = resetService.ResetPassword(token, "newpassword")
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	_, _, err = authService.Login("test@example.com", "oldpassword")
	assert.NoError(t, err)
}

func TestPasswordResetService_SecondRequestSupersedes(t *testing.T) {
	resetService, authService, _, _ := setupResetServiceTest(t)

	_, err := authService.Register("Test User", "test@example.com", "oldpassword")
	require.NoError(t, err)

	first, err := resetService.RequestReset("test@example.com")
	require.NoError(t, err)

	second, err := resetService.RequestReset("test@example.com")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// The superseded token is dead
	err = resetService.ResetPassword(first, "newpassword")
	assert.ErrorIs(t, err, ErrInvalidResetToken)

	// Only the latest token works
	err = resetService.ResetPassword(second, "newpassword")
	assert.NoError(t, err)
}
