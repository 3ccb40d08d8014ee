package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Clients map these codes to their own display messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // invalid or expired session token
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email
	AuthResetTokenInvalid  = "AUTH_RESET_TOKEN_INVALID" // invalid or expired reset token
	AuthWrongPassword      = "AUTH_WRONG_PASSWORD"      // current password mismatch

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN" // not authorized or resource not found

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // malformed input
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // malformed id
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // wrong field format
	ValidationTooShort      = "VALIDATION_TOO_SHORT"      // value too short
	ValidationRequired      = "VALIDATION_REQUIRED"       // missing required field

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // resource missing
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // duplicate

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // unexpected failure
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // store failure
)
