package core

import (
	"encoding/json"
	"net/http"
)

// Standard response codes
const (
	// oks
	CodeOkVerificationRequested  = "ok_verification_requested"
	CodeOkEmailVerified          = "ok_email_verified"
	CodeOkPasswordResetRequested = "ok_password_reset_requested"
	CodeOkPasswordReset          = "ok_password_reset"
	CodeOkRoleUpdated            = "ok_role_updated"

	// errors
	CodeErrorInvalidRequest                 = "err_invalid_input"
	CodeErrorMissingFields                  = "err_missing_fields"
	CodeErrorPasswordMismatch               = "err_password_mismatch"
	CodeErrorPasswordComplexity             = "err_password_complexity"
	CodeErrorInvalidCredentials             = "err_invalid_credentials"
	CodeErrorEmailConflict                  = "err_email_conflict"
	CodeErrorVerificationTokenInvalid       = "err_invalid_verification_token"
	CodeErrorVerificationTokenExpired       = "err_verification_token_expired"
	CodeErrorNoAuthCredentials              = "err_no_auth_credentials"
	CodeErrorInvalidTokenFormat             = "err_invalid_token_format"
	CodeErrorJwtInvalidToken                = "err_invalid_token"
	CodeErrorSessionUserNotFound            = "err_session_user_not_found"
	CodeErrorForbidden                      = "err_forbidden"
	CodeErrorTooManyRequests                = "err_too_many_requests"
	CodeErrorInvalidOAuth2Provider          = "err_invalid_oauth2_provider"
	CodeErrorOAuth2StateMismatch            = "err_oauth2_state_mismatch"
	CodeErrorOAuth2MissingVerifier          = "err_oauth2_missing_verifier"
	CodeErrorOAuth2TokenExchangeFailed      = "err_oauth2_token_exchange_failed"
	CodeErrorOAuth2UserInfoFailed           = "err_oauth2_user_info_failed"
	CodeErrorOAuth2UserInfoProcessingFailed = "err_oauth2_user_info_processing_failed"
	CodeErrorTokenGeneration                = "err_token_generation"
	CodeErrorAuthDatabaseError              = "err_auth_database_error"
	CodeErrorMailDeliveryFailed             = "err_mail_delivery_failed"
	CodeErrorInvalidContentType             = "err_invalid_content_type"
	CodeErrorNotFound                       = "err_not_found"
)

// precomputeBasicResponse marshals a short response once during package
// initialization. The variables below hold the full JSON body as []byte
// so request handling never re-marshals fixed responses.
func precomputeBasicResponse(status int, code, message string) jsonResponse {
	basic := JsonBasic{
		Status:  status,
		Code:    code,
		Message: message,
	}
	body, _ := json.Marshal(basic)
	return jsonResponse{status: status, body: body}
}

// Precomputed error and ok responses with status codes
var (
	// errors
	errorInvalidRequest                 = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidRequest, "The request contains invalid data")
	errorMissingFields                  = precomputeBasicResponse(http.StatusBadRequest, CodeErrorMissingFields, "Required fields are missing")
	errorPasswordMismatch               = precomputeBasicResponse(http.StatusBadRequest, CodeErrorPasswordMismatch, "Password and confirmation do not match")
	errorPasswordComplexity             = precomputeBasicResponse(http.StatusBadRequest, CodeErrorPasswordComplexity, "Password must be between 8 and 64 characters")
	errorInvalidCredentials             = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorInvalidCredentials, "Incorrect email or password")
	errorEmailConflict                  = precomputeBasicResponse(http.StatusConflict, CodeErrorEmailConflict, "Email address is already registered")
	errorVerificationTokenInvalid       = precomputeBasicResponse(http.StatusBadRequest, CodeErrorVerificationTokenInvalid, "Verification token is invalid or has already been used")
	errorVerificationTokenExpired       = precomputeBasicResponse(http.StatusBadRequest, CodeErrorVerificationTokenExpired, "Verification token has expired. Please request a new one")
	errorNoAuthCredentials              = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorNoAuthCredentials, "Authentication credentials are required")
	errorInvalidTokenFormat             = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorInvalidTokenFormat, "Invalid authorization token format")
	errorJwtInvalidToken                = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtInvalidToken, "Invalid authentication token")
	errorSessionUserNotFound            = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorSessionUserNotFound, "Account no longer exists")
	errorForbidden                      = precomputeBasicResponse(http.StatusForbidden, CodeErrorForbidden, "You do not have permission to access this resource")
	errorTooManyRequests                = precomputeBasicResponse(http.StatusTooManyRequests, CodeErrorTooManyRequests, "Too many failed attempts, please try again later")
	errorInvalidOAuth2Provider          = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidOAuth2Provider, "Invalid OAuth2 provider specified")
	errorOAuth2StateMismatch            = precomputeBasicResponse(http.StatusBadRequest, CodeErrorOAuth2StateMismatch, "OAuth2 state validation failed")
	errorOAuth2MissingVerifier          = precomputeBasicResponse(http.StatusBadRequest, CodeErrorOAuth2MissingVerifier, "OAuth2 code verifier is missing")
	errorOAuth2TokenExchangeFailed      = precomputeBasicResponse(http.StatusBadGateway, CodeErrorOAuth2TokenExchangeFailed, "Failed to exchange OAuth2 authorization code")
	errorOAuth2UserInfoFailed           = precomputeBasicResponse(http.StatusBadGateway, CodeErrorOAuth2UserInfoFailed, "Failed to get user info from OAuth2 provider")
	errorOAuth2UserInfoProcessingFailed = precomputeBasicResponse(http.StatusBadGateway, CodeErrorOAuth2UserInfoProcessingFailed, "Failed to process user info from OAuth2 provider")
	errorTokenGeneration                = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorTokenGeneration, "Failed to generate authentication token")
	errorAuthDatabaseError              = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorAuthDatabaseError, "Database error during authentication")
	errorMailDeliveryFailed             = precomputeBasicResponse(http.StatusBadGateway, CodeErrorMailDeliveryFailed, "Failed to send email, please try again later")
	errorInvalidContentType             = precomputeBasicResponse(http.StatusUnsupportedMediaType, CodeErrorInvalidContentType, "Unsupported media type")
	errorNotFound                       = precomputeBasicResponse(http.StatusNotFound, CodeErrorNotFound, "Requested resource not found")

	// oks
	okVerificationRequested  = precomputeBasicResponse(http.StatusCreated, CodeOkVerificationRequested, "Verification email will be sent soon. Check your mailbox")
	okPasswordResetRequested = precomputeBasicResponse(http.StatusAccepted, CodeOkPasswordResetRequested, "Password reset instructions will be sent to your email if it exists in our system")
	okPasswordReset          = precomputeBasicResponse(http.StatusOK, CodeOkPasswordReset, "Password reset successfully")
	okRoleUpdated            = precomputeBasicResponse(http.StatusOK, CodeOkRoleUpdated, "Role updated successfully")
)
