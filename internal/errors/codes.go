package errors

// ErrorCode represents a standardized error code used throughout the app
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingSession     ErrorCode = "AUTH_002"
	AuthExpiredSession     ErrorCode = "AUTH_003"
	AuthInvalidSession     ErrorCode = "AUTH_004"
	AuthEmailTaken         ErrorCode = "AUTH_005"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral         ErrorCode = "VALIDATION_001"
	ValidationFieldsRequired  ErrorCode = "VALIDATION_002"
	ValidationAmountNotNumber ErrorCode = "VALIDATION_003"
	ValidationInvalidDate     ErrorCode = "VALIDATION_004"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound     ErrorCode = "TRANSACTION_001"
	TransactionDeleteFailed ErrorCode = "TRANSACTION_002"
	TransactionUpdateFailed ErrorCode = "TRANSACTION_003"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	AuthInvalidCredentials: "Invalid email or password",
	AuthMissingSession:     "You must be logged in to view this page",
	AuthExpiredSession:     "Your session has expired, please log in again",
	AuthInvalidSession:     "Invalid session, please log in again",
	AuthEmailTaken:         "An account with this email already exists",

	ValidationGeneral:         "Validation failed",
	ValidationFieldsRequired:  "All fields are required",
	ValidationAmountNotNumber: "Amount must be a number",
	ValidationInvalidDate:     "Invalid date",

	TransactionNotFound:     "Transaction not found",
	TransactionDeleteFailed: "Error deleting transaction",
	TransactionUpdateFailed: "Error updating transaction",

	SystemInternalError:      "An unexpected error occurred. Please try again later",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Too many requests. Please try again later",
}

// GetErrorMessage returns the default message for a given error code.
// If the error code is not found, it returns a generic error message.
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
