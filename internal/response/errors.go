package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidGrade   ErrCode = "INVALID_GRADE"
	ErrInvalidOrder   ErrCode = "INVALID_ORDER"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Transcript ────────────────────────────────────────────────────
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrDuplicateRecord   ErrCode = "DUPLICATE_RECORD"
	ErrConflictingRecord ErrCode = "CONFLICTING_RECORD"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidGrade:
		return "Grade must be an integer."
	case ErrInvalidOrder:
		return "Order must be one of insertion, course, grade."
	case ErrInvalidPayload:
		return "Invalid request payload."

	case ErrNotFound:
		return "No record for this course."
	case ErrDuplicateRecord:
		return "This course is already recorded with the same grade."
	case ErrConflictingRecord:
		return "This course is already recorded with a different grade."

	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	case ErrInternal:
		return "Internal server error."
	default:
		return "An unexpected error occurred."
	}
}
