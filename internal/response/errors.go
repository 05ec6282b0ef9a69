package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Request ───────────────────────────────────────────────────────
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Relay ─────────────────────────────────────────────────────────
	ErrNotConfigured    ErrCode = "DESTINATION_NOT_CONFIGURED"
	ErrSubmissionFailed ErrCode = "SUBMISSION_FAILED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidPayload:
		return "Invalid request payload"
	case ErrNotConfigured:
		return "Webhook URL not configured"
	case ErrSubmissionFailed:
		return "Failed to submit application"
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "Internal server error"
	default:
		return "Unexpected error"
	}
}
