package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Connection/Availability errors (retryable)
const (
	// ErrCodeServiceUnavailable indicates a backend is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeConnectionFailed indicates a failed connection to a backend.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Pipeline errors
const (
	// ErrCodeInvalidFormat indicates an unknown serialization format
	// was requested. Fatal for that call only.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	// ErrCodeMalformedInterval indicates a negative-duration or
	// negative-timestamp interval. Corrected by clamping and logged;
	// never returned to a caller by the pipeline itself.
	ErrCodeMalformedInterval ErrorCode = "MALFORMED_INTERVAL"
	// ErrCodeDiarizationUnavailable indicates diarization was requested
	// but the backend failed or returned nothing. Recorded in transcript
	// metadata; not a pipeline failure.
	ErrCodeDiarizationUnavailable ErrorCode = "DIARIZATION_UNAVAILABLE"
	// ErrCodeEmptyTranscript flags a transcript with zero segments.
	// An empty transcript is a valid state (silent audio); serializers
	// still produce well-formed documents.
	ErrCodeEmptyTranscript ErrorCode = "EMPTY_TRANSCRIPT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable:     true,
	ErrCodeConnectionFailed:       true,
	ErrCodeTimeout:                true,
	ErrCodeDiarizationUnavailable: true,
	ErrCodeInternal:               false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
