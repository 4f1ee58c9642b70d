// Package errors provides unified error handling for the transcription
// pipeline. It implements structured error types with machine-readable
// codes, HTTP status mapping for the API surface, and retryable detection.
//
// Pipeline-specific codes follow the taxonomy of the aggregation stages:
// malformed intervals are corrected and logged, never raised; diarization
// unavailability degrades to unattributed transcripts; only truly invalid
// requests (an unsupported output format) are surfaced as errors.
package errors
