// Package diarization defines the provider interface and common types
// for interacting with speaker diarization backends.
//
// Diarization is optional everywhere it appears: a backend may be
// unavailable (missing sidecar, unsupported platform) and callers must
// degrade to unattributed transcripts rather than abort; a transcript
// without speaker labels is always better than no transcript.
//
// # Backends
//
//   - diarization/pyannote: pyannote HTTP sidecar
//   - diarization/gap: local silence-gap heuristic, no sidecar required
package diarization
