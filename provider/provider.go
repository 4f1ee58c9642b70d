// Package provider defines the base contract shared by all pluggable
// backends (transcription, diarization) and a generic registry for
// selecting them by name. Backend selection is a caller-layer decision;
// the pipeline core only ever sees the uniform provider interfaces.
package provider

import "context"

// Provider is the base interface all providers must implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable checks if the provider is ready to handle requests.
	IsAvailable(ctx context.Context) bool
}

// Factory creates a provider instance from configuration.
type Factory[T Provider] func(cfg map[string]any) (T, error)
