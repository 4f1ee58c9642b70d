package logger

import "testing"

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected default level info, got %s", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected default format console, got %s", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected default output stderr, got %s", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamps enabled by default")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{Level: "debug", Format: "json"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := Config{Level: "loud", Format: "json"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown level")
	}

	badFormat := Config{Level: "info", Format: "xml"}
	if err := badFormat.Validate(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFields(t *testing.T) {
	m := Fields("op", "assemble", FieldSegments, 42)
	if m["op"] != "assemble" || m[FieldSegments] != 42 {
		t.Errorf("unexpected map: %v", m)
	}

	// Odd trailing key is dropped rather than panicking.
	m = Fields("only_key")
	if len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}
}
