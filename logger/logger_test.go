package logger

import (
	stderrors "errors"
	"testing"
)

func TestFields(t *testing.T) {
	m := Fields(FieldJobID, "abc", FieldPath, "cold", FieldDuration, 42)
	if len(m) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(m))
	}
	if m[FieldJobID] != "abc" || m[FieldPath] != "cold" || m[FieldDuration] != 42 {
		t.Errorf("unexpected fields: %v", m)
	}
}

func TestFieldsOddCount(t *testing.T) {
	m := Fields("key", "value", "dangling")
	if len(m) != 1 || m["key"] != "value" {
		t.Errorf("dangling key must be dropped, got %v", m)
	}
}

func TestFieldsNonStringKey(t *testing.T) {
	m := Fields(42, "value", "ok", true)
	if len(m) != 1 || m["ok"] != true {
		t.Errorf("non-string key must be dropped, got %v", m)
	}
}

func TestErrorFields(t *testing.T) {
	m := ErrorFields("spawn", stderrors.New("fork failed"))
	if m[FieldOperation] != "spawn" {
		t.Errorf("unexpected operation: %v", m[FieldOperation])
	}
	if m[FieldError] != "fork failed" {
		t.Errorf("unexpected error field: %v", m[FieldError])
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stdout" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamps on by default")
	}
}

func TestConfigValidate(t *testing.T) {
	good := Config{Level: "debug", Format: "json"}
	if err := good.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := Config{Level: "verbose", Format: "json"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown level")
	}

	bad = Config{Level: "info", Format: "xml"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestDebugEnvForcesDebugLevel(t *testing.T) {
	t.Setenv("DEBUG", "true")
	t.Setenv("LOG_LEVEL", "warn")

	l := NewFromEnv("test")
	if l == nil {
		t.Fatal("expected a logger")
	}
	// The component-scoped child shares the debug level.
	if c := l.WithComponent("router"); c == nil {
		t.Fatal("expected a component logger")
	}
}
