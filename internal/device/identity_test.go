package device

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateFormat(t *testing.T) {
	id := Generate(time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC))

	if !strings.HasPrefix(id, "dev_") {
		t.Errorf("id = %q, want dev_ prefix", id)
	}
	parts := strings.Split(id, "_")
	if len(parts) != 3 {
		t.Fatalf("id = %q, want three parts", id)
	}
	if len(parts[2]) != 8 {
		t.Errorf("suffix = %q, want 8 chars", parts[2])
	}
}

func TestGenerateIsUnique(t *testing.T) {
	now := time.Now()
	if Generate(now) == Generate(now) {
		t.Error("same-instant ids must differ")
	}
}

func TestLoadOrCreatePersists(t *testing.T) {
	dir := t.TempDir()

	first, err := LoadOrCreate(dir)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if first == "" {
		t.Fatal("empty device id")
	}

	second, err := LoadOrCreate(dir)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if second != first {
		t.Errorf("identity not stable: %q vs %q", first, second)
	}
}
