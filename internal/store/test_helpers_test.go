package store

import (
	"context"
	"testing"
	"time"

	"github.com/example/dayops/internal/core/validate"
	"github.com/example/dayops/internal/ports/secondary"
)

const testDevice = "dev_test1"

var testClock = time.Date(2026, 2, 18, 10, 0, 0, 0, time.UTC)

// memoryGateway is an in-memory StateGateway with injectable failures.
type memoryGateway struct {
	record *secondary.StateRecord

	initOK  bool
	initErr error
	getErr  error
	putErr  error

	puts int
}

func newMemoryGateway() *memoryGateway {
	return &memoryGateway{initOK: true}
}

func (g *memoryGateway) Init(ctx context.Context) (bool, error) {
	return g.initOK, g.initErr
}

func (g *memoryGateway) Get(ctx context.Context, key string) (*secondary.StateRecord, error) {
	if g.getErr != nil {
		return nil, g.getErr
	}
	if g.record == nil || g.record.ID != key {
		return nil, nil
	}
	copied := *g.record
	return &copied, nil
}

func (g *memoryGateway) Put(ctx context.Context, record *secondary.StateRecord) error {
	if g.putErr != nil {
		return g.putErr
	}
	copied := *record
	g.record = &copied
	g.puts++
	return nil
}

func (g *memoryGateway) Close() error { return nil }

// newTestStore builds an initialized store over a fresh in-memory
// gateway with a fixed clock.
func newTestStore(t *testing.T) (*Store, *memoryGateway) {
	t.Helper()
	return newTestStoreAt(t, testClock)
}

func newTestStoreAt(t *testing.T, at time.Time) (*Store, *memoryGateway) {
	t.Helper()
	gateway := newMemoryGateway()
	s := New(gateway, testDevice, WithClock(func() time.Time { return at }))
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return s, gateway
}

// typed extracts the typed error, failing the test when err is not one.
func typed(t *testing.T, err error) *validate.Error {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	verr, ok := validate.AsError(err)
	if !ok {
		t.Fatalf("not a typed error: %v", err)
	}
	return verr
}
