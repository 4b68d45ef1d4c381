// Package wire provides dependency injection for the dayops CLI.
// It creates the singleton store with lazy initialization.
package wire

import (
	"context"
	"log"
	"sync"

	"github.com/example/dayops/internal/adapters/sqlite"
	"github.com/example/dayops/internal/config"
	"github.com/example/dayops/internal/device"
	"github.com/example/dayops/internal/store"
)

var (
	storeInstance *store.Store
	once          sync.Once
)

// Store returns the singleton store, initialized on first use. The
// store always comes up, possibly degraded; only a broken local
// environment (no home directory, unwritable config) is fatal.
func Store() *store.Store {
	once.Do(initServices)
	return storeInstance
}

func initServices() {
	dir, err := config.Dir()
	if err != nil {
		log.Fatalf("failed to prepare config directory: %v", err)
	}

	deviceID, err := device.LoadOrCreate(dir)
	if err != nil {
		log.Fatalf("failed to load device identity: %v", err)
	}

	dbPath, err := config.DBPath()
	if err != nil {
		log.Fatalf("failed to resolve database path: %v", err)
	}

	gateway, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	storeInstance = store.New(gateway, deviceID)
	if err := storeInstance.Init(context.Background()); err != nil {
		log.Fatalf("failed to initialize store: %v", err)
	}
}
