// Package device manages the locally persisted device identity used as
// the updatedByDeviceId tag on field stamps. The identity is an opaque
// string, never a security credential.
package device

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/dayops/internal/config"
)

// Generate returns a fresh device identifier of the form
// dev_<base36-timestamp>_<8-hex>.
func Generate(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("dev_%s_%s", strconv.FormatInt(now.UnixMilli(), 36), suffix)
}

// LoadOrCreate returns the stable device identifier for this machine,
// generating and persisting one on first use.
func LoadOrCreate(dir string) (string, error) {
	cfg, err := config.LoadConfig(dir)
	if err != nil {
		cfg = &config.Config{Version: "1"}
	}
	if cfg.DeviceID != "" {
		return cfg.DeviceID, nil
	}

	cfg.DeviceID = Generate(time.Now())
	if err := config.SaveConfig(dir, cfg); err != nil {
		return "", fmt.Errorf("failed to persist device identity: %w", err)
	}
	return cfg.DeviceID, nil
}
