// Package stamp implements per-field write stamps, the unit of
// conflict resolution for snapshot merges. A stamp pairs a field value
// with the wall-clock time and device that last wrote it. Reads and
// writes never panic; malformed stamps degrade to raw-field fallbacks.
package stamp

import "time"

// Stamp records the last write to a single mutable field.
type Stamp struct {
	Value     any    `json:"value"`
	UpdatedAt string `json:"updatedAt"`
	UpdatedBy string `json:"updatedByDeviceId"`
}

// Map holds the stamps of a record keyed by field name.
type Map map[string]Stamp

// New builds a stamp for a value written now by the given device.
func New(value any, deviceID string, at time.Time) Stamp {
	return Stamp{
		Value:     value,
		UpdatedAt: at.UTC().Format(time.RFC3339Nano),
		UpdatedBy: deviceID,
	}
}

// Write records a stamped write of field into stamps and returns the
// value so callers can mirror it onto the plain record field. A nil
// map is tolerated: the write is then mirror-only.
func Write(stamps Map, field string, value any, deviceID string, at time.Time) any {
	if stamps != nil {
		stamps[field] = New(value, deviceID, at)
	}
	return value
}

// Read returns the stamped value for field if present and well-formed,
// else raw if non-nil, else fallback.
func Read(stamps Map, field string, raw, fallback any) any {
	if stamps != nil {
		if s, ok := stamps[field]; ok && s.valid() {
			return s.Value
		}
	}
	if raw != nil {
		return raw
	}
	return fallback
}

// Latest picks the winning stamp between a local stamp a and an
// incoming stamp b. Ties and equal timestamps favor the incoming side.
// If only one side is a valid stamp that side wins; if neither is, the
// zero Stamp and false are returned.
func Latest(a, b Stamp) (Stamp, bool) {
	aValid, bValid := a.valid(), b.valid()
	switch {
	case !aValid && !bValid:
		return Stamp{}, false
	case !aValid:
		return b, true
	case !bValid:
		return a, true
	}

	at, aErr := parseTime(a.UpdatedAt)
	bt, bErr := parseTime(b.UpdatedAt)
	if aErr != nil {
		return b, true
	}
	if bErr != nil {
		return a, true
	}
	if at.After(bt) {
		return a, true
	}
	return b, true
}

// FromRaw converts a decoded JSON value into a Stamp. It accepts the
// canonical {value, updatedAt, updatedByDeviceId} object shape and
// rejects everything else.
func FromRaw(raw any) (Stamp, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return Stamp{}, false
	}
	updatedAt, ok := m["updatedAt"].(string)
	if !ok || updatedAt == "" {
		return Stamp{}, false
	}
	if _, err := parseTime(updatedAt); err != nil {
		return Stamp{}, false
	}
	updatedBy, _ := m["updatedByDeviceId"].(string)
	return Stamp{Value: m["value"], UpdatedAt: updatedAt, UpdatedBy: updatedBy}, true
}

// Raw converts a stamp back into its JSON object shape.
func (s Stamp) Raw() map[string]any {
	return map[string]any{
		"value":             s.Value,
		"updatedAt":         s.UpdatedAt,
		"updatedByDeviceId": s.UpdatedBy,
	}
}

func (s Stamp) valid() bool {
	if s.UpdatedAt == "" {
		return false
	}
	_, err := parseTime(s.UpdatedAt)
	return err == nil
}

func parseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
