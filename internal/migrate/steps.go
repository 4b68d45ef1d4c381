package migrate

import "github.com/example/dayops/internal/models"

// Step transforms a document-shaped state map from one schema version
// to the next. Steps are pure functions of (state, ctx).
type Step func(state map[string]any, ctx Context) map[string]any

// steps maps a schema version to the step that upgrades it by one.
var steps = map[int]Step{
	1: stepV1RetrofitStamps,
	2: stepV2AddDemoModeFlag,
}

// stepV1RetrofitStamps attaches field stamps to every record's
// designated mutable fields. The stamp timestamp comes from the
// record's own updatedAt when present, otherwise from the migration
// time; the local device claims authorship.
func stepV1RetrofitStamps(state map[string]any, ctx Context) map[string]any {
	for collection, fields := range models.MutableFields {
		if len(fields) == 0 {
			continue
		}
		for _, record := range rawRecords(state, collection) {
			stamps, _ := record["stamps"].(map[string]any)
			if stamps == nil {
				stamps = map[string]any{}
			}

			updatedAt, _ := record["updatedAt"].(string)
			if updatedAt == "" {
				updatedAt = ctx.NowISO
			}

			for _, field := range fields {
				if _, stamped := stamps[field]; stamped {
					continue
				}
				value, present := record[field]
				if !present {
					continue
				}
				stamps[field] = map[string]any{
					"value":             value,
					"updatedAt":         updatedAt,
					"updatedByDeviceId": ctx.DeviceID,
				}
			}
			record["stamps"] = stamps
		}
	}

	state["schemaVersion"] = float64(2)
	return state
}

// stepV2AddDemoModeFlag introduces the explicit isDemoMode boolean.
func stepV2AddDemoModeFlag(state map[string]any, ctx Context) map[string]any {
	if _, ok := state["isDemoMode"].(bool); !ok {
		state["isDemoMode"] = false
	}
	state["schemaVersion"] = float64(3)
	return state
}

// rawRecords returns the object-shaped entries of an array collection,
// tolerating missing or malformed collections.
func rawRecords(state map[string]any, collection string) []map[string]any {
	list, ok := state[collection].([]any)
	if !ok {
		return nil
	}
	records := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if record, ok := entry.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records
}
