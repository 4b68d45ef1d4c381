package migrate

import "github.com/example/dayops/internal/models"

// guardPass normalizes a migrated state map so decoding cannot fail:
// every collection becomes an array of objects, the suggestion buckets
// exist, every record carries lifecycle flags, and scalar enums are
// clamped to known values. The pass is idempotent.
func guardPass(state map[string]any) map[string]any {
	for _, collection := range models.ArrayCollections {
		list, ok := state[collection].([]any)
		if !ok {
			state[collection] = []any{}
			continue
		}
		normalized := make([]any, 0, len(list))
		for _, entry := range list {
			record, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			applyLifecycleDefaults(record)
			normalized = append(normalized, record)
		}
		state[collection] = normalized
	}

	suggestions, ok := state[models.CollectionSuggestions].(map[string]any)
	if !ok {
		suggestions = map[string]any{}
	}
	for _, bucket := range models.Buckets {
		if _, ok := suggestions[bucket].([]any); !ok {
			suggestions[bucket] = []any{}
		}
	}
	state[models.CollectionSuggestions] = suggestions

	switch state["storageStatus"] {
	case models.StorageLoading, models.StorageReady, models.StorageDegraded:
	default:
		state["storageStatus"] = models.StorageReady
	}

	if _, ok := state["isDemoMode"].(bool); !ok {
		state["isDemoMode"] = false
	}
	if _, ok := state["lastActiveDate"].(string); !ok {
		state["lastActiveDate"] = ""
	}

	return state
}

func applyLifecycleDefaults(record map[string]any) {
	if _, ok := record["archived"].(bool); !ok {
		record["archived"] = false
	}
	if _, ok := record["deleted"].(bool); !ok {
		record["deleted"] = false
	}
	if _, ok := record["id"].(string); !ok {
		record["id"] = ""
	}
}
