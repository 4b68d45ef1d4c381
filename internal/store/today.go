package store

import (
	"context"

	"github.com/example/dayops/internal/core/validate"
	"github.com/example/dayops/internal/models"
)

// AddSuggestionToToday promotes a suggestion into the working plan.
// Adding the same suggestion twice is a no-op returning the existing
// plan item.
func (s *Store) AddSuggestionToToday(ctx context.Context, suggestionID string) (string, error) {
	suggestionID, verr := validate.ID(suggestionID, "suggestion id")
	if verr != nil {
		return "", verr
	}

	var itemID string
	err := s.commit(ctx, func(doc *models.Document) error {
		suggestion, bucket, found := doc.Suggestions.Find(suggestionID)
		if !found {
			return notFound("Suggestion", suggestionID)
		}

		for _, existing := range doc.Today {
			if !existing.Deleted && existing.SourceID == suggestion.SourceID && existing.Type == suggestion.Type {
				itemID = existing.ID
				return nil
			}
		}

		now := s.clock()
		item := &models.TodayItem{
			ID:       models.NewID(models.IDPrefix(models.CollectionToday), now),
			Title:    suggestion.Title,
			Type:     suggestion.Type,
			Bucket:   bucket,
			Meta:     suggestion.Meta,
			SourceID: suggestion.SourceID,
			Status:   models.TodayStatusNotStarted,
			Execution: models.Execution{
				Status: models.TodayStatusNotStarted,
				Notes:  []models.ExecutionNote{},
			},
			CreatedAt: s.nowISO(),
			Stamps: stampFields(s.deviceID, now, map[string]any{
				"status": models.TodayStatusNotStarted,
				"bucket": bucket,
			}),
		}
		doc.Today = append(doc.Today, item)
		itemID = item.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return itemID, nil
}

// AddCustomTodayItem appends a free-form item to the working plan.
func (s *Store) AddCustomTodayItem(ctx context.Context, title string) (string, error) {
	title, verr := validate.RequiredText(title, "title", "")
	if verr != nil {
		return "", verr
	}

	var itemID string
	err := s.commit(ctx, func(doc *models.Document) error {
		now := s.clock()
		item := &models.TodayItem{
			ID:     models.NewID(models.IDPrefix(models.CollectionToday), now),
			Title:  title,
			Type:   "custom",
			Bucket: models.BucketCould,
			Status: models.TodayStatusNotStarted,
			Execution: models.Execution{
				Status: models.TodayStatusNotStarted,
				Notes:  []models.ExecutionNote{},
			},
			CreatedAt: s.nowISO(),
			Stamps: stampFields(s.deviceID, now, map[string]any{
				"status": models.TodayStatusNotStarted,
				"bucket": models.BucketCould,
			}),
		}
		doc.Today = append(doc.Today, item)
		itemID = item.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return itemID, nil
}

// ReorderToday moves a plan item to a new position, clamping the
// target index into range.
func (s *Store) ReorderToday(ctx context.Context, id string, newIndex int) error {
	id, verr := validate.ID(id, "today id")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		from := -1
		for i, item := range doc.Today {
			if item.ID == id {
				from = i
				break
			}
		}
		if from < 0 {
			return notFound("Today item", id)
		}

		if newIndex < 0 {
			newIndex = 0
		}
		if newIndex >= len(doc.Today) {
			newIndex = len(doc.Today) - 1
		}
		if newIndex == from {
			return nil
		}

		item := doc.Today[from]
		doc.Today = append(doc.Today[:from], doc.Today[from+1:]...)
		rest := append([]*models.TodayItem{item}, doc.Today[newIndex:]...)
		doc.Today = append(doc.Today[:newIndex], rest...)
		return nil
	})
}

// SetTodayStatus updates a plan item's execution status. The legacy
// status mirror is written in the same mutation, and the archived flag
// is set exactly when the status is archived.
func (s *Store) SetTodayStatus(ctx context.Context, id, status string) error {
	id, verr := validate.ID(id, "today id")
	if verr != nil {
		return verr
	}
	status, verr = validate.StatusEnum(status, validate.TodayStatuses, "status")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		item := doc.FindToday(id)
		if item == nil || item.Deleted {
			return notFound("Today item", id)
		}

		item.Execution.Status = status
		item.Execution.UpdatedAt = s.nowISO()
		item.Status = status
		item.Archived = status == models.TodayStatusArchived
		s.writeStamp(&item.Stamps, "status", status)
		return nil
	})
}

// DeferTodayItem marks a plan item deferred, leaving its source entity
// untouched for a future suggestion rebuild to resurface.
func (s *Store) DeferTodayItem(ctx context.Context, id string) error {
	return s.SetTodayStatus(ctx, id, models.TodayStatusDeferred)
}

// ArchiveTodayItem archives a plan item.
func (s *Store) ArchiveTodayItem(ctx context.Context, id string) error {
	return s.SetTodayStatus(ctx, id, models.TodayStatusArchived)
}

// AddTodayUpdateNote appends an entry to a plan item's append-only
// update log.
func (s *Store) AddTodayUpdateNote(ctx context.Context, id, text string) error {
	id, verr := validate.ID(id, "today id")
	if verr != nil {
		return verr
	}
	text, verr = validate.RequiredText(text, "update note", "")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		item := doc.FindToday(id)
		if item == nil || item.Deleted {
			return notFound("Today item", id)
		}
		item.Execution.Notes = append(item.Execution.Notes, models.ExecutionNote{
			Text:      text,
			CreatedAt: s.nowISO(),
		})
		item.Execution.UpdatedAt = s.nowISO()
		return nil
	})
}

// SetSuggestionBucket moves a suggestion into another bucket by hand.
// The move survives the next rebuild only if the rules re-derive it;
// bucket overrides are a working aid, not a durable classification.
func (s *Store) SetSuggestionBucket(ctx context.Context, suggestionID, bucket string) error {
	suggestionID, verr := validate.ID(suggestionID, "suggestion id")
	if verr != nil {
		return verr
	}
	bucket, verr = validate.StatusEnum(bucket, models.Buckets, "bucket")
	if verr != nil {
		return verr
	}
	return s.commit(ctx, func(doc *models.Document) error {
		suggestion, current, found := doc.Suggestions.Find(suggestionID)
		if !found {
			return notFound("Suggestion", suggestionID)
		}
		if current == bucket {
			return nil
		}

		kept := []*models.Suggestion{}
		for _, sg := range doc.Suggestions.Bucket(current) {
			if sg.ID != suggestionID {
				kept = append(kept, sg)
			}
		}
		doc.Suggestions.SetBucket(current, kept)
		doc.Suggestions.SetBucket(bucket, append(doc.Suggestions.Bucket(bucket), suggestion))
		return nil
	})
}
