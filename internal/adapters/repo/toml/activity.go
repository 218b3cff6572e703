package toml

import (
	"context"
	"sort"

	"github.com/bnema/tenderlogic-cli/internal/domain"
)

func (s *Store) AppendActivity(ctx context.Context, entry domain.ActivityEntry) (domain.ActivityEntry, error) {
	err := s.update(ctx, func(file *fileSchema) error {
		if n := len(file.Activity); n > 0 {
			entry.Timestamp = domain.ClampActivityTimestamp(parseTime(file.Activity[n-1].Timestamp), entry.Timestamp)
		}
		entry.ID = file.NextActivityID
		file.NextActivityID++
		file.Activity = append(file.Activity, toActivitySchema(entry))
		return nil
	})
	if err != nil {
		return domain.ActivityEntry{}, err
	}

	return entry, nil
}

// RecentActivity returns at most limit entries, newest first. A non-positive
// limit falls back to domain.DefaultActivityLimit.
func (s *Store) RecentActivity(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	if limit <= 0 {
		limit = domain.DefaultActivityLimit
	}

	entries := []domain.ActivityEntry{}
	err := s.view(ctx, func(file *fileSchema) error {
		for _, entry := range file.Activity {
			entries = append(entries, fromActivitySchema(entry))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Timestamp.Equal(entries[j].Timestamp) {
			return entries[i].Timestamp.After(entries[j].Timestamp)
		}
		return entries[i].ID > entries[j].ID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}
