package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
)

// ActivityRecorder appends audit entries. A failed append is logged and
// dropped; it never fails the operation being recorded.
type ActivityRecorder struct {
	log    ports.ActivityLog
	clock  ports.Clock
	logger *slog.Logger
}

func NewActivityRecorder(log ports.ActivityLog, clock ports.Clock, logger *slog.Logger) *ActivityRecorder {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ActivityRecorder{log: log, clock: clock, logger: logger}
}

func (r *ActivityRecorder) Record(ctx context.Context, category domain.ActivityCategory, accountID domain.AccountID, format string, args ...any) {
	event := fmt.Sprintf(format, args...)

	_, err := r.log.AppendActivity(ctx, domain.ActivityEntry{
		Timestamp: r.clock.Now(),
		Category:  category,
		Event:     event,
		AccountID: accountID,
	})
	if err != nil {
		r.logger.Warn("activity entry dropped", "category", category, "event", event, "error", err)
	}
}

func (r *ActivityRecorder) Recent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	entries, err := r.log.RecentActivity(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	return entries, nil
}
