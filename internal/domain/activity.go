package domain

import (
	"fmt"
	"strings"
	"time"
)

type ActivityCategory string

const (
	ActivityInfo    ActivityCategory = "INFO"
	ActivityWarn    ActivityCategory = "WARN"
	ActivitySuccess ActivityCategory = "SUCCESS"
	ActivityAdmin   ActivityCategory = "ADMIN"
)

func ParseActivityCategory(raw string) (ActivityCategory, error) {
	category := ActivityCategory(strings.ToUpper(strings.TrimSpace(raw)))
	switch category {
	case ActivityInfo, ActivityWarn, ActivitySuccess, ActivityAdmin:
		return category, nil
	default:
		return "", fmt.Errorf("unsupported activity category %q", raw)
	}
}

// ActivityEntry is append-only. AccountID is empty for system events.
type ActivityEntry struct {
	ID        int64
	Timestamp time.Time
	Category  ActivityCategory
	Event     string
	AccountID AccountID
}

const DefaultActivityLimit = 50

// ClampActivityTimestamp keeps the log monotonic when the clock steps back.
func ClampActivityTimestamp(previous, next time.Time) time.Time {
	if next.Before(previous) {
		return previous
	}
	return next
}
