package ports

import "time"

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeDenied  Outcome = "denied"
	OutcomeFailed  Outcome = "failed"
)

type Metrics interface {
	ObserveOperation(operation string, outcome Outcome, elapsed time.Duration)
	SetQuota(accountID string, tier string, consumed int, ceiling *int)
}

type NopMetrics struct{}

func (NopMetrics) ObserveOperation(string, Outcome, time.Duration) {}

func (NopMetrics) SetQuota(string, string, int, *int) {}
