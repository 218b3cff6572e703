package prometheus

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperationCountsByOutcome(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveOperation("analysis", ports.OutcomeSuccess, 2*time.Second)
	m.ObserveOperation("analysis", ports.OutcomeDenied, time.Millisecond)
	m.ObserveOperation("analysis", ports.OutcomeSuccess, 3*time.Second)
	m.ObserveOperation("proposal", ports.OutcomeFailed, time.Second)

	assert.InDelta(t, 2, testutil.ToFloat64(m.operations.WithLabelValues("analysis", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.operations.WithLabelValues("analysis", "denied")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.operations.WithLabelValues("proposal", "failed")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestSetQuotaDropsCeilingForUnlimitedTiers(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetQuota("acc-1", "PRO", 3, domain.IntPtr(10))
	assert.InDelta(t, 3, testutil.ToFloat64(m.consumed.WithLabelValues("acc-1", "PRO")), 0)
	assert.InDelta(t, 10, testutil.ToFloat64(m.ceiling.WithLabelValues("acc-1", "PRO")), 0)

	m.SetQuota("acc-2", "ENTERPRISE", 40, nil)
	assert.Equal(t, 1, testutil.CollectAndCount(m.ceiling))
	assert.Equal(t, 2, testutil.CollectAndCount(m.consumed))
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveOperation("analysis", ports.OutcomeSuccess, time.Second)
	m.SetQuota("acc-1", "FREE", 1, domain.IntPtr(1))

	path := filepath.Join(t.TempDir(), "tenderlogic.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, `tenderlogic_operations_total{operation="analysis",outcome="success"} 1`)
	assert.Contains(t, body, `tenderlogic_quota_ceiling{account="acc-1",tier="FREE"} 1`)
	assert.Contains(t, body, "# TYPE tenderlogic_operation_duration_seconds histogram")
}
