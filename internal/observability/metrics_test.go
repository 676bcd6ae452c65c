package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordUpdate("/start")
	m.RecordUpdate("/start")
	m.RecordUpdate("message")
	m.RecordError("/start")

	updates, errs := m.Snapshot()
	assert.Equal(t, int64(2), updates["/start"])
	assert.Equal(t, int64(1), updates["message"])
	assert.Equal(t, int64(1), errs["/start"])
}

func TestMetricsSnapshotIsACopy(t *testing.T) {
	m := NewMetrics()
	m.RecordUpdate("/me")

	updates, _ := m.Snapshot()
	updates["/me"] = 100

	fresh, _ := m.Snapshot()
	assert.Equal(t, int64(1), fresh["/me"])
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordUpdate("/start")
	m.RecordError("/start")

	updates, errs := m.Snapshot()
	assert.Empty(t, updates)
	assert.Empty(t, errs)
}
