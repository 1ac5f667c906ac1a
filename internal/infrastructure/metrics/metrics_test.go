package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := New()

	m.RecordLookup("found")
	m.RecordLookup("found")
	m.RecordLookup("not_found")
	m.RecordVerdict(true)
	m.RecordVerdict(false)
	m.RecordVerdict(false)
	m.RecordPreferenceWrite("add", nil)
	m.RecordPreferenceWrite("replace", errors.New("disk full"))
	m.IncrementRateLimited()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ProductLookups.WithLabelValues("found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProductLookups.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ScanVerdicts.WithLabelValues("safe")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ScanVerdicts.WithLabelValues("unsafe")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PreferenceWrites.WithLabelValues("add", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PreferenceWrites.WithLabelValues("replace", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimited))
}

func TestNew_IndependentRegistries(t *testing.T) {
	first := New()
	second := New()

	first.RecordVerdict(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(first.ScanVerdicts.WithLabelValues("safe")))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.ScanVerdicts.WithLabelValues("safe")))
}
