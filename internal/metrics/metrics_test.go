package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CountsByLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	require.NoError(t, err)

	r.Categorized("fast_path", 3)
	r.Categorized("fallback", 2)
	r.Categorized("oracle", 0)
	r.OracleBatch(true)
	r.OracleBatch(false)
	r.OracleBatch(false)
	r.Analysis("success", 10*time.Millisecond)

	assert.Equal(t, 3.0, testutil.ToFloat64(r.categorized.WithLabelValues("fast_path")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.categorized.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.oracleBatches.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.oracleBatches.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.analyses.WithLabelValues("success")))
}

func TestRecorder_DuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewRecorder(reg)
	require.NoError(t, err)

	_, err = NewRecorder(reg)
	assert.Error(t, err)
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Categorized("fast_path", 1)
		r.OracleBatch(true)
		r.Analysis("failure", time.Second)
	})
}
