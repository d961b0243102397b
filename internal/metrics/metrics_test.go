package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Transition("course", "pending")
	m.Transition("course", "approved")
	m.Transition("course", "approved")
	m.Purchase()
	m.QuizScored("global", 2)
	m.QuizScored("attempt", 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("course", "approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("course", "pending")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.purchases))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.quizScored.WithLabelValues("global")))

	count, err := testutil.GatherAndCount(reg, "tutor_market_quiz_score")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Transition("course", "approved")
		m.Purchase()
		m.QuizScored("global", 1)
	})
}

func TestNewWithoutRegistry(t *testing.T) {
	assert.NotPanics(t, func() {
		New(nil).Purchase()
	})
}
