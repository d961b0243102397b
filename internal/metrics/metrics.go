package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tutor_market"

// Metrics собирает счётчики workflow. Методы безопасны для nil
type Metrics struct {
	transitions *prometheus.CounterVec
	purchases   prometheus.Counter
	quizScored  *prometheus.CounterVec
	quizScore   prometheus.Histogram
}

// New регистрирует метрики в reg. nil reg: метрики нигде не регистрируются
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_transitions_total",
			Help:      "Approval workflow state changes by record kind and resulting status.",
		}, []string{"kind", "status"}),
		purchases: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "purchases_total",
			Help:      "Entitlements appended to the ledger.",
		}),
		quizScored: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_submissions_total",
			Help:      "Scored quiz submissions by scoring mode.",
		}, []string{"mode"}),
		quizScore: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "quiz_score",
			Help:      "Number of correct answers per scored submission.",
			Buckets:   prometheus.LinearBuckets(0, 1, 11),
		}),
	}
}

// Transition учитывает смену статуса заявки или курса
func (m *Metrics) Transition(kind, status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(kind, status).Inc()
}

func (m *Metrics) Purchase() {
	if m == nil {
		return
	}
	m.purchases.Inc()
}

// QuizScored учитывает подсчёт результата теста
func (m *Metrics) QuizScored(mode string, score int) {
	if m == nil {
		return
	}
	m.quizScored.WithLabelValues(mode).Inc()
	m.quizScore.Observe(float64(score))
}
