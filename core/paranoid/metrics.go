package paranoid

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics receives one observation per evaluated request.
type Metrics interface {
	ObserveVerdict(v Verdict)
}

type nopMetrics struct{}

func (nopMetrics) ObserveVerdict(Verdict) {}

// PrometheusMetrics counts verdicts in paranoid_verdicts_total{verdict}.
type PrometheusMetrics struct {
	verdicts *prometheus.CounterVec
}

// NewPrometheusMetrics registers the verdict counter with reg.
// A nil reg means prometheus.DefaultRegisterer. Registering twice reuses the
// existing collector.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	verdicts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paranoid",
			Name:      "verdicts_total",
			Help:      "Session fingerprint checks by verdict.",
		},
		[]string{"verdict"},
	)

	if err := reg.Register(verdicts); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		verdicts = existing
	}

	// All series start at zero.
	for _, v := range []Verdict{VerdictNewSession, VerdictMatch, VerdictMismatch} {
		verdicts.WithLabelValues(v.String())
	}

	return &PrometheusMetrics{verdicts: verdicts}, nil
}

// ObserveVerdict increments the counter for v.
func (m *PrometheusMetrics) ObserveVerdict(v Verdict) {
	m.verdicts.WithLabelValues(v.String()).Inc()
}
