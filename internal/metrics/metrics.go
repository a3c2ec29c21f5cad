package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cleared-dev/runway/internal/model"
)

// Metrics holds the projection metrics.
type Metrics struct {
	DaysSimulated  prometheus.Counter
	Postings       *prometheus.CounterVec
	PostedAmount   *prometheus.CounterVec
	AccountBalance *prometheus.GaugeVec
}

// New creates the projection metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DaysSimulated: factory.NewCounter(prometheus.CounterOpts{
			Name: "runway_days_simulated_total",
			Help: "Total number of simulated days",
		}),
		Postings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "runway_postings_total",
			Help: "Total number of postings by generator kind",
		}, []string{"kind"}),
		PostedAmount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "runway_posted_amount_total",
			Help: "Total amount moved by generator kind",
		}, []string{"kind"}),
		AccountBalance: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "runway_account_balance",
			Help: "Account balance at the end of the last simulated day",
		}, []string{"account"}),
	}
}

// DayCompleted implements engine.Observer.
func (m *Metrics) DayCompleted(entry model.Entry) {
	m.DaysSimulated.Inc()
	for _, p := range entry.Postings {
		kind := string(p.Kind)
		m.Postings.WithLabelValues(kind).Inc()
		m.PostedAmount.WithLabelValues(kind).Add(p.Amount.InexactFloat64())
	}
	for name, v := range entry.Balances {
		m.AccountBalance.WithLabelValues(name).Set(v.InexactFloat64())
	}
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
