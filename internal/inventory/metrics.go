package inventory

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	ProductsAdded  prometheus.Counter
	LockRecoveries prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProductsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_products_added_total",
			Help: "Products added through the form endpoint",
		}),
		LockRecoveries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_store_lock_recoveries_total",
			Help: "Product store locks reclaimed after a panicking critical section",
		}),
	}
	reg.MustRegister(m.ProductsAdded, m.LockRecoveries)
	return m
}

// LockRecovered is meant to be passed to WithRecoveryHook.
func (m *Metrics) LockRecovered() {
	if m == nil {
		return
	}
	m.LockRecoveries.Inc()
}

func (m *Metrics) productAdded() {
	if m == nil {
		return
	}
	m.ProductsAdded.Inc()
}
