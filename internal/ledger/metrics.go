package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the ledger operations.
type Metrics struct {
	registrations    prometheus.Counter
	contacts         prometheus.Counter
	contactsRejected prometheus.Counter
	requestsOpened   prometheus.Counter
	requestsResolved prometheus.Counter
	posts            prometheus.Counter
	collectionSize   *prometheus.GaugeVec
}

// NewMetrics registers the ledger metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloodcorner_donor_registrations_total",
			Help: "Donors registered.",
		}),
		contacts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloodcorner_donor_contacts_total",
			Help: "Donation contacts recorded.",
		}),
		contactsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloodcorner_donor_contacts_rejected_total",
			Help: "Donation contacts rejected by the cooldown.",
		}),
		requestsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloodcorner_emergency_requests_opened_total",
			Help: "Emergency requests opened.",
		}),
		requestsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloodcorner_emergency_requests_resolved_total",
			Help: "Emergency requests resolved.",
		}),
		posts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bloodcorner_donation_posts_total",
			Help: "Donation posts added.",
		}),
		collectionSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "bloodcorner_collection_size",
			Help: "Current number of records per collection.",
		}, []string{"collection"}),
	}
	reg.MustRegister(
		m.registrations, m.contacts, m.contactsRejected,
		m.requestsOpened, m.requestsResolved, m.posts, m.collectionSize,
	)
	return m
}

// NopMetrics returns unregistered metrics, for tests and for running
// without a metrics endpoint.
func NopMetrics() *Metrics {
	m := NewMetrics(prometheus.NewRegistry())
	return m
}

func (m *Metrics) observeSizes(donors, requests, posts int) {
	m.collectionSize.WithLabelValues("donors").Set(float64(donors))
	m.collectionSize.WithLabelValues("requests").Set(float64(requests))
	m.collectionSize.WithLabelValues("posts").Set(float64(posts))
}
