package oracle

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsObserved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "confrep_oracle_requests_observed_total",
		Help: "Total number of decryption requests observed on the chain",
	})

	requestsSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "confrep_oracle_requests_skipped_total",
		Help: "Total number of observed requests already processed by the contract",
	})

	resultsDelivered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "confrep_oracle_results_delivered_total",
		Help: "Total number of decryption results accepted by the contract",
	})

	deliveryFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "confrep_oracle_delivery_failures_total",
		Help: "Total number of requests abandoned after exhausting delivery attempts",
	})

	deliveryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "confrep_oracle_delivery_duration_seconds",
		Help:    "Duration of request resolution and result delivery",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(requestsObserved)
	prometheus.MustRegister(requestsSkipped)
	prometheus.MustRegister(resultsDelivered)
	prometheus.MustRegister(deliveryFailures)
	prometheus.MustRegister(deliveryDuration)
}
