package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	UpdateSuccess  = "success"
	UpdateRejected = "rejected"
	UpdateError    = "error"
)

var TotalRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Number of requests served by the health server.",
	},
	[]string{"path"},
)

var ProviderRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "provider_requests_total",
		Help: "Number of public IP lookups per IP provider.",
	},
	[]string{"provider"},
)

var CloudflareRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cloudflare_requests_total",
		Help: "Number of requests sent to the Cloudflare API.",
	},
	[]string{"method"},
)

var DNSUpdates = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dns_updates_total",
		Help: "Number of DNS record update attempts by result.",
	},
	[]string{"result"},
)

var LastUpdate = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "dns_last_update_timestamp_seconds",
		Help: "Unix time of the last successful DNS record update.",
	},
)

var initOnce sync.Once

func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(TotalRequests, ProviderRequests, CloudflareRequests, DNSUpdates, LastUpdate)
	})
}

func IncrementProvider(provider string) {
	ProviderRequests.WithLabelValues(provider).Inc()
}

func IncrementCloudflare(method string) {
	CloudflareRequests.WithLabelValues(method).Inc()
}

func IncrementReqs(r *http.Request) {
	TotalRequests.WithLabelValues(r.URL.Path).Inc()
}

// ObserveUpdate records the outcome of one update attempt.
func ObserveUpdate(result string) {
	DNSUpdates.WithLabelValues(result).Inc()
	if result == UpdateSuccess {
		LastUpdate.Set(float64(time.Now().Unix()))
	}
}
