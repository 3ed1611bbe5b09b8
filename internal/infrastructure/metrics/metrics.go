package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder 收集名單異動與 HTTP 請求指標。
type Recorder struct {
	gatherer prometheus.Gatherer

	MutationsTotal  *prometheus.CounterVec
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New 在指定 registry 上註冊指標；reg 為 nil 時建立獨立 registry。
func New(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Recorder{
		gatherer: reg,
		MutationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uav_roster",
			Name:      "mutations_total",
			Help:      "Roster mutations by kind and result.",
		}, []string{"kind", "result"}),
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uav_roster",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "uav_roster",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveMutation 依結果分類：ok / confirm / error。
func (r *Recorder) ObserveMutation(kind string, err error) {
	if r == nil {
		return
	}
	r.MutationsTotal.WithLabelValues(kind, mutationResult(err)).Inc()
}

// ObserveRequest 記錄一次 HTTP 請求。
func (r *Recorder) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.RequestsTotal.WithLabelValues(method, route, statusClass(status)).Inc()
	r.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler 回傳 /metrics 使用的 HTTP handler。
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
