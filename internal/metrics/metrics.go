package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal *prometheus.CounterVec
	loginAttempts     *prometheus.CounterVec
	registerOnce      sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notes",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the notes API.",
		}, []string{"method", "path", "status"})

		loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "notes",
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"result"})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// IncLogin records a login attempt outcome ("success", "failure" or "limited").
func IncLogin(result string) {
	if loginAttempts == nil {
		return
	}
	loginAttempts.WithLabelValues(result).Inc()
}
