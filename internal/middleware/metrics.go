package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatormarket_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// RateLimitRejections counts requests refused by RateLimit.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatormarket_rate_limit_rejections_total",
		Help: "Requests rejected by the per-route rate limiter",
	}, []string{"resource"})

	// AuthDenials counts guard rejections by denial code.
	AuthDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatormarket_auth_denials_total",
		Help: "Requests denied by the authorization guard",
	}, []string{"code"})

	// MessagesSent counts stored conversation messages.
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatormarket_messages_sent_total",
		Help: "Total number of conversation messages stored",
	})

	// VerificationEmails counts verification mail attempts by outcome.
	VerificationEmails = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatormarket_verification_emails_total",
		Help: "Verification emails attempted, by outcome",
	}, []string{"outcome"})

	// SweepDeletedUsers counts accounts removed by the unverified-account sweep.
	SweepDeletedUsers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatormarket_sweep_deleted_users_total",
		Help: "Unverified accounts removed by the cleanup sweep",
	})
)

var (
	promOnce sync.Once
	promHTTP *fiberprometheus.FiberPrometheus
)

// InitMetrics builds the HTTP request instrumentation for serviceName.
// Collectors live in the default registry, so only the first call registers.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promHTTP = fiberprometheus.New(serviceName)
	})
	return promHTTP
}

// MetricsMiddleware returns the request instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
