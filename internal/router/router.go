package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/stefanpalsson415/family-care-api/internal/config"
	"github.com/stefanpalsson415/family-care-api/internal/handler"
	"github.com/stefanpalsson415/family-care-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine  *gin.Engine
	auth    *middleware.AuthMiddleware
	health  *handler.HealthHandler
	metrics *routerMetrics
	limiter interface{ Stop() }
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func newRouterMetrics() *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests processed",
		}, []string{"method", "path", "status"}),
	}
}

func (m *routerMetrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}

func NewRouter(
	cfg *config.Config,
	logger zerolog.Logger,
	auth *middleware.AuthMiddleware,
	health *handler.HealthHandler,
	handlers ...Handler,
) *Router {
	engine := gin.New()

	metrics := newRouterMetrics()
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(logger),
		limiter.RateLimit(),
		metrics.middleware(),
	)

	engine.GET("/health", health.HealthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")
	v1.Use(auth.Authenticate(), auth.RequireFamily())
	for _, h := range handlers {
		h.RegisterRoutes(v1)
	}

	return &Router{
		engine:  engine,
		auth:    auth,
		health:  health,
		metrics: metrics,
		limiter: limiter,
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Close releases background resources held by the middleware chain.
func (r *Router) Close() {
	r.limiter.Stop()
}
