package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"github.com/seniorcare/admin-api/internal/middleware"
	"github.com/seniorcare/admin-api/internal/model"
)

// Handler is anything that can attach its routes to a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine  *gin.Engine
	auth    *middleware.AuthMiddleware
	metrics *routerMetrics

	healthH        Handler
	authH          Handler
	organizationH  Handler
	userH          Handler
	elderlyH       Handler
	caregiverH     Handler
	familyMemberH  Handler
	appointmentH   Handler
	documentH      Handler
	medicationH    Handler
	medicalHistH   Handler
	notificationH  Handler
	auditH         Handler
	responseCache  *middleware.ResponseCache
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimit     rate.Limit
	RateBurst     int
	Timeout       time.Duration
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
	CacheTTL      time.Duration
}

type Handlers struct {
	Health         Handler
	Auth           Handler
	Organization   Handler
	User           Handler
	Elderly        Handler
	Caregiver      Handler
	FamilyMember   Handler
	Appointment    Handler
	Document       Handler
	Medication     Handler
	MedicalHistory Handler
	Notification   Handler
	Audit          Handler
}

func NewRouter(auth *middleware.AuthMiddleware, handlers Handlers, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = 30 * time.Second
	}

	r := &Router{
		engine:        engine,
		auth:          auth,
		metrics:       initRouterMetrics(config.MetricsPrefix),
		healthH:       handlers.Health,
		authH:         handlers.Auth,
		organizationH: handlers.Organization,
		userH:         handlers.User,
		elderlyH:      handlers.Elderly,
		caregiverH:    handlers.Caregiver,
		familyMemberH: handlers.FamilyMember,
		appointmentH:  handlers.Appointment,
		documentH:     handlers.Document,
		medicationH:   handlers.Medication,
		medicalHistH:  handlers.MedicalHistory,
		notificationH: handlers.Notification,
		auditH:        handlers.Audit,
		responseCache: middleware.NewResponseCache(config.CacheTTL),
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(config.CORSConfig),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.healthH.RegisterRoutes(api)

	// Public routes
	r.authH.RegisterRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	protected.Use(r.responseCache.Cache())

	r.userH.RegisterRoutes(protected)
	r.elderlyH.RegisterRoutes(protected)
	r.caregiverH.RegisterRoutes(protected)
	r.familyMemberH.RegisterRoutes(protected)
	r.appointmentH.RegisterRoutes(protected)
	r.documentH.RegisterRoutes(protected)
	r.medicationH.RegisterRoutes(protected)
	r.medicalHistH.RegisterRoutes(protected)
	r.notificationH.RegisterRoutes(protected)

	// Administrative routes
	admin := protected.Group("")
	admin.Use(r.auth.RequireRole(model.RoleAdmin))
	r.organizationH.RegisterRoutes(admin)
	r.auditH.RegisterRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	if prefix == "" {
		prefix = "seniorcare_api"
	}
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
