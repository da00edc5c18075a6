package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ZanzyTHEbar/calm-profile/internal/assessment"
	"github.com/ZanzyTHEbar/calm-profile/internal/cache"
	"github.com/ZanzyTHEbar/calm-profile/internal/checkout"
	"github.com/ZanzyTHEbar/calm-profile/internal/config"
	"github.com/ZanzyTHEbar/calm-profile/internal/database"
	"github.com/ZanzyTHEbar/calm-profile/internal/errors"
	"github.com/ZanzyTHEbar/calm-profile/internal/middleware"
	"github.com/ZanzyTHEbar/calm-profile/internal/monitoring"
	"github.com/ZanzyTHEbar/calm-profile/internal/privacy"
	"github.com/ZanzyTHEbar/calm-profile/internal/ratelimit"
	"github.com/ZanzyTHEbar/calm-profile/internal/resilience"
	"github.com/ZanzyTHEbar/calm-profile/internal/security"
	"github.com/ZanzyTHEbar/calm-profile/internal/stats"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/ZanzyTHEbar/calm-profile/docs"
)

const (
	version          = "1.0.0"
	assessScope      = "assess"
	staticContentTTL = time.Hour
	statsTTL         = 10 * time.Minute
)

// server holds the wired services behind the HTTP API
type server struct {
	cfg         *config.Config
	db          *database.DB
	scorer      *assessment.Scorer
	assessments *database.AssessmentService
	stats       *stats.Service
	privacy     *privacy.PrivacyService
	checkout    *checkout.Service
	redis       *ratelimit.RedisClient
	limiter     *ratelimit.RateLimiter
	static      *cache.Cache
	compression *middleware.CompressionMiddleware
	metrics     *monitoring.Metrics
	prom        *monitoring.PrometheusCollectors
	logger      *monitoring.Logger
}

func newServer(ctx context.Context, cfg *config.Config) (*server, error) {
	scorer, err := assessment.NewScorerFromStore(cfg.DataDir, cfg.ModelName)
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring model: %w", err)
	}

	db, err := database.NewDB(ctx, database.Options{DataDir: cfg.DataDir, URL: cfg.DatabaseURL})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := ratelimit.NewRedisClient(ctx, ratelimit.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		slog.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	}

	return assemble(cfg, db, scorer, redisClient, checkoutProvider(cfg)), nil
}

func checkoutProvider(cfg *config.Config) checkout.Provider {
	if cfg.StripeEnabled() {
		return checkout.NewStripeProvider(cfg.StripeSecretKey, nil)
	}
	slog.Warn("STRIPE_SECRET_KEY not set, checkout returns development links")
	return &checkout.StubProvider{FrontendURL: cfg.FrontendURL}
}

// assemble builds the services over already opened backends
func assemble(cfg *config.Config, db *database.DB, scorer *assessment.Scorer, redisClient *ratelimit.RedisClient, provider checkout.Provider) *server {
	metrics := monitoring.NewMetrics()
	prom := monitoring.NewPrometheusCollectors()
	metrics.AttachPrometheus(prom)
	logger := monitoring.NewLoggerWithWriter(os.Stdout, cfg.LogLevel)

	repo := database.NewRepository(db)
	statsService := stats.NewService(repo, scorer.Content(), statsTTL)

	limiterCfg := ratelimit.DefaultConfig()
	limiterCfg.LimitPerMin = cfg.RateLimitPerMin

	return &server{
		cfg:         cfg,
		db:          db,
		scorer:      scorer,
		assessments: database.NewAssessmentService(repo, scorer, cfg.JWTSecret),
		stats:       statsService,
		privacy:     privacy.NewService(repo, statsService, cfg.RetentionDays),
		checkout: checkout.NewService(provider, checkout.Options{
			FrontendURL:   cfg.FrontendURL,
			WebhookSecret: cfg.StripeWebhookSecret,
			Retry:         resilience.DefaultRetryConfig(),
			Breaker: resilience.CircuitBreakerConfig{
				FailureThreshold: 5,
				RecoveryTimeout:  30 * time.Second,
			},
		}, metrics, logger),
		redis:       redisClient,
		limiter:     ratelimit.NewRateLimiter(redisClient, limiterCfg, metrics),
		static:      cache.NewCache(staticContentTTL),
		compression: middleware.NewCompressionMiddleware(middleware.DefaultCompressionConfig()),
		metrics:     metrics,
		prom:        prom,
		logger:      logger,
	}
}

func (s *server) startBackgroundJobs(ctx context.Context) {
	s.privacy.ScheduleCleanup(ctx, cleanupInterval)
	s.static.StartCleanup(ctx, cacheSweepPeriod)
	s.limiter.StartCleanup(ctx, cacheSweepPeriod)
}

// Close releases the database and Redis connections
func (s *server) Close() {
	errors.SafeClose(s.db, "database")
	if s.redis.IsEnabled() {
		errors.SafeClose(s.redis, "redis")
	}
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(security.DefaultConfig().TrustedProxies); err != nil {
		slog.Warn("Failed to set trusted proxies", "error", err)
	}

	// Add monitoring middleware first (to capture all requests)
	r.Use(monitoring.MonitoringMiddleware(s.metrics, s.logger))
	r.Use(errors.RecoveryHandler())
	r.Use(errors.ErrorHandler())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(security.SecurityHeadersMiddleware(security.Config{EnableHSTS: s.cfg.EnableHSTS}))
	r.Use(s.compression.Handler())

	api := r.Group("/api")
	api.Use(security.APIContentSecurityPolicy())
	api.Use(security.RequestTimeout(s.cfg.RequestTimeout))
	api.Use(monitoring.BodySizeLimit(s.cfg.MaxBodyBytes))

	api.GET("/health", s.handleHealth)
	api.GET("/questions", s.static.Middleware(s.metrics), s.handleQuestions)
	api.POST("/assess", s.limiter.Middleware(assessScope), security.RequireJSON(), s.handleAssess)
	api.GET("/assessments/:id", s.handleGetAssessment)
	api.DELETE("/assessments/:id", s.handleDeleteAssessment)
	api.POST("/create-checkout", security.RequireJSON(), s.handleCreateCheckout)
	api.POST("/webhook/stripe", s.handleStripeWebhook)
	api.GET("/stats/archetypes", s.handleArchetypeStats)
	api.GET("/rate-limit", s.limiter.HandleStatus(assessScope))

	r.GET("/metrics", s.handleMetrics)
	r.GET("/metrics/prometheus", s.prom.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
