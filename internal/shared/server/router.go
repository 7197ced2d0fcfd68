package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ecofootprint-backend/internal/llm"
	"ecofootprint-backend/internal/llm/gemini"
	"ecofootprint-backend/internal/recommendations"
	"ecofootprint-backend/internal/services/health"
	"ecofootprint-backend/internal/shared/config"
	"ecofootprint-backend/internal/shared/metrics"
	"ecofootprint-backend/internal/shared/server/middleware"
	"ecofootprint-backend/internal/shared/server/respond"
	"ecofootprint-backend/internal/shared/storage/db"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Identity(),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "DEFAULT",
			GroupFor:     rateGroupFor,
			Limiter:      middleware.NewRateLimiter(time.Now),
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT":  {Rate: 10, Burst: 20},
				"GENERATE": {Rate: 1, Burst: 3},
			},
		}),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var repo recommendations.Repo
	if sqlDB != nil {
		repo = &recommendations.PGRepo{DB: sqlDB}
	} else {
		repo = recommendations.NewMemoryRepo()
	}

	var client llm.Client
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.LLMModel)
		if err != nil {
			log.Printf("failed to initialize model client: %v", err)
			client = llm.UnavailableClient{Reason: "model client initialization failed"}
		} else {
			client = geminiClient
		}
	} else {
		log.Printf("GEMINI_API_KEY is not set, model calls will fail")
		client = llm.UnavailableClient{Reason: "model client not configured: missing GEMINI_API_KEY"}
	}

	gateway := &llm.Gateway{Client: client, Timeout: cfg.LLMTimeout}
	svc := &recommendations.Service{
		Gateway:   gateway,
		Repo:      repo,
		Forwarder: recommendations.NewForwarder(cfg.ForwardURL),
	}
	handler := recommendations.NewHandler(svc)
	healthSvc := health.NewService()

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	})
	api.GET("/metrics", metrics.Handler())
	handler.RegisterRoutes(api)

	return r
}

func rateGroupFor(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/recommendations" {
		return "GENERATE"
	}
	return "DEFAULT"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
