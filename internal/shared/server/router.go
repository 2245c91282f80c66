package server

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-intake/internal/analytics"
	"resume-intake/internal/candidates"
	"resume-intake/internal/ingest"
	"resume-intake/internal/services/health"
	"resume-intake/internal/shared/config"
	"resume-intake/internal/shared/metrics"
	"resume-intake/internal/shared/server/middleware"
	"resume-intake/internal/shared/server/respond"
	"resume-intake/internal/shared/storage/db"
)

// RouterDeps carries everything the router needs wired up.
type RouterDeps struct {
	Config            config.Config
	DB                *sql.DB
	Health            *health.Service
	IngestHandler     *ingest.Handler
	CandidatesHandler *candidates.Handler
	AnalyticsHandler  *analytics.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		payload, healthy := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !healthy {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, payload)
	})

	deps.IngestHandler.RegisterRoutes(api)
	deps.CandidatesHandler.RegisterRoutes(api)
	deps.AnalyticsHandler.RegisterRoutes(api)

	if deps.Config.Env == "dev" {
		dev := api.Group("/dev")
		dev.POST("/recreate-db", func(c *gin.Context) {
			if err := db.Reset(c.Request.Context(), deps.DB); err != nil {
				respond.Error(c, http.StatusInternalServerError, "internal", "failed to recreate database", err.Error())
				return
			}
			respond.OK(c, gin.H{"message": "Database recreated"})
		})
	}

	return r
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
