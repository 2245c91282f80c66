package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"resume-intake/internal/analytics"
	"resume-intake/internal/candidates"
	"resume-intake/internal/ingest"
	"resume-intake/internal/llm/openai"
	"resume-intake/internal/services/health"
	"resume-intake/internal/shared/config"
	"resume-intake/internal/shared/server"
	"resume-intake/internal/shared/storage/db"
	"resume-intake/internal/shared/storage/object"
	localstore "resume-intake/internal/shared/storage/object/local"
	s3store "resume-intake/internal/shared/storage/object/s3"
)

// App holds the wired application dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	Store             object.ObjectStore
	CandidatesRepo    candidates.Repo
	AnalyticsRepo     analytics.Repo
	IngestService     *ingest.Service
	HealthService     *health.Service
	IngestHandler     *ingest.Handler
	CandidatesHandler *candidates.Handler
	AnalyticsHandler  *analytics.Handler
}

// Build connects the database, runs migrations, and wires services, handlers,
// and the router. The caller owns the returned App and must Close it.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	llmClient, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("build llm client: %w", err)
	}

	candidateRepo := &candidates.PGRepo{DB: sqlDB}
	analyticsRepo := &analytics.PGRepo{DB: sqlDB}
	ingestSvc := ingest.NewService(llmClient, candidateRepo, store, cfg.IngestWorkers)
	healthSvc := health.NewService(sqlDB)

	app := &App{
		Config:            cfg,
		DB:                sqlDB,
		Store:             store,
		CandidatesRepo:    candidateRepo,
		AnalyticsRepo:     analyticsRepo,
		IngestService:     ingestSvc,
		HealthService:     healthSvc,
		IngestHandler:     ingest.NewHandler(ingestSvc),
		CandidatesHandler: candidates.NewHandler(candidateRepo),
		AnalyticsHandler:  analytics.NewHandler(analyticsRepo),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		DB:                sqlDB,
		Health:            healthSvc,
		IngestHandler:     app.IngestHandler,
		CandidatesHandler: app.CandidatesHandler,
		AnalyticsHandler:  app.AnalyticsHandler,
	})

	return app, nil
}

// Close releases held resources.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}
