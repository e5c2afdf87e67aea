package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"funnel-metrics-service/internal/config"
	"funnel-metrics-service/internal/logging"
	"funnel-metrics-service/internal/observability"
	"funnel-metrics-service/internal/sqlstore"

	eventsHttp "funnel-metrics-service/internal/events/adapters/http/fiber"
	eventsRepoPg "funnel-metrics-service/internal/events/adapters/postgres"
	eventsUsecase "funnel-metrics-service/internal/events/core/usecase"

	rollupHttp "funnel-metrics-service/internal/rollup/adapters/http/fiber"
	rollupRepoPg "funnel-metrics-service/internal/rollup/adapters/postgres"
	rollupCache "funnel-metrics-service/internal/rollup/adapters/redis"
	rollupPorts "funnel-metrics-service/internal/rollup/core/ports"
	rollupUsecase "funnel-metrics-service/internal/rollup/core/usecase"

	rankingHttp "funnel-metrics-service/internal/ranking/adapters/http/fiber"
	rankingRepoPg "funnel-metrics-service/internal/ranking/adapters/postgres"
	rankingDomain "funnel-metrics-service/internal/ranking/core/domain"
	rankingUsecase "funnel-metrics-service/internal/ranking/core/usecase"

	matchingHttp "funnel-metrics-service/internal/matching/adapters/http/fiber"
	matchingRepoPg "funnel-metrics-service/internal/matching/adapters/postgres"
	matchingDomain "funnel-metrics-service/internal/matching/core/domain"
	matchingUsecase "funnel-metrics-service/internal/matching/core/usecase"

	engagementHttp "funnel-metrics-service/internal/engagement/adapters/http/fiber"
	engagementRepoPg "funnel-metrics-service/internal/engagement/adapters/postgres"
	engagementUsecase "funnel-metrics-service/internal/engagement/core/usecase"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "funnel-metrics-service/docs"
)

// @title Funnel Metrics Service
// @version 1.0
// @description Funnel rollups, worker rankings, matching durations and landing page engagement.
// @BasePath /
func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx := context.Background()

	// DB connection
	db, err := sqlstore.Open(ctx, cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer db.Close()

	store := sqlstore.NewSQLDB(db)

	// Repositories
	eventRepository := eventsRepoPg.NewEventRepository(store)
	factRepository := rollupRepoPg.NewFactRepository(store)
	workerRepository := rankingRepoPg.NewWorkerRepository(store)
	sampleRepository := matchingRepoPg.NewSampleRepository(store)
	sessionRepository := engagementRepoPg.NewSessionRepository(store)

	// The catalog changes rarely; serve it from Redis when one is configured.
	var catalog rollupPorts.CatalogPort = factRepository
	rdb, err := rollupCache.NewClient(ctx, cfg.Redis)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb != nil {
		defer rdb.Close()
		catalog = rollupCache.NewCatalogCache(factRepository, rdb, cfg.Redis.CatalogTTL)
		logging.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CatalogTTL).Msg("catalog cache enabled")
	}

	location, err := time.LoadLocation(cfg.Matching.Timezone)
	if err != nil {
		logging.Fatal().Err(err).Str("timezone", cfg.Matching.Timezone).Msg("failed to load matching timezone")
	}

	// Usecases
	storeEventUC := eventsUsecase.NewStoreEventUseCase(eventRepository)
	getRollupUC := rollupUsecase.NewGetRollupUseCase(factRepository, catalog, rollupUsecase.Options{
		IncludeUnknownEntities: cfg.Rollup.IncludeUnknownEntities,
		MaxWindow:              cfg.Rollup.MaxWindow,
	})
	rankUC := rankingUsecase.NewRankAndPageUseCase(workerRepository, rankingDomain.WorkerSchema(), rankingUsecase.Options{
		DerivedSortCeiling: cfg.Ranking.DerivedSortCeiling,
		MaxPageSize:        cfg.Ranking.MaxPageSize,
	})
	durationUC := matchingUsecase.NewGetMatchingDurationStatsUseCase(sampleRepository, matchingUsecase.Options{
		Qualifying: matchingDomain.NewStatusSet(cfg.Matching.QualifyingStatuses...),
		Location:   location,
		MaxWindow:  cfg.Rollup.MaxWindow,
	})
	engagementUC := engagementUsecase.NewGetEngagementSummaryUseCase(sessionRepository, cfg.Rollup.MaxWindow)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		AppName:               "funnel-metrics-service",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})
	app.Use(recover.New())
	app.Use(observability.RequestMetrics())

	// events endpoints
	eventsHandler := eventsHttp.NewEventHandler(storeEventUC, cfg.Ingest.MaxBatch)
	app.Post("/events", eventsHandler.CreateEvent)
	app.Post("/events/bulk", eventsHandler.BulkCreateEvents)

	// report endpoints
	app.Get("/rollups", rollupHttp.NewRollupHandler(getRollupUC).GetRollup)
	app.Get("/rankings/workers", rankingHttp.NewRankingHandler(rankUC, cfg.Ranking.DefaultPageSize).ListWorkers)
	app.Get("/matching/durations", matchingHttp.NewMatchingHandler(durationUC).GetDurations)
	app.Get("/engagement", engagementHttp.NewEngagementHandler(engagementUC).GetEngagement)

	// Prometheus
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Server.Addr()); err != nil {
			logging.Error().Err(err).Msg("fiber stopped")
		}
	}()

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("fiber shutdown error")
	}

	logging.Info().Msg("server exiting")
}
