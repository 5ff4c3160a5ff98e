package api

import (
	"context"
	"fmt"
	"time"

	_ "crisiscorner/docs"
	"crisiscorner/internal/app/config"
	"crisiscorner/internal/app/handler"
	"crisiscorner/internal/app/metrics"
	"crisiscorner/internal/app/middleware"
	"crisiscorner/internal/app/redis"
	"crisiscorner/internal/app/repository"
	"crisiscorner/internal/app/service"
	"crisiscorner/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
)

// RouterDeps зависимости HTTP роутера
type RouterDeps struct {
	Config *config.Config
	Logger *log.Logger
	Store  repository.Store
	// LimiterStore общее хранилище счётчиков лимита. nil означает память процесса.
	LimiterStore limiter.Store
	Metrics      *metrics.Metrics
	// Clock источник времени для отметок заявок. nil означает time.Now.
	Clock service.Clock
}

// NewRouter собирает gin роутер со всеми middleware и маршрутами
func NewRouter(d RouterDeps) (*gin.Engine, *handler.Handler, error) {
	var opts []service.MutationOption
	if d.Clock != nil {
		opts = append(opts, service.WithClock(d.Clock))
	}

	query := service.NewQueryService(d.Logger, d.Store, d.Config.PageSize)
	mutation := service.NewMutationService(d.Logger, d.Store, opts...)
	h := handler.NewHandler(d.Logger, query, mutation, d.Store, d.Metrics)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Logger),
		middleware.AccessLog(d.Logger),
		d.Metrics.Middleware(),
		cors.New(cors.Config{
			AllowOrigins:     d.Config.CORS.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
			ExposeHeaders:    []string{middleware.HeaderRequestID},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
	)

	if d.Config.RateLimit.Enabled {
		rl, err := middleware.RateLimit(d.Config.RateLimit, d.LimiterStore)
		if err != nil {
			return nil, nil, err
		}
		r.Use(rl)
	}

	h.RegisterAPIRoutes(r, d.Metrics.Handler())

	return r, h, nil
}

// StartServer поднимает хранилище, Redis и HTTP сервер и блокируется до остановки ctx
func StartServer(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	logger.Info("Starting server")

	store, err := repository.New(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("ошибка инициализации хранилища: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.WithError(err).Warn("close store")
		}
	}()

	migrateCtx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
	err = store.Migrate(migrateCtx)
	cancel()
	if err != nil {
		return err
	}

	deps := RouterDeps{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Metrics: metrics.New(),
	}

	if cfg.RateLimit.Enabled && cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			logger.WithError(err).Warn("redis unavailable, rate limit counters fall back to memory")
		} else {
			defer redisClient.Close()
			deps.LimiterStore = redisClient.LimiterStore("ratelimit")
		}
	}

	router, h, err := NewRouter(deps)
	if err != nil {
		return err
	}

	app := pkg.NewApp(cfg, router, h)
	if err := app.RunApp(ctx); err != nil {
		return err
	}

	logger.Info("Server down")
	return nil
}
