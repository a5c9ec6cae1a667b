package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"orgdash/internal/controllers"
	"orgdash/internal/repositories"
	"orgdash/internal/routes"
	"orgdash/internal/transport"
	"orgdash/pkg/config"
	"orgdash/pkg/database/postgresql"
	applogger "orgdash/pkg/logger"
	"orgdash/pkg/service"
	"orgdash/seeders"
)

func main() {
	seed := flag.Bool("seed", false, "Наполнить хранилище демо-данными перед запуском")
	flag.Parse()

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к хранилищу", zap.Error(err))
	}
	defer closeRepo()

	cache, closeCache, err := openCache(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}
	defer closeCache()

	var jwtSvc service.JWTService
	if cfg.JWT.SecretKey != "" {
		jwtSvc = service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
	} else {
		logger.Warn("JWT_SECRET_KEY не задан: аутентификация выключена, все запросы выполняются как superuser")
	}

	if *seed {
		envelope, err := transport.ParseEnvelope(cfg.API.Envelope)
		if err != nil {
			logger.Fatal("неверный API_ENVELOPE", zap.Error(err))
		}
		records := controllers.NewRecordController(repo, cache, envelope, cfg.Server.AggregateCacheTTL, logger.Named("seed"))
		if err := seeders.NewSeeder(repo, records, logger.Named("seed")).SeedDemoData(ctx); err != nil {
			logger.Fatal("❌ Ошибка наполнения демо-данными", zap.Error(err))
		}
	}

	e := echo.New()
	e.HideBanner = true
	loggers := &routes.Loggers{
		Main:    logger,
		Auth:    logger.Named("auth"),
		Records: logger.Named("records"),
	}
	if err := routes.InitRouter(e, repo, cache, jwtSvc, loggers, cfg); err != nil {
		logger.Fatal("не удалось собрать маршруты", zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Ошибка остановки сервера", zap.Error(err))
		}
	}()

	logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port), zap.String("envelope", cfg.API.Envelope))
	if err := e.Start(":" + cfg.Server.Port); err != nil && ctx.Err() == nil {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
	logger.Info("Сервер остановлен")
}

// openStorage: Postgres, если задан DATABASE_URL, иначе память процесса.
func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.RecordRepositoryInterface, func(), error) {
	if cfg.Postgres.DSN == "" {
		logger.Info("DATABASE_URL не задан: данные хранятся в памяти")
		return repositories.NewMemoryRecordRepository(), func() {}, nil
	}

	pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, nil, err
	}
	if err := postgresql.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	logger.Info("Подключение к Postgres установлено, миграции применены")
	return repositories.NewPostgresRecordRepository(pool, logger.Named("postgres")), pool.Close, nil
}

// openCache: Redis, если задан REDIS_ADDRESS, иначе кеш в памяти процесса.
func openCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.CacheRepositoryInterface, func(), error) {
	if cfg.Redis.Address == "" {
		logger.Info("REDIS_ADDRESS не задан: кеш агрегатов в памяти")
		return repositories.NewMemoryCacheRepository(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, nil, err
	}
	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("Ошибка закрытия Redis", zap.Error(err))
		}
	}
	return repositories.NewRedisCacheRepository(client, "orgdash:"), closeFn, nil
}
