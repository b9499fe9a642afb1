package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emprestai/emprestai-api/internal/cache"
	"github.com/emprestai/emprestai-api/internal/config"
	"github.com/emprestai/emprestai-api/internal/handler"
	"github.com/emprestai/emprestai-api/internal/jobs"
	"github.com/emprestai/emprestai-api/internal/repository"
	"github.com/emprestai/emprestai-api/internal/service"
	"github.com/emprestai/emprestai-api/internal/tools"
	"github.com/emprestai/emprestai-api/internal/tracing"
	"github.com/emprestai/emprestai-api/pkg/cache/redis"
	"github.com/emprestai/emprestai-api/pkg/database/postgres"
)

func main() {
	// Загрузка конфигурации приложения
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := cfg.NewLogger()

	shutdownTracing, err := tracing.InitTracing(cfg.OTELServiceName, cfg.OTELEndpoint, logger)
	if err != nil {
		logger.Fatalf("Ошибка инициализации трейсинга: %v", err)
	}

	// Подключение к PostgreSQL
	db, err := postgres.NewPostgresConnection(postgres.ConnectionInfo{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		logger.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer postgres.Close(db)

	if err := repository.EnsureSchema(context.Background(), db, logger); err != nil {
		logger.Fatalf("Ошибка применения схемы: %v", err)
	}

	checks := map[string]handler.HealthCheck{
		"postgres": db.PingContext,
	}

	// Кэш симуляций: Redis, при недоступности память процесса
	var simCache cache.SimulationCache
	rdb, err := redis.NewRedisConnection(redis.ConnectionInfo{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		MaxRetries:  2,
		DialTimeout: 2 * time.Second,
		Timeout:     time.Second,
	})
	if err != nil {
		logger.WithError(err).Warn("Redis недоступен, используется кэш в памяти")
		simCache = cache.NewMemoryCache(cfg.SimulationCacheTTL)
	} else {
		defer redis.Close(rdb)
		simCache = cache.NewRedisSimulationCache(rdb, cfg.RedisPrefix, cfg.SimulationCacheTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	location := cfg.Location()

	// Инициализация репозиториев
	logger.Info("Инициализация репозиториев...")
	loanRepo := repository.NewLoanRequestRepository(db, logger)
	paymentRepo := repository.NewPaymentRepository(db, logger)
	settingsRepo := repository.NewSettingsRepository(db, logger)
	dashboardRepo := repository.NewDashboardRepository(db, logger)
	profileRepo := repository.NewProfileRepository(db, logger)

	// Инициализация сервисов
	logger.Info("Инициализация сервисов...")
	settingsService := service.NewSettingsService(settingsRepo, cfg.DefaultSettings(), logger)
	simulationService := service.NewSimulationService(settingsService, simCache, service.NewScheduleExporter(logger), logger)
	profileService := service.NewProfileService(profileRepo, time.Now, logger)
	applicationService := service.NewApplicationService(loanRepo, paymentRepo, settingsService, profileService, time.Now, logger)
	reviewService := service.NewReviewService(loanRepo, time.Now, location, logger)
	paymentService := service.NewPaymentService(paymentRepo, time.Now, location, logger)
	dashboardService := service.NewDashboardService(dashboardRepo, paymentRepo, logger)
	registry := tools.NewRegistry(simulationService, tracing.Tracer)

	// Инициализация HTTP обработчиков
	logger.Info("Инициализация обработчиков API...")
	h := handler.NewHandler(handler.Services{
		Simulations:  simulationService,
		Applications: applicationService,
		Reviews:      reviewService,
		Dashboard:    dashboardService,
		Settings:     settingsService,
		Profiles:     profileService,
		Tools:        registry,
	}, checks, logger)

	// Планировщик отметки просроченных платежей
	overdueJob := jobs.NewOverdueJob(paymentService, location, logger)
	if err := overdueJob.Schedule(cfg.OverdueCron); err != nil {
		logger.Fatalf("Ошибка настройки планировщика: %v", err)
	}
	overdueJob.Start()

	// Настройка и запуск HTTP сервера
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Запуск сервера")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание сигналов для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Завершение работы сервера...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Ошибка при завершении работы сервера: %v", err)
	}
	<-overdueJob.Stop().Done()
	if err := shutdownTracing(ctx); err != nil {
		logger.WithError(err).Warn("Ошибка остановки трейсинга")
	}
	logger.Info("Сервер успешно остановлен")
}
