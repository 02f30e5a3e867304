package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	logger_adapter "recommendation-service/internal/adapters/logger"
	postgres_adapter "recommendation-service/internal/adapters/postgres"
	rabbitmq_adapter "recommendation-service/internal/adapters/rabbitmq"
	"recommendation-service/internal/adapters/rest"
	"recommendation-service/internal/configs"
	"recommendation-service/internal/constants"
	"recommendation-service/internal/core/matching"
	"recommendation-service/internal/core/port"
	"recommendation-service/internal/core/usecase"
	fluentlogger "recommendation-service/pkg/fluent_logger"
	"recommendation-service/pkg/postgres"
	"recommendation-service/pkg/rabbitmq/rabbitmq_common"
	"recommendation-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App - структура приложения
type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	apiServer *rest.Server

	listingEventsListener port.EventListenerPort
	eventProducer         *rabbitmq_producer.Publisher

	logger       port.LoggerPort
	fluentClient *fluent.Fluent // для корректного закрытия
}

// NewApp создает новый экземпляр приложения
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- Инициализация логгеров ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- PostgreSQL ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL: appConfig.Database.URL,
		MaxConns:    appConfig.Database.MaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool.", nil)

	investorRepo, err := postgres_adapter.NewPostgresInvestorRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create investor repository: %w", err)
	}
	listingRepo, err := postgres_adapter.NewPostgresListingRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create listing repository: %w", err)
	}
	recommendationRepo, err := postgres_adapter.NewPostgresRecommendationRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create recommendation repository: %w", err)
	}
	appLogger.Info("All postgres adapters initialized.", nil)

	// --- RabbitMQ ---
	connManagerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})
	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(connManagerLogger)
	connManager, err := rabbitmq_common.GetManager(appConfig.RabbitMQ.URL, connManagerBridge)
	if err != nil {
		dbPool.Close()
		appLogger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

	producerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})
	producerBridge := rabbitmq_adapter.NewPkgLoggerBridge(producerLogger)
	producerCfg := rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
		ExchangeName:             constants.ExchangeRecommendationEvents,
		ExchangeType:             "topic",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   producerBridge,
	}
	eventProducer, err := rabbitmq_producer.NewPublisher(producerCfg, connManager)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	appLogger.Info("RabbitMQ Event Producer initialized.", nil)

	recommendationEvents, err := rabbitmq_adapter.NewRabbitMQRecommendationEventsAdapter(eventProducer)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create recommendation events adapter: %w", err)
	}

	// --- Use cases ---
	matchingCfg := matching.Config{
		RecommendedCount:    appConfig.Matching.RecommendedCount,
		CounterfactualCount: appConfig.Matching.CounterfactualCount,
	}.Normalize()

	buildBundleUC := usecase.NewBuildBundleUseCase(investorRepo, listingRepo, matchingCfg)
	scoreListingUC := usecase.NewScoreListingUseCase(investorRepo, listingRepo)
	createRecommendationUC := usecase.NewCreateRecommendationUseCase(buildBundleUC, recommendationRepo, recommendationEvents)
	getListUC := usecase.NewGetRecommendationsListUseCase(recommendationRepo)
	getByIDUC := usecase.NewGetRecommendationByIDUseCase(recommendationRepo)
	updateStatusUC := usecase.NewUpdateRecommendationStatusUseCase(recommendationRepo)
	saveListingsUC := usecase.NewSaveListingsUseCase(listingRepo)
	appLogger.Info("All use cases initialized.", nil)

	// --- Входящие адаптеры ---
	consumerLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_consumer"})
	consumerBridge := rabbitmq_adapter.NewPkgLoggerBridge(consumerLogger)
	listingConsumerCfg := rabbitmq_adapter.DefaultListingConsumerConfig(
		appConfig.RabbitMQ.URL,
		appConfig.RabbitMQ.ConsumerPrefetch,
		appConfig.RabbitMQ.ConsumerMaxRetries,
		appConfig.RabbitMQ.RetryTTLMs,
		consumerBridge,
	)
	listingListener, err := rabbitmq_adapter.NewListingConsumerAdapter(
		listingConsumerCfg,
		saveListingsUC,
		appConfig.RabbitMQ.BatchSize,
		time.Duration(appConfig.RabbitMQ.BatchTimeoutSec)*time.Second,
		connManager,
		baseLogger,
	)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create listing events listener: %w", err)
	}
	appLogger.Info("Listing Events Listener initialized.", nil)

	// --- REST API ---
	apiHandlers := rest.NewRecommendationHandler(buildBundleUC, scoreListingUC, createRecommendationUC, getListUC, getByIDUC, updateStatusUC)
	apiServer := rest.NewServer(appConfig.Rest.PORT, apiHandlers, baseLogger)

	application := &App{
		config:                appConfig,
		dbPool:                dbPool,
		apiServer:             apiServer,
		listingEventsListener: listingListener,
		eventProducer:         eventProducer,
		logger:                appLogger,
		fluentClient:          fluentClient,
	}

	return application, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	// Единый контекст для всего приложения для управления graceful shutdown
	appCtx, cancelApp := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		if a.listingEventsListener != nil {
			if err := a.listingEventsListener.Close(); err != nil {
				a.logger.Error("Error closing listing events listener", err, nil)
			}
		}

		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.eventProducer != nil {
			if err := a.eventProducer.Close(); err != nil {
				a.logger.Error("Error closing event producer", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	componentErrors := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.logger.Info("Starting Listing Events Listener...", nil)
		if err := a.listingEventsListener.Start(appCtx); err != nil {
			a.logger.Error("Listing Events Listener stopped with an unexpected error", err, nil)
			componentErrors <- fmt.Errorf("listing events listener error: %w", err)
		} else {
			a.logger.Info("Listing Events Listener stopped gracefully due to context cancellation.", nil)
		}
	}()

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			componentErrors <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or component error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-componentErrors:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	// Инициируем graceful shutdown, отменяя главный контекст
	cancelApp()

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
