package internal

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catastro-service/internal/adapters/catastrofetcher"
	"catastro-service/internal/adapters/gridreader"
	rabbitmq_adapter "catastro-service/internal/adapters/rabbitmq"
	"catastro-service/internal/adapters/rest"
	"catastro-service/internal/adapters/sink"
	"catastro-service/internal/configs"
	"catastro-service/internal/constants"
	"catastro-service/internal/core/port"
	"catastro-service/internal/core/usecase"
	"catastro-service/pkg/rabbitmq/rabbitmq_common"
	"catastro-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const shutdownTimeout = 15 * time.Second

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	publishing   *RabbitMQPublishing
	fluentClient *fluent.Fluent
	server       *rest.Server
	logger       port.LoggerPort
}

// NewApp - composition root: все зависимости создаются и связываются здесь
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := NewLogger(appConfig, os.Stdout)
	if err != nil {
		return nil, err
	}

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{"fluent_enabled": appConfig.FluentBit.Enabled})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
	}

	fetcher, err := NewCatastroFetcher(appConfig)
	if err != nil {
		appLogger.Error("Failed to create Catastro fetcher", err, nil)
		application.close()
		return nil, err
	}
	appLogger.Info("Catastro fetcher initialized", port.Fields{"base_url": appConfig.Catastro.BaseURL})

	var resultSink port.ResultSinkPort = sink.NoopSink{}
	if appConfig.RabbitMQ.Enabled {
		publishing, err := NewRabbitMQPublishing(appConfig, baseLogger)
		if err != nil {
			application.close()
			return nil, err
		}
		application.publishing = publishing
		resultSink = publishing.Sink
	}

	searchUC := usecase.NewSearchReferencesUseCase(fetcher, resultSink, appConfig.Catastro.Workers)
	lookupUC := usecase.NewLookupReferenceUseCase(fetcher)
	appLogger.Info("All use cases initialized", port.Fields{"workers": appConfig.Catastro.Workers})

	handlers := rest.NewCatastroHandlers(searchUC, lookupUC, gridreader.NewGridReaderAdapter(), appConfig.HTTP.MaxUploadBytes)
	router := rest.NewRouter(handlers, appConfig.HTTP.AllowedOrigins, baseLogger)
	application.server = rest.NewServer(appConfig.HTTP.Port, router, baseLogger)

	return application, nil
}

// NewCatastroFetcher создает адаптер реестра по конфигурации
func NewCatastroFetcher(cfg *configs.AppConfig) (*catastrofetcher.CatastroFetcherAdapter, error) {
	fetcher, err := catastrofetcher.NewCatastroFetcherAdapter(catastrofetcher.Config{
		BaseURL:     cfg.Catastro.BaseURL,
		Parallelism: cfg.Catastro.Workers,
		Delay:       cfg.Catastro.RequestDelay,
		Timeout:     cfg.Catastro.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catastro fetcher: %w", err)
	}
	return fetcher, nil
}

// RabbitMQPublishing - соединение, производитель и sink для совпавших объектов
type RabbitMQPublishing struct {
	Sink        port.ResultSinkPort
	connManager *rabbitmq_common.ConnectionManager
	producer    *rabbitmq_producer.Publisher
}

// NewRabbitMQPublishing поднимает соединение, объявляет обменник и создает sink
func NewRabbitMQPublishing(cfg *configs.AppConfig, baseLogger port.LoggerPort) (*RabbitMQPublishing, error) {
	logger := baseLogger.WithFields(port.Fields{"component": "app"})

	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: cfg.RabbitMQ.URL}, connManagerBridge)
	if err != nil {
		logger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	publishing := &RabbitMQPublishing{connManager: connManager}

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:             cfg.RabbitMQ.Exchange,
		ExchangeType:             constants.CatastroExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, connManager)
	if err != nil {
		logger.Error("Failed to create event producer", err, port.Fields{"exchange": cfg.RabbitMQ.Exchange})
		publishing.Close(logger)
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	publishing.producer = producer

	rabbitSink, err := rabbitmq_adapter.NewMatchedPropertySinkAdapter(producer, constants.RoutingKeyMatchedProperties)
	if err != nil {
		publishing.Close(logger)
		return nil, err
	}
	publishing.Sink = rabbitSink

	logger.Info("RabbitMQ result sink initialized", port.Fields{
		"exchange":    cfg.RabbitMQ.Exchange,
		"routing_key": constants.RoutingKeyMatchedProperties,
	})
	return publishing, nil
}

// Close закрывает канал производителя, затем соединение
func (p *RabbitMQPublishing) Close(logger port.LoggerPort) {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			logger.Error("Error closing event producer", err, nil)
		}
	}
	if p.connManager != nil {
		if err := p.connManager.Close(); err != nil {
			logger.Error("Error closing RabbitMQ connection manager", err, nil)
		}
	}
}

// Run запускает HTTP-сервер и ждет сигнала завершения
func (a *App) Run() error {
	defer a.close()

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- a.server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals...", nil)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received signal, shutting down", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		if err != nil {
			a.logger.Error("HTTP server failed, shutting down", err, nil)
			runErr = err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Stop(ctx); err != nil {
		a.logger.Error("Error stopping HTTP server", err, nil)
	}

	return runErr
}

// close освобождает ресурсы в обратном порядке создания
func (a *App) close() {
	if a.publishing != nil {
		a.publishing.Close(a.logger)
	}

	a.logger.Info("Application shut down", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			log.Printf("App: Error closing fluent client: %v\n", err)
		}
	}
}
