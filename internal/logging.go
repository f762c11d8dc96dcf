package internal

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"strings"

	logger_adapter "catastro-service/internal/adapters/logger"
	"catastro-service/internal/configs"
	"catastro-service/internal/core/port"
	fluentlogger "catastro-service/pkg/fluent_logger"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// NewLogger собирает логгер приложения: stdout (slog/tint) и, если включен, Fluent Bit.
// Возвращенный fluent-клиент (может быть nil) закрывает вызывающий.
func NewLogger(cfg *configs.AppConfig, w io.Writer) (port.LoggerPort, *fluent.Fluent, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Writer:   w,
		Level:    parseLogLevel(cfg.StdoutLogger.Level),
		IsJSON:   cfg.StdoutLogger.IsJSON,
		UseColor: !cfg.StdoutLogger.IsJSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if cfg.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(cfg.FluentBit.Level))
		if err != nil {
			_ = fluentClient.Close()
			return nil, nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		if fluentClient != nil {
			_ = fluentClient.Close()
		}
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	return multiLogger.WithFields(port.Fields{"service_name": cfg.AppName}), fluentClient, nil
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
