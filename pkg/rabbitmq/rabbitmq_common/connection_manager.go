package rabbitmq_common

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultReconnectInterval = 10 * time.Second

// ConnectionManager владеет одним соединением RabbitMQ и восстанавливает его в фоне
type ConnectionManager struct {
	cfg        Config
	connection *amqp.Connection
	mutex      sync.RWMutex
	logger     Logger

	reconnectInterval time.Duration
	stop              chan struct{}
	stopOnce          sync.Once
	done              chan struct{}
}

// NewConnectionManager подключается сразу: сервис не стартует с недоступным брокером
func NewConnectionManager(cfg Config, logger Logger) (*ConnectionManager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NewNoopLogger()
	}

	m := &ConnectionManager{
		cfg:               cfg,
		logger:            logger,
		reconnectInterval: defaultReconnectInterval,
		stop:              make(chan struct{}),
		done:              make(chan struct{}),
	}

	if _, err := m.getConnection(); err != nil {
		logger.Error(err, "Initial connection failed")
		return nil, fmt.Errorf("initial connection failed: %w", err)
	}

	go m.watch()
	return m, nil
}

// getConnection возвращает живое соединение или устанавливает новое
func (m *ConnectionManager) getConnection() (*amqp.Connection, error) {
	m.mutex.RLock()
	if m.connection != nil && !m.connection.IsClosed() {
		conn := m.connection
		m.mutex.RUnlock()
		return conn, nil
	}
	m.mutex.RUnlock()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Повторная проверка: другая горутина могла уже переподключиться
	if m.connection != nil && !m.connection.IsClosed() {
		return m.connection, nil
	}

	m.logger.Debug("ConnectionManager: connecting")
	conn, err := amqp.Dial(m.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RabbitMQ: %w", err)
	}
	m.connection = conn
	m.logger.Info("ConnectionManager: connected")
	return conn, nil
}

// GetChannel открывает новый канал на общем соединении
func (m *ConnectionManager) GetChannel() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := m.getConnection()
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return conn, nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	return conn, ch, nil
}

func (m *ConnectionManager) watch() {
	defer close(m.done)

	ticker := time.NewTicker(m.reconnectInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
		}

		m.mutex.RLock()
		closed := m.connection == nil || m.connection.IsClosed()
		m.mutex.RUnlock()
		if !closed {
			continue
		}

		m.logger.Warn("ConnectionManager: connection lost, reconnecting")
		if _, err := m.getConnection(); err != nil {
			m.logger.Error(err, "ConnectionManager: reconnect failed")
		}
	}
}

// Close останавливает фоновое переподключение и закрывает соединение
func (m *ConnectionManager) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	<-m.done

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.connection == nil || m.connection.IsClosed() {
		return nil
	}
	if err := m.connection.Close(); err != nil {
		m.logger.Error(err, "ConnectionManager: failed to close connection")
		return err
	}
	m.logger.Debug("ConnectionManager: connection closed")
	return nil
}
