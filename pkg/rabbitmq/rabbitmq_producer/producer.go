package rabbitmq_producer

import (
	"context"
	"fmt"
	"sync"

	"catastro-service/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherConfig конфигурация для производителя
type PublisherConfig struct {
	ExchangeName    string // имя обменника ("" - default exchange)
	ExchangeType    string // direct, fanout, topic, headers
	DurableExchange bool
	// Если false, производитель полагается на то, что обменник уже существует
	DeclareExchangeIfMissing bool

	Logger rabbitmq_common.Logger
}

func (c PublisherConfig) validate() error {
	if !c.DeclareExchangeIfMissing {
		return nil
	}
	if c.ExchangeName == "" {
		return fmt.Errorf("producer: exchange name is required to declare an exchange")
	}
	if c.ExchangeType == "" {
		return fmt.Errorf("producer: exchange type is required to declare exchange '%s'", c.ExchangeName)
	}
	return nil
}

// Publisher публикует сообщения в один обменник.
// Канал amqp не потокобезопасен, поэтому публикация сериализуется.
type Publisher struct {
	config  PublisherConfig
	manager *rabbitmq_common.ConnectionManager
	channel *amqp.Channel
	mu      sync.Mutex
	logger  rabbitmq_common.Logger
}

func NewPublisher(cfg PublisherConfig, manager *rabbitmq_common.ConnectionManager) (*Publisher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, fmt.Errorf("producer: connection manager is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	p := &Publisher{
		config:  cfg,
		manager: manager,
		logger:  logger,
	}
	if err := p.openChannel(); err != nil {
		return nil, err
	}
	return p, nil
}

// openChannel вызывается под p.mu или до публикации
func (p *Publisher) openChannel() error {
	_, ch, err := p.manager.GetChannel()
	if err != nil {
		return fmt.Errorf("producer: failed to get channel: %w", err)
	}

	if p.config.DeclareExchangeIfMissing {
		p.logger.Debug("Declaring exchange", "name", p.config.ExchangeName, "type", p.config.ExchangeType)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.DurableExchange,
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		)
		if err != nil {
			_ = ch.Close()
			return fmt.Errorf("producer: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	}

	p.channel = ch
	return nil
}

// Publish публикует сообщение; закрытый канал переоткрывается один раз
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		p.logger.Warn("Producer channel is closed, reopening")
		if err := p.openChannel(); err != nil {
			return err
		}
	}

	err := p.channel.PublishWithContext(ctx, p.config.ExchangeName, routingKey, false, false, msg)
	if err != nil {
		return fmt.Errorf("producer: failed to publish message: %w", err)
	}
	return nil
}

// Close закрывает канал; соединение принадлежит ConnectionManager
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	if err != nil {
		p.logger.Error(err, "Error closing channel")
		return err
	}
	p.logger.Info("Producer closed")
	return nil
}
