package rabbitmq_producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublisherConfigValidate(t *testing.T) {
	assert.NoError(t, PublisherConfig{}.validate())
	assert.NoError(t, PublisherConfig{ExchangeName: "catastro_exchange"}.validate())
	assert.NoError(t, PublisherConfig{ExchangeName: "catastro_exchange", ExchangeType: "topic", DeclareExchangeIfMissing: true}.validate())
	assert.Error(t, PublisherConfig{ExchangeType: "topic", DeclareExchangeIfMissing: true}.validate())
	assert.Error(t, PublisherConfig{ExchangeName: "catastro_exchange", DeclareExchangeIfMissing: true}.validate())
}

func TestNewPublisher_RequiresManager(t *testing.T) {
	_, err := NewPublisher(PublisherConfig{ExchangeName: "x"}, nil)
	assert.Error(t, err)
}
