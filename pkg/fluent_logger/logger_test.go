package fluentlogger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Host: "fluent-bit", Port: 24224, TagPrefix: "catastro-service"}.Validate())
	assert.Error(t, Config{Host: "fluent-bit", Port: 24224}.Validate())
	assert.Error(t, Config{Port: 24224, TagPrefix: "x"}.Validate())
	assert.Error(t, Config{Host: "fluent-bit", Port: 0, TagPrefix: "x"}.Validate())
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(Config{Host: "fluent-bit", Port: 24224})
	assert.Error(t, err)
}
