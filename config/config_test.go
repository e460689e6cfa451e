package config

import (
	// Go Internal Packages
	"strings"
	"testing"
	"time"

	// External Packages
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDefaults(t *testing.T) Config {
	t.Helper()
	k := koanf.New(".")
	require.NoError(t, k.Load(rawbytes.Provider(DefaultConfig), yaml.Parser()))

	c := Config{}
	require.NoError(t, k.Unmarshal("", &c))
	return c
}

func TestDefaultsUnmarshal(t *testing.T) {
	c := loadDefaults(t)

	assert.Equal(t, "remit-api", c.Application)
	assert.Equal(t, "debug", c.Logger.Level)
	assert.Equal(t, ":3000", c.Server.Addr)
	assert.Equal(t, 2*time.Second, c.Settlement.Delay)
	assert.Equal(t, "remit", c.Mongo.Database)
	assert.False(t, c.Kafka.Publish)
}

func TestValidateRequiresCipherKey(t *testing.T) {
	c := loadDefaults(t)

	// Defaults ship without a key, so validation must fail.
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cipher.key")

	c.Cipher.Key = strings.Repeat("ab", 32)
	assert.NoError(t, c.Validate())
}

func TestValidateRejectsShortKey(t *testing.T) {
	c := loadDefaults(t)
	c.Cipher.Key = "abcd"

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cipher.key")
}

func TestValidateKafkaOnlyWhenPublishing(t *testing.T) {
	c := loadDefaults(t)
	c.Cipher.Key = strings.Repeat("ab", 32)

	c.Kafka.Publish = false
	c.Kafka.Brokers = nil
	assert.NoError(t, c.Validate())

	c.Kafka.Publish = true
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka.brokers")
}

func TestValidateSettlementDelay(t *testing.T) {
	c := loadDefaults(t)
	c.Cipher.Key = strings.Repeat("ab", 32)
	c.Settlement.Delay = 0

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settlement.delay")
}
