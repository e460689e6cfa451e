package config

import (
	// Go Internal Packages
	"encoding/hex"
	"time"

	// Local Packages
	errors "remit-api/errors"
)

var DefaultConfig = []byte(`
application: "remit-api"

logger:
  level: "debug"

is_prod_mode: false

server:
  addr: ":3000"
  shutdown_timeout: "10s"

mongo:
  uri: "mongodb://localhost:27017"
  database: "remit"

redis:
  uri: "localhost:6379"
  password: ""

kafka:
  publish: false
  brokers:
    - "localhost:9092"
  topic: "transaction-events"
  producer_name: "remit-api"

cipher:
  key: ""

settlement:
  delay: "2s"
`)

type Config struct {
	Application string     `koanf:"application"`
	Logger      Logger     `koanf:"logger"`
	IsProdMode  bool       `koanf:"is_prod_mode"`
	Server      Server     `koanf:"server"`
	Mongo       Mongo      `koanf:"mongo"`
	Redis       Redis      `koanf:"redis"`
	Kafka       Kafka      `koanf:"kafka"`
	Cipher      Cipher     `koanf:"cipher"`
	Settlement  Settlement `koanf:"settlement"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Server struct {
	Addr            string        `koanf:"addr"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type Mongo struct {
	URI      string `koanf:"uri"`
	Database string `koanf:"database"`
}

type Redis struct {
	URI      string `koanf:"uri"`
	Password string `koanf:"password"`
}

type Kafka struct {
	Publish      bool     `koanf:"publish"`
	Brokers      []string `koanf:"brokers"`
	Topic        string   `koanf:"topic"`
	ProducerName string   `koanf:"producer_name"`
}

type Cipher struct {
	// Key is a hex-encoded 32-byte AES key. There is no default; the
	// process refuses to start without one.
	Key string `koanf:"key"`
}

type Settlement struct {
	Delay time.Duration `koanf:"delay"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	ve := errors.ValidationErrs()

	if c.Application == "" {
		ve.Add("application", "cannot be empty")
	}
	if c.Logger.Level == "" {
		ve.Add("logger.level", "cannot be empty")
	}
	if c.Server.Addr == "" {
		ve.Add("server.addr", "cannot be empty")
	}
	if c.Mongo.URI == "" {
		ve.Add("mongo.uri", "cannot be empty")
	}
	if c.Mongo.Database == "" {
		ve.Add("mongo.database", "cannot be empty")
	}
	if c.Redis.URI == "" {
		ve.Add("redis.uri", "cannot be empty")
	}
	if c.Kafka.Publish {
		if len(c.Kafka.Brokers) == 0 {
			ve.Add("kafka.brokers", "cannot be empty when publishing is enabled")
		}
		if c.Kafka.Topic == "" {
			ve.Add("kafka.topic", "cannot be empty when publishing is enabled")
		}
	}
	if key, err := hex.DecodeString(c.Cipher.Key); err != nil || len(key) != 32 {
		ve.Add("cipher.key", "must be 32 bytes, hex-encoded")
	}
	if c.Settlement.Delay <= 0 {
		ve.Add("settlement.delay", "must be positive")
	}

	return ve.Err()
}
