package events

import (
	// Go Internal Packages
	"context"
	"encoding/json"

	// Local Packages
	models "remit-api/models"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

type ProducerConfig struct {
	Brokers []string
	Name    string
	Topic   string
}

// KafkaPublisher emits transaction lifecycle events to a Kafka topic,
// keyed by transaction id so one transaction's events stay ordered
// within a partition. Publishing is fire-and-forget; a broker outage
// never blocks or fails the transaction path.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
	logger *zap.Logger
}

func NewKafkaPublisher(conf *ProducerConfig, logger *zap.Logger, metrics *kprom.Metrics) (*KafkaPublisher, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...),
		kgo.ClientID(conf.Name),
		kgo.DefaultProduceTopic(conf.Topic),
		kgo.WithHooks(metrics),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	return &KafkaPublisher{client: client, topic: conf.Topic, logger: logger}, nil
}

// Publish produces the event asynchronously. Delivery errors are
// logged in the produce callback.
func (p *KafkaPublisher) Publish(ctx context.Context, event models.TxEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event", zap.Error(err))
		return
	}

	record := &kgo.Record{Key: []byte(event.TransactionID), Value: value, Topic: p.topic}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("failed to produce event",
				zap.String("transaction_id", event.TransactionID),
				zap.String("event_type", string(event.Type)),
				zap.Error(err))
		}
	})
}

// Close flushes buffered records and releases the client.
func (p *KafkaPublisher) Close() {
	p.client.Close()
}

// NopPublisher drops every event. Used when publishing is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.TxEvent) {}
