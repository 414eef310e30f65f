package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"frontdesk/internal/lobby/models"
)

const (
	DefaultTopic = "frontdesk.visitor-events"

	headerEventType = "event_type"
	headerRequestID = "request_id"
)

// Kafka produces each event as a JSON record keyed by visitor, so a single
// visitor's events stay ordered within a partition.
type Kafka struct {
	client *kgo.Client
	topic  string
}

// NewKafka connects a producer to brokers.
func NewKafka(brokers []string, topic string, opts ...kgo.Opt) (*Kafka, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	base := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerLinger(5 * time.Millisecond),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}
	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("kafka: create client: %w", err)
	}
	return &Kafka{client: client, topic: topic}, nil
}

// EnsureTopic creates the event topic if it does not exist yet.
func (k *Kafka) EnsureTopic(ctx context.Context, partitions int32, replicationFactor int16) error {
	admin := kadm.NewClient(k.client)
	resp, err := admin.CreateTopics(ctx, partitions, replicationFactor, nil, k.topic)
	if err != nil {
		return fmt.Errorf("kafka: create topic %s: %w", k.topic, err)
	}
	for _, r := range resp.Sorted() {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("kafka: create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

func (k *Kafka) Publish(ctx context.Context, event models.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: encode event: %w", err)
	}
	rec := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(event.Key()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: headerEventType, Value: []byte(event.Type)},
			{Key: headerRequestID, Value: []byte(event.RequestID)},
		},
		Timestamp: event.OccurredAt,
	}
	if err := k.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("kafka: produce %s: %w", event.Type, err)
	}
	return nil
}

// Health pings the seed brokers.
func (k *Kafka) Health(ctx context.Context) error {
	return k.client.Ping(ctx)
}

// Close flushes buffered records and closes the client.
func (k *Kafka) Close(ctx context.Context) error {
	err := k.client.Flush(ctx)
	k.client.Close()
	return err
}
