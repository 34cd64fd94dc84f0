package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/arnoldongithub/atlantic-anvil/internal/ports"
)

const defaultKafkaTopic = "article-summarization"

// KafkaQueue publishes one message per article, keyed by article id so a
// compacted topic keeps a single job per article.
type KafkaQueue struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

var _ ports.SummaryQueue = (*KafkaQueue)(nil)

// NewKafkaProducer dials the brokers with a synchronous, fully acknowledged producer.
func NewKafkaProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// NewKafkaQueue wraps an existing producer.
func NewKafkaQueue(producer sarama.SyncProducer, topic string) *KafkaQueue {
	if topic == "" {
		topic = defaultKafkaTopic
	}
	return &KafkaQueue{producer: producer, topic: topic, now: time.Now}
}

// Enqueue publishes a pending job for articleID.
func (q *KafkaQueue) Enqueue(ctx context.Context, articleID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := newJobPayload(articleID, q.now())
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}

	_, _, err = q.producer.SendMessage(&sarama.ProducerMessage{
		Topic: q.topic,
		Key:   sarama.StringEncoder(articleID),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("kafka send: %w", err)
	}
	return nil
}

// Close flushes and closes the producer.
func (q *KafkaQueue) Close() error {
	return q.producer.Close()
}
