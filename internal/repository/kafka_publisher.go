package repository

import (
	"context"

	"Metricast/internal/domain/models"
	domrepo "Metricast/internal/domain/repository"
	pkgkafka "Metricast/pkg/kafka"
)

// KafkaForecastPublisher implements Publisher for Kafka.
type KafkaForecastPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaForecastPublisher creates a Kafka forecast publisher.
func NewKafkaForecastPublisher(producer *pkgkafka.Producer, topic string) *KafkaForecastPublisher {
	return &KafkaForecastPublisher{producer: producer, topic: topic}
}

func (p *KafkaForecastPublisher) PublishForecast(ctx context.Context, event models.ForecastEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(event.Metric), event)
}

func (p *KafkaForecastPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

var _ domrepo.Publisher = (*KafkaForecastPublisher)(nil)
