package order

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/walex4242/godheranca-storefront/internal/domain"
)

// Event is the order record published for back-office consumers once a
// checkout completes. The storefront itself keeps no order history.
type Event struct {
	OrderID   string               `json:"order_id"`
	SessionID string               `json:"session_id"`
	StoreID   string               `json:"store_id"`
	Details   Details              `json:"details"`
	Lines     []domain.CartLine    `json:"lines"`
	Pricing   domain.PricingResult `json:"pricing"`
	CreatedAt time.Time            `json:"created_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// KafkaPublisher writes order events to the storefront-orders topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "storefront-orders",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("publish order event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher is the dev fallback when no Kafka brokers are configured.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, event Event) error {
	log.Printf("order %s placed at store %s, total %.2f", event.OrderID, event.StoreID, event.Pricing.Total)
	return nil
}

func (LogPublisher) Close() error { return nil }
