package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/flightboard/internal/domain"
	"github.com/segmentio/kafka-go"
)

// FlightEventMessage is the wire envelope for a flight event. The message key
// is the flight number, so the Hash balancer routes every event for one
// flight to the same partition and per-flight ordering holds end to end.
type FlightEventMessage struct {
	FlightNumber   string    `json:"flight_number"`
	EventType      string    `json:"event_type"`
	PreviousValue  string    `json:"previous_value"`
	NewValue       string    `json:"new_value"`
	Description    string    `json:"description"`
	EventTimestamp time.Time `json:"event_timestamp"`
}

// ToDomain converts the envelope into the domain event the applier works with.
func (m FlightEventMessage) ToDomain() domain.FlightEvent {
	return domain.FlightEvent{
		FlightNumber:   m.FlightNumber,
		EventType:      domain.EventType(m.EventType),
		PreviousValue:  m.PreviousValue,
		NewValue:       m.NewValue,
		Description:    m.Description,
		EventTimestamp: m.EventTimestamp,
	}
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
