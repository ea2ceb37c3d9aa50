package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/safealert/safealert-api/internal/application/alertas"
	"github.com/safealert/safealert-api/internal/domain/entity"
)

// EventAlertCreated tipo del evento publicado por cada alerta nueva.
const EventAlertCreated = "alerta.creada"

var _ alertas.EventPublisher = (*KafkaPublisher)(nil)

// AlertCreatedEvent payload del evento alerta.creada.
type AlertCreatedEvent struct {
	Event            string    `json:"evento"`
	AlertID          string    `json:"alerta_id"`
	ProductID        string    `json:"producto_id"`
	ProductName      string    `json:"producto_nombre"`
	AlertType        string    `json:"tipo_alerta"`
	PriorityLevel    int       `json:"nivel_prioridad_id"`
	Message          string    `json:"mensaje"`
	ExpiryDate       string    `json:"fecha_vencimiento,omitempty"`
	AIClassification string    `json:"clasificacion_ia"`
	CreatedAt        time.Time `json:"fecha_creacion"`
}

// messageWriter lo cumple *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica eventos de alertas en un tópico Kafka. La clave es el producto y el
// balanceador Hash la usa, así los eventos de un mismo producto caen en la misma partición.
type KafkaPublisher struct {
	writer messageWriter
}

// batchTimeout el writer es síncrono; con el valor por defecto de kafka-go (1s) cada
// WriteMessages esperaría a llenar el lote.
const batchTimeout = 10 * time.Millisecond

// NewKafkaPublisher crea el writer sobre brokers/topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: newWriter(brokers, topic)}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		BatchTimeout: batchTimeout,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
}

// PublishAlertsCreated escribe un evento alerta.creada por alerta en una sola llamada al broker.
func (p *KafkaPublisher) PublishAlertsCreated(ctx context.Context, alerts []alertas.CreatedAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(alerts))
	for _, a := range alerts {
		msg, err := alertCreatedMessage(a.Alert, a.ProductName)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write kafka messages: %w", err)
	}
	return nil
}

func alertCreatedMessage(a *entity.Alert, productName string) (kafka.Message, error) {
	evt := NewAlertCreatedEvent(a, productName)
	value, err := json.Marshal(evt)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(a.ProductID),
		Value: value,
		Time:  evt.CreatedAt,
		Headers: []kafka.Header{
			{Key: "evento", Value: []byte(EventAlertCreated)},
		},
	}, nil
}

// Close vacía y cierra el writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NewAlertCreatedEvent arma el payload a partir de la alerta.
func NewAlertCreatedEvent(a *entity.Alert, productName string) AlertCreatedEvent {
	evt := AlertCreatedEvent{
		Event:            EventAlertCreated,
		AlertID:          a.ID,
		ProductID:        a.ProductID,
		ProductName:      productName,
		AlertType:        a.Type,
		PriorityLevel:    a.PriorityLevel,
		Message:          a.Message,
		AIClassification: a.AIClassification,
		CreatedAt:        a.CreatedAt,
	}
	if a.ExpiryDate != nil {
		evt.ExpiryDate = a.ExpiryDate.Format("2006-01-02")
	}
	return evt
}
