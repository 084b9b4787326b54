package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/invorya/lotes-api/internal/application/inventory"
	"github.com/invorya/lotes-api/internal/domain/entity"
)

var _ inventory.MovementPublisher = (*MovementPublisher)(nil)

// MovementPublisher publica movimientos confirmados del libro de inventario
// para consumidores externos de reportes. Mejor esfuerzo post-commit: un
// fallo de publicación se loguea, nunca revierte la transacción ya confirmada.
type MovementPublisher struct {
	writer *kafka.Writer
}

// NewMovementPublisher construye el publisher sobre el topic indicado.
func NewMovementPublisher(brokers []string, topic string) *MovementPublisher {
	return &MovementPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{}, // particiona por variante: orden por variante preservado
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// movementEvent payload JSON del evento publicado.
type movementEvent struct {
	ID          string  `json:"id"`
	VariantID   string  `json:"variant_id"`
	ProductID   string  `json:"product_id"`
	Kind        string  `json:"kind"`
	Quantity    int64   `json:"quantity"`
	UnitCost    *string `json:"unit_cost,omitempty"`
	LotID       *string `json:"lot_id,omitempty"`
	ExternalRef string  `json:"external_ref,omitempty"`
	Note        string  `json:"note,omitempty"`
	CreatedBy   string  `json:"created_by,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// Publish envía los movimientos al topic, uno por mensaje, key = variant_id.
func (p *MovementPublisher) Publish(ctx context.Context, movements ...*entity.StockMovement) error {
	messages := make([]kafka.Message, 0, len(movements))
	for _, m := range movements {
		event := movementEvent{
			ID:          m.ID,
			VariantID:   m.VariantID,
			ProductID:   m.ProductID,
			Kind:        m.Kind,
			Quantity:    m.Quantity,
			LotID:       m.LotID,
			ExternalRef: m.ExternalRef,
			Note:        m.Note,
			CreatedBy:   m.CreatedBy,
			CreatedAt:   m.CreatedAt.Format(time.RFC3339Nano),
		}
		if m.UnitCost != nil {
			cost := m.UnitCost.String()
			event.UnitCost = &cost
		}
		value, err := json.Marshal(event)
		if err != nil {
			return err
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(m.VariantID),
			Value: value,
			Time:  m.CreatedAt,
		})
	}
	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		log.Warn().Err(err).Int("movements", len(movements)).Msg("publicar movimientos en kafka")
		return err
	}
	return nil
}

// Close cierra el writer.
func (p *MovementPublisher) Close() error {
	return p.writer.Close()
}
