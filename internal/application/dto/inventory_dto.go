package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/lotes-api/internal/application/inventory"
	"github.com/invorya/lotes-api/internal/domain/entity"
)

// ReceiveRequest body para POST /api/inventory/receipts.
type ReceiveRequest struct {
	VariantID string          `json:"variant_id"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	ArrivalAt *time.Time      `json:"arrival_at,omitempty"` // opcional, puede retro-fecharse
	Note      string          `json:"note,omitempty"`
}

// IssueRequest body para POST /api/inventory/issues (una línea).
type IssueRequest struct {
	VariantID   string `json:"variant_id"`
	Quantity    int64  `json:"quantity"`
	Note        string `json:"note,omitempty"`
	ExternalRef string `json:"external_ref,omitempty"`
}

// IssueBatchRequest body para POST /api/inventory/issues/batch (venta multi-línea).
type IssueBatchRequest struct {
	Lines []IssueRequest `json:"lines"`
}

// AdjustRequest body para POST /api/inventory/adjustments.
// Exactamente uno de Delta (ajuste relativo) o Target (fijar stock absoluto).
type AdjustRequest struct {
	VariantID string `json:"variant_id"`
	Delta     *int64 `json:"delta,omitempty"`
	Target    *int64 `json:"target,omitempty"`
	Note      string `json:"note,omitempty"`
}

// LotResponse representación HTTP de un lote.
type LotResponse struct {
	ID           string          `json:"id"`
	VariantID    string          `json:"variant_id"`
	ProductID    string          `json:"product_id"`
	InitialQty   int64           `json:"initial_qty"`
	AvailableQty int64           `json:"available_qty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ArrivalAt    time.Time       `json:"arrival_at"`
	Note         string          `json:"note,omitempty"`
}

// MovementResponse representación HTTP de un movimiento del libro.
type MovementResponse struct {
	ID          string           `json:"id"`
	VariantID   string           `json:"variant_id"`
	ProductID   string           `json:"product_id"`
	Kind        string           `json:"kind"`
	Quantity    int64            `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	LotID       *string          `json:"lot_id,omitempty"`
	ExternalRef string           `json:"external_ref,omitempty"`
	Note        string           `json:"note,omitempty"`
	CreatedBy   string           `json:"created_by,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// AllocationLineResponse una toma de un lote dentro de una asignación.
type AllocationLineResponse struct {
	LotID      string          `json:"lot_id"`
	Quantity   int64           `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	MovementID string          `json:"movement_id"`
}

// AllocationResponse resultado de una salida FIFO.
type AllocationResponse struct {
	VariantID string                   `json:"variant_id"`
	Requested int64                    `json:"requested"`
	Lines     []AllocationLineResponse `json:"lines"`
	TotalCost decimal.Decimal          `json:"total_cost"`
}

// StockResponse proyección de stock de una variante.
type StockResponse struct {
	VariantID           string           `json:"variant_id"`
	Quantity            int64            `json:"quantity"`
	WeightedAverageCost *decimal.Decimal `json:"weighted_average_cost"` // null si no hay lotes con remanente
	ComputedAt          time.Time        `json:"computed_at"`
}

// FromLot mapea la entidad a su representación HTTP.
func FromLot(lot *entity.Lot) LotResponse {
	return LotResponse{
		ID:           lot.ID,
		VariantID:    lot.VariantID,
		ProductID:    lot.ProductID,
		InitialQty:   lot.InitialQty,
		AvailableQty: lot.AvailableQty,
		UnitCost:     lot.UnitCost,
		ArrivalAt:    lot.ArrivalAt,
		Note:         lot.Note,
	}
}

// FromMovement mapea la entidad a su representación HTTP.
func FromMovement(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		VariantID:   m.VariantID,
		ProductID:   m.ProductID,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		LotID:       m.LotID,
		ExternalRef: m.ExternalRef,
		Note:        m.Note,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// FromAllocation mapea una asignación FIFO a su representación HTTP.
func FromAllocation(a *entity.Allocation) AllocationResponse {
	out := AllocationResponse{
		VariantID: a.VariantID,
		Requested: a.Requested,
		Lines:     make([]AllocationLineResponse, 0, len(a.Lines)),
		TotalCost: a.TotalCost(),
	}
	for _, l := range a.Lines {
		out.Lines = append(out.Lines, AllocationLineResponse{
			LotID:      l.LotID,
			Quantity:   l.Quantity,
			UnitCost:   l.UnitCost,
			MovementID: l.MovementID,
		})
	}
	return out
}

// FromSnapshot mapea la proyección de stock a su representación HTTP.
func FromSnapshot(s *inventory.StockSnapshot) StockResponse {
	return StockResponse{
		VariantID:           s.VariantID,
		Quantity:            s.Quantity,
		WeightedAverageCost: s.WeightedAverageCost,
		ComputedAt:          s.ComputedAt,
	}
}
