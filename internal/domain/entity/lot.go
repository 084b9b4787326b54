package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot representa una recepción física de stock para una variante (costeo FIFO).
// InitialQty y UnitCost son inmutables; AvailableQty solo decrece vía el
// asignador FIFO bajo bloqueo de fila. Los lotes nunca se borran (auditoría
// y recálculo de costo promedio).
type Lot struct {
	ID           string
	VariantID    string
	ProductID    string // denormalizado para reportes
	InitialQty   int64
	AvailableQty int64 // invariante: 0 <= AvailableQty <= InitialQty
	UnitCost     decimal.Decimal
	ArrivalAt    time.Time // por defecto la fecha de creación; puede retro-fecharse
	Note         string
	CreatedAt    time.Time
}

// Exhausted indica si el lote ya no tiene cantidad disponible.
func (l *Lot) Exhausted() bool {
	return l.AvailableQty <= 0
}
