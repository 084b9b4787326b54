package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementKindIN         = "IN"         // entrada (recepción de lote)
	MovementKindOUT        = "OUT"        // salida (asignación FIFO)
	MovementKindADJUSTMENT = "ADJUSTMENT" // ajuste manual, sin lote
)

// ValidMovementKind verifica que el tipo sea uno de los conocidos.
func ValidMovementKind(kind string) bool {
	switch kind {
	case MovementKindIN, MovementKindOUT, MovementKindADJUSTMENT:
		return true
	}
	return false
}

// StockMovement es un registro inmutable del libro de movimientos: cada cambio
// de cantidad (entrada, salida o ajuste) queda con su delta firmado. Las
// correcciones se hacen escribiendo un movimiento compensatorio, nunca
// mutando la historia.
type StockMovement struct {
	ID          string
	VariantID   string
	ProductID   string
	Kind        string
	Quantity    int64            // positivo IN, negativo OUT, cualquier signo ADJUSTMENT
	UnitCost    *decimal.Decimal // nil en ajustes puros
	LotID       *string          // nil en ajustes; presente en IN/OUT
	ExternalRef string           // ej. línea de venta que originó la salida
	Note        string
	CreatedBy   string // actor, anotación opaca para el core
	CreatedAt   time.Time
}
