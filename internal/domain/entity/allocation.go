package entity

import "github.com/shopspring/decimal"

// AllocationLine describe cuánto tomó una salida de un lote concreto.
type AllocationLine struct {
	LotID      string
	Quantity   int64
	UnitCost   decimal.Decimal
	MovementID string
}

// Allocation es el resultado efímero de una salida FIFO: cómo se cubrió la
// cantidad solicitada a través de uno o más lotes, en orden de llegada.
// No se persiste; el caller la usa para costeo/recibo.
type Allocation struct {
	VariantID string
	Requested int64
	Lines     []AllocationLine
}

// TotalCost devuelve el costo total de la asignación (sum cantidad * costo).
func (a *Allocation) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, l := range a.Lines {
		total = total.Add(l.UnitCost.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}

// Allocated devuelve la cantidad total asignada entre todos los lotes.
func (a *Allocation) Allocated() int64 {
	var total int64
	for _, l := range a.Lines {
		total += l.Quantity
	}
	return total
}
