package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/invorya/lotes-api/internal/domain/entity"
)

// Proyección de stock (servicio de dominio): el stock actual y el costo
// promedio ponderado se derivan únicamente del estado de los lotes. El libro
// de movimientos es auditoría, nunca fuente de verdad del saldo.

// CurrentStock suma la cantidad disponible de todos los lotes de la variante.
func CurrentStock(lots []*entity.Lot) int64 {
	var total int64
	for _, l := range lots {
		total += l.AvailableQty
	}
	return total
}

// WeightedAverageCost calcula el costo promedio ponderado sobre los lotes con
// cantidad disponible:
//
//	CPP = sum(disponible * costo_unitario) / sum(disponible)
//
// Devuelve nil (indefinido, no cero) cuando ningún lote tiene remanente.
func WeightedAverageCost(lots []*entity.Lot) *decimal.Decimal {
	var qty int64
	value := decimal.Zero
	for _, l := range lots {
		if l.AvailableQty <= 0 {
			continue
		}
		qty += l.AvailableQty
		value = value.Add(l.UnitCost.Mul(decimal.NewFromInt(l.AvailableQty)))
	}
	if qty == 0 {
		return nil
	}
	avg := value.Div(decimal.NewFromInt(qty))
	return &avg
}
