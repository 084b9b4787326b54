package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/lotes-api/internal/domain/inventory"
)

// StockSnapshot proyección de stock de una variante en un instante.
type StockSnapshot struct {
	VariantID           string           `json:"variant_id"`
	Quantity            int64            `json:"quantity"`
	WeightedAverageCost *decimal.Decimal `json:"weighted_average_cost"` // nil si no hay lotes con remanente
	ComputedAt          time.Time        `json:"computed_at"`
}

// Stock devuelve la proyección de stock de la variante: cantidad en mano
// (lotes + saldo de ajustes) y costo promedio ponderado (solo lotes). Pasa
// primero por la cache; en miss recomputa desde el estado de los lotes y
// repuebla.
func (uc *LedgerUseCase) Stock(ctx context.Context, variantID string) (*StockSnapshot, error) {
	variant, err := uc.resolveVariant(variantID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if snapshot, err := uc.cache.Get(ctx, variant.ID); err == nil && snapshot != nil {
			return snapshot, nil
		}
	}

	lots, err := uc.lotRepo.ListAvailable(variant.ID)
	if err != nil {
		return nil, err
	}
	balance, err := uc.adjRepo.GetBalance(variant.ID)
	if err != nil {
		return nil, err
	}

	snapshot := &StockSnapshot{
		VariantID:           variant.ID,
		Quantity:            inventory.CurrentStock(lots) + balance,
		WeightedAverageCost: inventory.WeightedAverageCost(lots),
		ComputedAt:          time.Now(),
	}
	if uc.cache != nil {
		_ = uc.cache.Set(ctx, snapshot)
	}
	return snapshot, nil
}

// CurrentStock devuelve la cantidad en mano de la variante.
func (uc *LedgerUseCase) CurrentStock(ctx context.Context, variantID string) (int64, error) {
	snapshot, err := uc.Stock(ctx, variantID)
	if err != nil {
		return 0, err
	}
	return snapshot.Quantity, nil
}

// WeightedAverageCost devuelve el costo promedio ponderado de la variante;
// nil cuando ningún lote tiene remanente.
func (uc *LedgerUseCase) WeightedAverageCost(ctx context.Context, variantID string) (*decimal.Decimal, error) {
	snapshot, err := uc.Stock(ctx, variantID)
	if err != nil {
		return nil, err
	}
	return snapshot.WeightedAverageCost, nil
}
