package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/lotes-api/internal/domain"
	"github.com/invorya/lotes-api/internal/domain/entity"
	"github.com/invorya/lotes-api/internal/domain/repository"
)

// ReceiveInput entrada para la recepción de un lote de stock.
type ReceiveInput struct {
	VariantID string
	Quantity  int64
	UnitCost  decimal.Decimal
	ArrivalAt *time.Time // nil = fecha de creación; puede retro-fecharse
	Note      string
	Actor     string
}

// Receive registra la llegada de stock físico: crea el lote y su movimiento IN
// en una sola transacción. O existen ambos registros o ninguno.
func (uc *LedgerUseCase) Receive(ctx context.Context, in ReceiveInput) (*entity.Lot, *entity.StockMovement, error) {
	if in.Quantity <= 0 || in.UnitCost.LessThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}
	variant, err := uc.resolveVariant(in.VariantID)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	arrival := now
	if in.ArrivalAt != nil {
		arrival = *in.ArrivalAt
	}

	lot := &entity.Lot{
		VariantID:    variant.ID,
		ProductID:    variant.ProductID,
		InitialQty:   in.Quantity,
		AvailableQty: in.Quantity,
		UnitCost:     in.UnitCost,
		ArrivalAt:    arrival,
		Note:         in.Note,
		CreatedAt:    now,
	}
	var mov *entity.StockMovement

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		_ repository.AdjustmentRepository,
	) error {
		if err := lotRepo.Create(lot); err != nil {
			return err
		}
		unitCost := in.UnitCost
		lotID := lot.ID
		mov = &entity.StockMovement{
			VariantID: variant.ID,
			ProductID: variant.ProductID,
			Kind:      entity.MovementKindIN,
			Quantity:  in.Quantity,
			UnitCost:  &unitCost,
			LotID:     &lotID,
			Note:      in.Note,
			CreatedBy: in.Actor,
			CreatedAt: now,
		}
		return movRepo.Append(mov)
	})
	if err != nil {
		return nil, nil, err
	}

	uc.afterCommit(ctx, []*entity.StockMovement{mov}, variant.ID)
	return lot, mov, nil
}
