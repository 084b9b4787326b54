package inventory

import (
	"context"
	"time"

	"github.com/invorya/lotes-api/internal/domain"
	"github.com/invorya/lotes-api/internal/domain/entity"
	"github.com/invorya/lotes-api/internal/domain/inventory"
	"github.com/invorya/lotes-api/internal/domain/repository"
)

// AdjustInput entrada para un ajuste manual de stock.
type AdjustInput struct {
	VariantID string
	Delta     int64
	Note      string
	Actor     string
}

// Adjust escribe un movimiento ADJUSTMENT con delta firmado arbitrario, sin
// tocar ningún lote: existe para reconciliar el stock proyectado con la
// realidad física (reconteo) sin inventar historia de lotes ficticia. El
// efecto neto se acumula en el saldo de ajustes de la variante. Delta cero se
// rechaza como no-op (señal de error del caller). El costo unitario queda
// nulo: los ajustes no pesan en el costo promedio ponderado.
func (uc *LedgerUseCase) Adjust(ctx context.Context, in AdjustInput) (*entity.StockMovement, error) {
	if in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	variant, err := uc.resolveVariant(in.VariantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var mov *entity.StockMovement

	err = uc.txRunner.Run(ctx, func(
		_ repository.LotRepository,
		movRepo repository.MovementRepository,
		adjRepo repository.AdjustmentRepository,
	) error {
		if err := adjRepo.AddToBalance(variant.ID, in.Delta); err != nil {
			return err
		}
		mov = &entity.StockMovement{
			VariantID: variant.ID,
			ProductID: variant.ProductID,
			Kind:      entity.MovementKindADJUSTMENT,
			Quantity:  in.Delta,
			Note:      in.Note,
			CreatedBy: in.Actor,
			CreatedAt: now,
		}
		return movRepo.Append(mov)
	})
	if err != nil {
		return nil, err
	}

	uc.afterCommit(ctx, []*entity.StockMovement{mov}, variant.ID)
	return mov, nil
}

// SetStockInput entrada para fijar el stock absoluto de una variante.
type SetStockInput struct {
	VariantID string
	Target    int64
	Note      string
	Actor     string
}

// SetStock expresa "fijar stock en N" como un ajuste por la diferencia contra
// el stock proyectado, calculada bajo bloqueo para que una salida concurrente
// no corra el piso. Si la diferencia es cero no se escribe ningún movimiento
// y retorna nil, nil.
func (uc *LedgerUseCase) SetStock(ctx context.Context, in SetStockInput) (*entity.StockMovement, error) {
	if in.Target < 0 {
		return nil, domain.ErrInvalidInput
	}
	variant, err := uc.resolveVariant(in.VariantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var mov *entity.StockMovement

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		adjRepo repository.AdjustmentRepository,
	) error {
		lots, err := lotRepo.ListAvailableForUpdate(variant.ID)
		if err != nil {
			return err
		}
		balance, err := adjRepo.GetBalanceForUpdate(variant.ID)
		if err != nil {
			return err
		}
		delta := in.Target - (inventory.CurrentStock(lots) + balance)
		if delta == 0 {
			return nil
		}
		if err := adjRepo.AddToBalance(variant.ID, delta); err != nil {
			return err
		}
		mov = &entity.StockMovement{
			VariantID: variant.ID,
			ProductID: variant.ProductID,
			Kind:      entity.MovementKindADJUSTMENT,
			Quantity:  delta,
			Note:      in.Note,
			CreatedBy: in.Actor,
			CreatedAt: now,
		}
		return movRepo.Append(mov)
	})
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, nil
	}

	uc.afterCommit(ctx, []*entity.StockMovement{mov}, variant.ID)
	return mov, nil
}
