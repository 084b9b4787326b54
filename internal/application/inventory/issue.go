package inventory

import (
	"context"
	"time"

	"github.com/invorya/lotes-api/internal/domain"
	"github.com/invorya/lotes-api/internal/domain/entity"
	"github.com/invorya/lotes-api/internal/domain/repository"
)

// IssueInput entrada para una salida de stock FIFO.
type IssueInput struct {
	VariantID   string
	Quantity    int64
	Note        string
	ExternalRef string // ej. línea de venta que origina la salida
	Actor       string
}

// Issue ejecuta una salida FIFO: bloquea los lotes disponibles de la variante
// en orden de llegada, asigna de cada uno lo que pueda aportar, decrementa y
// escribe un movimiento OUT por lote tocado. Si el total disponible no alcanza
// la operación completa se rechaza con InsufficientStock sin mutar nada.
func (uc *LedgerUseCase) Issue(ctx context.Context, in IssueInput) (*entity.Allocation, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	variant, err := uc.resolveVariant(in.VariantID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var alloc *entity.Allocation
	var movements []*entity.StockMovement

	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		_ repository.AdjustmentRepository,
	) error {
		alloc, movements, err = allocateFIFO(lotRepo, movRepo, variant, in, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.afterCommit(ctx, movements, variant.ID)
	return alloc, nil
}

// IssueMany ejecuta varias salidas en una sola transacción: una venta
// multi-línea se confirma completa o se revierte completa. El fallo de
// cualquier línea aborta el lote entero.
func (uc *LedgerUseCase) IssueMany(ctx context.Context, lines []IssueInput) ([]*entity.Allocation, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	// Toda la validación ocurre antes de abrir la transacción.
	variants := make([]*entity.Variant, len(lines))
	for i, line := range lines {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		variant, err := uc.resolveVariant(line.VariantID)
		if err != nil {
			return nil, err
		}
		variants[i] = variant
	}

	now := time.Now()
	allocations := make([]*entity.Allocation, 0, len(lines))
	var movements []*entity.StockMovement
	variantIDs := make([]string, 0, len(lines))

	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		_ repository.AdjustmentRepository,
	) error {
		for i, line := range lines {
			alloc, movs, err := allocateFIFO(lotRepo, movRepo, variants[i], line, now)
			if err != nil {
				return err
			}
			allocations = append(allocations, alloc)
			movements = append(movements, movs...)
			variantIDs = append(variantIDs, variants[i].ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.afterCommit(ctx, movements, variantIDs...)
	return allocations, nil
}

// allocateFIFO es el corazón del asignador: camina los lotes bloqueados en
// orden de llegada (desempate por id) y va tomando min(pendiente, disponible)
// de cada uno. Debe llamarse con repositorios atados a la transacción.
func allocateFIFO(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	variant *entity.Variant,
	in IssueInput,
	now time.Time,
) (*entity.Allocation, []*entity.StockMovement, error) {
	// Bloquea y carga los lotes disponibles (SELECT FOR UPDATE): dos salidas
	// concurrentes sobre la misma variante se serializan aquí.
	lots, err := lotRepo.ListAvailableForUpdate(variant.ID)
	if err != nil {
		return nil, nil, err
	}

	var totalAvailable int64
	for _, lot := range lots {
		totalAvailable += lot.AvailableQty
	}
	if totalAvailable < in.Quantity {
		return nil, nil, &domain.InsufficientStockError{
			VariantID: variant.ID,
			Requested: in.Quantity,
			Available: totalAvailable,
		}
	}

	alloc := &entity.Allocation{VariantID: variant.ID, Requested: in.Quantity}
	var movements []*entity.StockMovement
	remaining := in.Quantity

	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		take := remaining
		if lot.AvailableQty < take {
			take = lot.AvailableQty
		}
		if take <= 0 {
			continue
		}
		if err := lotRepo.Decrement(lot.ID, take); err != nil {
			return nil, nil, err
		}
		unitCost := lot.UnitCost
		lotID := lot.ID
		mov := &entity.StockMovement{
			VariantID:   variant.ID,
			ProductID:   variant.ProductID,
			Kind:        entity.MovementKindOUT,
			Quantity:    -take,
			UnitCost:    &unitCost,
			LotID:       &lotID,
			ExternalRef: in.ExternalRef,
			Note:        in.Note,
			CreatedBy:   in.Actor,
			CreatedAt:   now,
		}
		if err := movRepo.Append(mov); err != nil {
			return nil, nil, err
		}
		movements = append(movements, mov)
		alloc.Lines = append(alloc.Lines, entity.AllocationLine{
			LotID:      lot.ID,
			Quantity:   take,
			UnitCost:   lot.UnitCost,
			MovementID: mov.ID,
		})
		remaining -= take
	}

	// Inalcanzable salvo que otro proceso mute lotes por fuera del bloqueo:
	// ya verificamos que el total disponible cubría lo solicitado.
	if remaining > 0 {
		return nil, nil, &domain.ConcurrentMutationError{
			VariantID: variant.ID,
			Requested: in.Quantity,
			Allocated: in.Quantity - remaining,
		}
	}
	return alloc, movements, nil
}
