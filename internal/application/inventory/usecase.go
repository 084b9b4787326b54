package inventory

import (
	"context"

	"github.com/invorya/lotes-api/internal/domain"
	"github.com/invorya/lotes-api/internal/domain/entity"
	"github.com/invorya/lotes-api/internal/domain/repository"
)

// LedgerUseCase implementa el libro de stock por lotes: recepciones, salidas
// FIFO, ajustes y proyección de stock. Toda mutación corre dentro de exactamente
// una transacción (TxRunner) con bloqueo de fila sobre los lotes afectados.
type LedgerUseCase struct {
	txRunner    TxRunner
	variantRepo repository.VariantRepository
	lotRepo     repository.LotRepository        // atado al pool, solo lecturas
	movRepo     repository.MovementRepository   // atado al pool, solo lecturas
	adjRepo     repository.AdjustmentRepository // atado al pool, solo lecturas
	cache       StockCache                      // opcional (nil = sin cache)
	publisher   MovementPublisher               // opcional (nil = sin eventos)
}

// NewLedgerUseCase construye el caso de uso. cache y publisher pueden ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	variantRepo repository.VariantRepository,
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	adjRepo repository.AdjustmentRepository,
	cache StockCache,
	publisher MovementPublisher,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		variantRepo: variantRepo,
		lotRepo:     lotRepo,
		movRepo:     movRepo,
		adjRepo:     adjRepo,
		cache:       cache,
		publisher:   publisher,
	}
}

// resolveVariant valida que la variante exista en el catálogo.
func (uc *LedgerUseCase) resolveVariant(variantID string) (*entity.Variant, error) {
	if variantID == "" {
		return nil, domain.ErrInvalidInput
	}
	variant, err := uc.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	return variant, nil
}

// afterCommit invalida la proyección cacheada y publica los movimientos
// confirmados. Mejor esfuerzo: un fallo aquí no revierte la transacción.
func (uc *LedgerUseCase) afterCommit(ctx context.Context, movements []*entity.StockMovement, variantIDs ...string) {
	if uc.cache != nil && len(variantIDs) > 0 {
		_ = uc.cache.Invalidate(ctx, variantIDs...)
	}
	if uc.publisher != nil && len(movements) > 0 {
		_ = uc.publisher.Publish(ctx, movements...)
	}
}
