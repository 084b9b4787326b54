package inventory

import (
	"context"

	"github.com/invorya/lotes-api/internal/domain/entity"
	"github.com/invorya/lotes-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de lotes:
// Commit si fn retorna nil, Rollback completo si retorna error.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		movRepo repository.MovementRepository,
		adjRepo repository.AdjustmentRepository,
	) error) error
}

// StockCache cachea la proyección de stock por variante (vista de reportes).
// Get devuelve nil, nil en cache miss. La BD sigue siendo la fuente de verdad:
// la proyección siempre puede recomputarse desde los lotes.
type StockCache interface {
	Get(ctx context.Context, variantID string) (*StockSnapshot, error)
	Set(ctx context.Context, snapshot *StockSnapshot) error
	Invalidate(ctx context.Context, variantIDs ...string) error
}

// MovementPublisher publica movimientos confirmados para consumidores externos
// de reportes. Mejor esfuerzo post-commit: el core nunca lee estos eventos.
type MovementPublisher interface {
	Publish(ctx context.Context, movements ...*entity.StockMovement) error
}
