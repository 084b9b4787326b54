package inventory

import (
	"context"

	"github.com/invorya/lotes-api/internal/domain"
	"github.com/invorya/lotes-api/internal/domain/entity"
	"github.com/invorya/lotes-api/internal/domain/repository"
)

// ListMovements lista el libro de movimientos, descendente por fecha.
// Solo lectura: el libro es consumo de reportes, nunca fuente de decisiones
// de asignación.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	if filter.Kind != "" && !entity.ValidMovementKind(filter.Kind) {
		return nil, domain.ErrInvalidInput
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.movRepo.List(filter)
}
