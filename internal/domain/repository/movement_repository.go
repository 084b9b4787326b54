package repository

import (
	"time"

	"github.com/invorya/lotes-api/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos (consumo de reportes).
type MovementFilter struct {
	VariantID string
	Kind      string
	From      *time.Time
	To        *time.Time
	Search    string // busca en note y external_ref
	Limit     int
	Offset    int
}

// MovementRepository define el puerto del libro de movimientos: append-only.
// No se expone update ni delete; las correcciones son movimientos nuevos.
type MovementRepository interface {
	Append(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// List devuelve movimientos orden descendente por fecha de creación.
	List(filter MovementFilter) ([]*entity.StockMovement, error)
}
