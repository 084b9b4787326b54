package repository

import "github.com/invorya/lotes-api/internal/domain/entity"

// VariantRepository resuelve variantes del catálogo (colaborador externo, el
// core solo lee). GetByID devuelve nil, nil si la variante no existe.
type VariantRepository interface {
	GetByID(id string) (*entity.Variant, error)
}
