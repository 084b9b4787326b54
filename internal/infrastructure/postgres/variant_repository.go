package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/lotes-api/internal/domain/entity"
	"github.com/invorya/lotes-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo resuelve variantes contra el catálogo (tablas variants/products,
// propiedad del catálogo; el core solo lee).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

// GetByID obtiene la variante con su producto padre. Devuelve nil, nil si no existe.
func (r *VariantRepo) GetByID(id string) (*entity.Variant, error) {
	query := `
		SELECT v.id, v.product_id, v.sku, v.name
		FROM variants v
		WHERE v.id = $1`
	var v entity.Variant
	err := r.q.QueryRow(context.Background(), query, id).Scan(&v.ID, &v.ProductID, &v.SKU, &v.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}
