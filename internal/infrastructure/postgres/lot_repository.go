package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/invorya/lotes-api/internal/domain"
	"github.com/invorya/lotes-api/internal/domain/entity"
	"github.com/invorya/lotes-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

const lotColumns = "id, variant_id, product_id, initial_qty, available_qty, unit_cost, arrival_at, note, created_at"

// Create inserta un nuevo lote con available_qty = initial_qty.
func (r *LotRepo) Create(lot *entity.Lot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	query := `
		INSERT INTO lots (id, variant_id, product_id, initial_qty, available_qty, unit_cost, arrival_at, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.VariantID, lot.ProductID, lot.InitialQty, lot.AvailableQty,
		lot.UnitCost, lot.ArrivalAt, lot.Note, lot.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

// ListAvailable devuelve los lotes con disponible > 0 en orden FIFO:
// llegada ascendente, desempate por id para un orden total reproducible.
func (r *LotRepo) ListAvailable(variantID string) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots
		WHERE variant_id = $1 AND available_qty > 0
		ORDER BY arrival_at ASC, id ASC`
	return r.list(query, variantID)
}

// ListAvailableForUpdate igual que ListAvailable pero bloqueando las filas
// devueltas (FOR UPDATE): asignaciones concurrentes sobre la misma variante
// se serializan en este punto.
func (r *LotRepo) ListAvailableForUpdate(variantID string) ([]*entity.Lot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM lots
		WHERE variant_id = $1 AND available_qty > 0
		ORDER BY arrival_at ASC, id ASC
		FOR UPDATE`
	return r.list(query, variantID)
}

func (r *LotRepo) list(query, variantID string) ([]*entity.Lot, error) {
	rows, err := r.q.Query(context.Background(), query, variantID)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var lots []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.VariantID, &l.ProductID, &l.InitialQty,
			&l.AvailableQty, &l.UnitCost, &l.ArrivalAt, &l.Note, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, &l)
	}
	return lots, rows.Err()
}

// Decrement resta amount del disponible del lote. El WHERE exige que quede
// suficiente remanente: si no afecta filas el decremento habría dejado el
// lote en negativo y se reporta InvariantViolation, nunca se recorta.
func (r *LotRepo) Decrement(lotID string, amount int64) error {
	query := `
		UPDATE lots
		SET available_qty = available_qty - $2
		WHERE id = $1 AND available_qty >= $2`
	tag, err := r.q.Exec(context.Background(), query, lotID, amount)
	if err != nil {
		return fmt.Errorf("decrement lot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.InvariantViolationError{LotID: lotID, Amount: amount}
	}
	return nil
}
