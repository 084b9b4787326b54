package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invorya/lotes-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo saldo de ajustes por variante sobre PostgreSQL (fila
// materializada, usable con pool o tx).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// GetBalance devuelve el saldo neto de ajustes de la variante (0 si no hay fila).
func (r *AdjustmentRepo) GetBalance(variantID string) (int64, error) {
	return r.get(variantID, false)
}

// GetBalanceForUpdate igual que GetBalance pero bloqueando la fila (FOR UPDATE).
func (r *AdjustmentRepo) GetBalanceForUpdate(variantID string) (int64, error) {
	return r.get(variantID, true)
}

func (r *AdjustmentRepo) get(variantID string, forUpdate bool) (int64, error) {
	query := `SELECT balance FROM stock_adjustments WHERE variant_id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var balance int64
	err := r.q.QueryRow(context.Background(), query, variantID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get adjustment balance: %w", err)
	}
	return balance, nil
}

// AddToBalance suma delta al saldo de forma atómica (upsert).
func (r *AdjustmentRepo) AddToBalance(variantID string, delta int64) error {
	query := `
		INSERT INTO stock_adjustments (variant_id, balance, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (variant_id)
		DO UPDATE SET balance = stock_adjustments.balance + EXCLUDED.balance, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, variantID, delta)
	if err != nil {
		return fmt.Errorf("add to adjustment balance: %w", err)
	}
	return nil
}
