package repository

// AdjustmentRepository define el puerto para el saldo de ajustes por variante
// (fila materializada, como la tabla de stock por bodega). Los ajustes no
// tocan lotes: su efecto neto vive aquí y se suma a la proyección de stock.
type AdjustmentRepository interface {
	GetBalance(variantID string) (int64, error)
	// GetBalanceForUpdate bloquea la fila de saldo (SELECT FOR UPDATE).
	GetBalanceForUpdate(variantID string) (int64, error)
	// AddToBalance suma delta al saldo (upsert atómico).
	AddToBalance(variantID string, delta int64) error
}
