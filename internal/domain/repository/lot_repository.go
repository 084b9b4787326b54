package repository

import "github.com/invorya/lotes-api/internal/domain/entity"

// LotRepository define el puerto de persistencia de lotes de stock.
// ListAvailableForUpdate debe usarse dentro de una transacción: bloquea las
// filas devueltas (SELECT FOR UPDATE) para que asignaciones concurrentes
// sobre la misma variante se serialicen en vez de entrelazarse.
type LotRepository interface {
	Create(lot *entity.Lot) error
	// ListAvailable devuelve los lotes con disponible > 0, orden de llegada
	// ascendente y desempate por id (orden total reproducible).
	ListAvailable(variantID string) ([]*entity.Lot, error)
	// ListAvailableForUpdate igual que ListAvailable pero bloqueando las filas.
	ListAvailableForUpdate(variantID string) ([]*entity.Lot, error)
	// Decrement resta amount del disponible; falla con InvariantViolation si
	// el resultado quedara negativo (chequeo defensivo, inalcanzable con la
	// disciplina de bloqueo).
	Decrement(lotID string, amount int64) error
}
