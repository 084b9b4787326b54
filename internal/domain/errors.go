package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrConcurrentMutation = errors.New("mutación concurrente detectada")
	ErrLockTimeout        = errors.New("timeout esperando bloqueo de fila")
	ErrInvariantViolation = errors.New("invariante de inventario violado")
)

// InsufficientStockError lleva el detalle solicitado/disponible para que el
// caller pueda armar un mensaje accionable. Desenvuelve a ErrInsufficientStock.
type InsufficientStockError struct {
	VariantID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para variante %s: solicitado %d, disponible %d",
		e.VariantID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ConcurrentMutationError: rama defensiva del asignador FIFO. Solo puede
// dispararse si otro proceso mutó lotes por fuera del bloqueo de fila; es
// señal de bug, no condición reintentable.
type ConcurrentMutationError struct {
	VariantID string
	Requested int64
	Allocated int64 // cuánto alcanzó a asignarse antes de detectar el faltante
}

func (e *ConcurrentMutationError) Error() string {
	return fmt.Sprintf("mutación concurrente en variante %s: asignado %d de %d antes de detectar el faltante",
		e.VariantID, e.Allocated, e.Requested)
}

func (e *ConcurrentMutationError) Unwrap() error { return ErrConcurrentMutation }

// InvariantViolationError: un decremento dejaría la cantidad disponible de un
// lote en negativo. Inalcanzable con la disciplina de bloqueo; siempre fatal,
// nunca se recorta en silencio.
type InvariantViolationError struct {
	LotID  string
	Amount int64
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("decrementar %d dejaría el lote %s en negativo", e.Amount, e.LotID)
}

func (e *InvariantViolationError) Unwrap() error { return ErrInvariantViolation }
