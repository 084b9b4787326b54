package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/lotes-api/internal/application/dto"
	"github.com/invorya/lotes-api/internal/application/inventory"
	"github.com/invorya/lotes-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP de mutación del libro de stock:
// recepciones, salidas FIFO y ajustes (protegido).
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// respondDomainError traduce errores de dominio a respuestas HTTP con detalle
// estructurado suficiente para un mensaje accionable, sin filtrar
// identificadores internos más allá de los que el caller ya envió.
func respondDomainError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: "stock insuficiente",
			Detail: fiber.Map{
				"variant_id": insufficient.VariantID,
				"requested":  insufficient.Requested,
				"available":  insufficient.Available,
			},
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "variante no encontrada"})
	case errors.Is(err, domain.ErrLockTimeout):
		// Único error seguro de reintentar: la transacción se revirtió completa
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "LOCK_TIMEOUT", Message: "inventario ocupado, reintente"})
	case errors.Is(err, domain.ErrConcurrentMutation), errors.Is(err, domain.ErrInvariantViolation):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INVARIANT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// Receive godoc
// @Summary      Registrar recepción de stock (nuevo lote)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveRequest  true  "variant_id, quantity, unit_cost, arrival_at (opcional), note"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, mov, err := h.ledger.Receive(c.Context(), inventory.ReceiveInput{
		VariantID: in.VariantID,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		ArrivalAt: in.ArrivalAt,
		Note:      in.Note,
		Actor:     GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"lot":      dto.FromLot(lot),
		"movement": dto.FromMovement(mov),
	})
}

// Issue godoc
// @Summary      Salida de stock FIFO (una línea)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueRequest  true  "variant_id, quantity, note, external_ref"
// @Success      201   {object}  dto.AllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/issues [post]
func (h *InventoryHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	alloc, err := h.ledger.Issue(c.Context(), inventory.IssueInput{
		VariantID:   in.VariantID,
		Quantity:    in.Quantity,
		Note:        in.Note,
		ExternalRef: in.ExternalRef,
		Actor:       GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromAllocation(alloc))
}

// IssueBatch godoc
// @Summary      Salida de stock FIFO multi-línea (todo o nada)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueBatchRequest  true  "lines"
// @Success      201   {array}   dto.AllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/issues/batch [post]
func (h *InventoryHandler) IssueBatch(c *fiber.Ctx) error {
	var in dto.IssueBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	actor := GetUserID(c)
	lines := make([]inventory.IssueInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, inventory.IssueInput{
			VariantID:   l.VariantID,
			Quantity:    l.Quantity,
			Note:        l.Note,
			ExternalRef: l.ExternalRef,
			Actor:       actor,
		})
	}
	allocations, err := h.ledger.IssueMany(c.Context(), lines)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.AllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, dto.FromAllocation(a))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Adjust godoc
// @Summary      Ajuste manual de stock (delta firmado o target absoluto)
// @Description  Escribe un movimiento ADJUSTMENT sin tocar lotes. Con target,
//
//	el delta se calcula contra el stock proyectado; si resulta cero
//	no se escribe nada.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "variant_id y delta o target"
// @Success      201   {object}  dto.MovementResponse
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if (in.Delta == nil) == (in.Target == nil) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "enviar exactamente uno de delta o target"})
	}
	actor := GetUserID(c)

	if in.Delta != nil {
		mov, err := h.ledger.Adjust(c.Context(), inventory.AdjustInput{
			VariantID: in.VariantID,
			Delta:     *in.Delta,
			Note:      in.Note,
			Actor:     actor,
		})
		if err != nil {
			return respondDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(mov))
	}

	mov, err := h.ledger.SetStock(c.Context(), inventory.SetStockInput{
		VariantID: in.VariantID,
		Target:    *in.Target,
		Note:      in.Note,
		Actor:     actor,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	if mov == nil {
		// El stock ya estaba en el target: no se escribió movimiento
		return c.JSON(fiber.Map{"message": "sin cambios"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(mov))
}
