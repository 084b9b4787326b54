package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/lotes-api/internal/application/dto"
	"github.com/invorya/lotes-api/internal/application/inventory"
	"github.com/invorya/lotes-api/internal/domain/repository"
)

// StockHandler maneja las consultas de solo lectura: proyección de stock y
// libro de movimientos (protegido).
type StockHandler struct {
	ledger *inventory.LedgerUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *inventory.LedgerUseCase) *StockHandler {
	return &StockHandler{ledger: ledger}
}

// GetStock godoc
// @Summary      Stock actual y costo promedio ponderado de una variante
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        variant_id  path  string  true  "ID de la variante"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{variant_id} [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	snapshot, err := h.ledger.Stock(c.Context(), c.Params("variant_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.FromSnapshot(snapshot))
}

// ListMovements godoc
// @Summary      Listar movimientos del libro de inventario
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        variant_id  query  string  false  "Filtrar por variante"
// @Param        kind        query  string  false  "IN | OUT | ADJUSTMENT"
// @Param        from        query  string  false  "Desde (RFC3339)"
// @Param        to          query  string  false  "Hasta (RFC3339)"
// @Param        search      query  string  false  "Texto en note/external_ref"
// @Param        limit       query  int     false  "Máx 100, default 20"
// @Param        offset      query  int     false  "Offset de paginación"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := repository.MovementFilter{
		VariantID: c.Query("variant_id"),
		Kind:      c.Query("kind"),
		Search:    c.Query("search"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		filter.To = &t
	}

	movements, err := h.ledger.ListMovements(c.Context(), filter)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.FromMovement(m))
	}
	return c.JSON(fiber.Map{
		"total":     len(out),
		"movements": out,
		"page":      fiber.Map{"limit": page.Limit, "offset": page.Offset},
	})
}
