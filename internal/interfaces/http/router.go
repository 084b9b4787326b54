package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/lotes-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *inventory.LedgerUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	inv.Post("/receipts", inventoryHandler.Receive)
	inv.Post("/issues", inventoryHandler.Issue)
	inv.Post("/issues/batch", inventoryHandler.IssueBatch)
	inv.Post("/adjustments", inventoryHandler.Adjust)

	stockHandler := NewStockHandler(deps.Ledger)
	inv.Get("/stock/:variant_id", stockHandler.GetStock)
	inv.Get("/movements", stockHandler.ListMovements)
}
