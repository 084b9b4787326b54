package entity

// Variant es la unidad vendible contra la que se rastrea inventario.
// El catálogo de productos es dueño de la entidad; el core solo necesita su
// identificador y la referencia al producto padre para anotar movimientos.
type Variant struct {
	ID        string
	ProductID string
	SKU       string
	Name      string
}
