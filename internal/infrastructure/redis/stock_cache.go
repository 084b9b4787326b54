package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/invorya/lotes-api/internal/application/inventory"
)

var _ inventory.StockCache = (*StockCache)(nil)

// TTL por defecto del snapshot cacheado. La BD sigue siendo la fuente de
// verdad: la proyección siempre puede recomputarse desde los lotes.
const defaultTTL = 5 * time.Minute

// StockCache cache read-through de la proyección de stock por variante.
// Clave: stock:{variant_id} -> JSON de StockSnapshot.
type StockCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStockCache construye la cache. ttl <= 0 usa el valor por defecto.
func NewStockCache(client *redis.Client, ttl time.Duration) *StockCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &StockCache{client: client, ttl: ttl}
}

func key(variantID string) string {
	return "stock:" + variantID
}

// Get devuelve el snapshot cacheado o nil, nil en miss.
func (c *StockCache) Get(ctx context.Context, variantID string) (*inventory.StockSnapshot, error) {
	raw, err := c.client.Get(ctx, key(variantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock cache: %w", err)
	}
	var snapshot inventory.StockSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		// Entrada corrupta: tratarla como miss y dejar que se repueble
		_ = c.client.Del(ctx, key(variantID)).Err()
		return nil, nil
	}
	return &snapshot, nil
}

// Set guarda el snapshot con TTL.
func (c *StockCache) Set(ctx context.Context, snapshot *inventory.StockSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal stock snapshot: %w", err)
	}
	if err := c.client.Set(ctx, key(snapshot.VariantID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set stock cache: %w", err)
	}
	return nil
}

// Invalidate borra los snapshots de las variantes tras una mutación confirmada.
func (c *StockCache) Invalidate(ctx context.Context, variantIDs ...string) error {
	keys := make([]string, len(variantIDs))
	for i, id := range variantIDs {
		keys[i] = key(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate stock cache: %w", err)
	}
	return nil
}
