package inventory_test

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/invorya/lotes-api/internal/application/inventory"
	"github.com/invorya/lotes-api/internal/domain"
	"github.com/invorya/lotes-api/internal/domain/entity"
	"github.com/invorya/lotes-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: el mutex del fakeTxRunner cumple el rol del bloqueo de
// fila (serializa transacciones), y el snapshot/restore cumple el rol del
// Rollback (ninguna mutación parcial sobrevive a un error).
// ──────────────────────────────────────────────────────────────────────────────

type fakeState struct {
	mu        sync.Mutex
	variants  map[string]*entity.Variant
	lots      []*entity.Lot
	movements []*entity.StockMovement
	balances  map[string]int64
}

func newFakeState() *fakeState {
	return &fakeState{
		variants: make(map[string]*entity.Variant),
		balances: make(map[string]int64),
	}
}

func (s *fakeState) addVariant(id, productID string) {
	s.variants[id] = &entity.Variant{ID: id, ProductID: productID, SKU: "SKU-" + id}
}

type snapshot struct {
	lots      []*entity.Lot
	movements []*entity.StockMovement
	balances  map[string]int64
}

func (s *fakeState) snapshot() snapshot {
	snap := snapshot{
		lots:      make([]*entity.Lot, len(s.lots)),
		movements: make([]*entity.StockMovement, len(s.movements)),
		balances:  make(map[string]int64, len(s.balances)),
	}
	for i, l := range s.lots {
		c := *l
		snap.lots[i] = &c
	}
	copy(snap.movements, s.movements) // los movimientos son inmutables
	for k, v := range s.balances {
		snap.balances[k] = v
	}
	return snap
}

func (s *fakeState) restore(snap snapshot) {
	s.lots = snap.lots
	s.movements = snap.movements
	s.balances = snap.balances
}

type fakeTxRunner struct {
	s *fakeState
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	lotRepo repository.LotRepository,
	movRepo repository.MovementRepository,
	adjRepo repository.AdjustmentRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(&fakeLotRepo{r.s}, &fakeMovementRepo{r.s}, &fakeAdjustmentRepo{r.s}); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

type fakeVariantRepo struct {
	s *fakeState
}

func (r *fakeVariantRepo) GetByID(id string) (*entity.Variant, error) {
	return r.s.variants[id], nil
}

type fakeLotRepo struct {
	s *fakeState
}

func (r *fakeLotRepo) Create(lot *entity.Lot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	c := *lot
	r.s.lots = append(r.s.lots, &c)
	return nil
}

func (r *fakeLotRepo) ListAvailable(variantID string) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range r.s.lots {
		if l.VariantID == variantID && l.AvailableQty > 0 {
			c := *l
			out = append(out, &c)
		}
	}
	// Orden FIFO: llegada ascendente, desempate por id
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ArrivalAt.Equal(out[j].ArrivalAt) {
			return out[i].ArrivalAt.Before(out[j].ArrivalAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeLotRepo) ListAvailableForUpdate(variantID string) ([]*entity.Lot, error) {
	return r.ListAvailable(variantID)
}

func (r *fakeLotRepo) Decrement(lotID string, amount int64) error {
	for _, l := range r.s.lots {
		if l.ID == lotID {
			if l.AvailableQty < amount {
				return &domain.InvariantViolationError{LotID: lotID, Amount: amount}
			}
			l.AvailableQty -= amount
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeMovementRepo struct {
	s *fakeState
}

func (r *fakeMovementRepo) Append(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(f repository.MovementFilter) ([]*entity.StockMovement, error) {
	// Inserción cronológica: recorrer al revés da orden descendente. Primero
	// se filtra todo y luego se pagina, igual que WHERE + LIMIT/OFFSET.
	var matched []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if f.VariantID != "" && m.VariantID != f.VariantID {
			continue
		}
		if f.Kind != "" && m.Kind != f.Kind {
			continue
		}
		if f.From != nil && m.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && m.CreatedAt.After(*f.To) {
			continue
		}
		if f.Search != "" && !movementMatchesSearch(m, f.Search) {
			continue
		}
		matched = append(matched, m)
	}
	if f.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

// movementMatchesSearch replica el ILIKE sobre note y external_ref.
func movementMatchesSearch(m *entity.StockMovement, search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(m.Note), s) ||
		strings.Contains(strings.ToLower(m.ExternalRef), s)
}

type fakeAdjustmentRepo struct {
	s *fakeState
}

func (r *fakeAdjustmentRepo) GetBalance(variantID string) (int64, error) {
	return r.s.balances[variantID], nil
}

func (r *fakeAdjustmentRepo) GetBalanceForUpdate(variantID string) (int64, error) {
	return r.s.balances[variantID], nil
}

func (r *fakeAdjustmentRepo) AddToBalance(variantID string, delta int64) error {
	r.s.balances[variantID] += delta
	return nil
}

// recordingPublisher acumula lo publicado tras cada commit.
type recordingPublisher struct {
	mu        sync.Mutex
	published []*entity.StockMovement
}

func (p *recordingPublisher) Publish(_ context.Context, movements ...*entity.StockMovement) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, movements...)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

// newTestLedger arma el caso de uso sobre los fakes, sin cache.
func newTestLedger() (*inventory.LedgerUseCase, *fakeState, *recordingPublisher) {
	s := newFakeState()
	pub := &recordingPublisher{}
	uc := inventory.NewLedgerUseCase(
		&fakeTxRunner{s},
		&fakeVariantRepo{s},
		&fakeLotRepo{s},
		&fakeMovementRepo{s},
		&fakeAdjustmentRepo{s},
		nil,
		pub,
	)
	return uc, s, pub
}
