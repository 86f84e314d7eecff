package settlement

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/repository"
)

// fakeStore is an in-memory repository.Round with row locks that behave like
// SELECT ... FOR UPDATE and a row-locking UPDATE on the ledger
type fakeStore struct {
	mu      sync.Mutex
	wallets map[string]decimal.Decimal
	rounds  map[uuid.UUID]*domain.Round
	entries []*domain.WalletEntry
	claims  []*domain.PrizeClaim
	ledgers map[string]domain.BudgetLedger

	rowLocks map[string]*sync.Mutex
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		wallets:  map[string]decimal.Decimal{},
		rounds:   map[uuid.UUID]*domain.Round{},
		ledgers:  map[string]domain.BudgetLedger{},
		rowLocks: map[string]*sync.Mutex{},
	}
}

func ledgerKey(gameType string, day time.Time) string {
	return gameType + "/" + day.Format(time.DateOnly)
}

func (s *fakeStore) lockFor(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rowLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.rowLocks[key] = l
	}
	return l
}

func (s *fakeStore) BeginRoundTx(ctx context.Context) (repository.RoundTx, error) {
	return &fakeTx{store: s}, nil
}

func (s *fakeStore) GetRound(ctx context.Context, roundID uuid.UUID) (*domain.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rounds[roundID]
	if !ok {
		return nil, domain.ErrRoundNotFound
	}
	return r, nil
}

func (s *fakeStore) FindRoundByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByKeyLocked(userID, key)
}

func (s *fakeStore) findByKeyLocked(userID, key string) (*domain.Round, error) {
	for _, r := range s.rounds {
		if r.UserID == userID && r.IdempotencyKey == key {
			return r, nil
		}
	}
	return nil, domain.ErrRoundNotFound
}

func (s *fakeStore) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &domain.Wallet{UserID: userID, Balance: s.wallets[userID]}, nil
}

func (s *fakeStore) GetLedger(ctx context.Context, gameType string, day time.Time) (*domain.BudgetLedger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.ledgers[ledgerKey(gameType, day)]
	return &l, nil
}

type fakeTx struct {
	store *fakeStore
	held  []*sync.Mutex
	done  bool

	rounds  []*domain.Round
	entries []*domain.WalletEntry
	claims  []*domain.PrizeClaim
	wallets map[string]decimal.Decimal
	ledger  *domain.BudgetLedger
}

func (t *fakeTx) acquire(key string) {
	l := t.store.lockFor(key)
	l.Lock()
	t.held = append(t.held, l)
}

func (t *fakeTx) release() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.held[i].Unlock()
	}
	t.held = nil
	t.done = true
}

func (t *fakeTx) Commit(ctx context.Context) error {
	s := t.store
	s.mu.Lock()
	for _, r := range t.rounds {
		s.rounds[r.ID] = r
	}
	s.entries = append(s.entries, t.entries...)
	s.claims = append(s.claims, t.claims...)
	for u, b := range t.wallets {
		s.wallets[u] = b
	}
	if t.ledger != nil {
		s.ledgers[ledgerKey(t.ledger.GameType, t.ledger.Day)] = *t.ledger
	}
	s.mu.Unlock()
	t.release()
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.release()
	return nil
}

func (t *fakeTx) GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	t.acquire("wallet/" + userID)
	return t.store.GetWallet(ctx, userID)
}

func (t *fakeTx) FindRoundByIdempotencyKey(ctx context.Context, userID, key string) (*domain.Round, error) {
	return t.store.FindRoundByIdempotencyKey(ctx, userID, key)
}

func (t *fakeTx) EnsureLedger(ctx context.Context, gameType string, day time.Time, pct decimal.Decimal) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ledgerKey(gameType, day)
	if _, ok := s.ledgers[key]; !ok {
		s.ledgers[key] = domain.BudgetLedger{GameType: gameType, Day: day, PrizeBudgetPct: pct, AlertLevel: domain.AlertNormal}
	}
	return nil
}

func (t *fakeTx) GetLedger(ctx context.Context, gameType string, day time.Time) (*domain.BudgetLedger, error) {
	return t.store.GetLedger(ctx, gameType, day)
}

func (t *fakeTx) InsertRound(ctx context.Context, round *domain.Round) error {
	if round.IdempotencyKey != "" {
		if _, err := t.store.FindRoundByIdempotencyKey(ctx, round.UserID, round.IdempotencyKey); err == nil {
			return domain.ErrDuplicateRound
		}
	}
	t.rounds = append(t.rounds, round)
	return nil
}

func (t *fakeTx) UpdateWalletBalance(ctx context.Context, userID string, balance decimal.Decimal) error {
	if t.wallets == nil {
		t.wallets = map[string]decimal.Decimal{}
	}
	t.wallets[userID] = balance
	return nil
}

func (t *fakeTx) InsertWalletEntry(ctx context.Context, entry *domain.WalletEntry) error {
	t.entries = append(t.entries, entry)
	return nil
}

func (t *fakeTx) GrantItem(ctx context.Context, claim *domain.PrizeClaim) error {
	t.claims = append(t.claims, claim)
	return nil
}

// UpdateLedgerIfVersion takes the ledger row lock like a Postgres UPDATE would,
// so a concurrent writer waits and then sees the bumped version
func (t *fakeTx) UpdateLedgerIfVersion(ctx context.Context, ledger domain.BudgetLedger, expected int64) (bool, error) {
	key := ledgerKey(ledger.GameType, ledger.Day)
	t.acquire("ledger/" + key)

	t.store.mu.Lock()
	current := t.store.ledgers[key]
	t.store.mu.Unlock()
	if current.Version != expected {
		return false, nil
	}
	ledger.Version = expected + 1
	t.ledger = &ledger
	return true, nil
}
