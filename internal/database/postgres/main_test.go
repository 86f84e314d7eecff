package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/PrizeGrid_Go/internal/database"
	"github.com/osse101/PrizeGrid_Go/internal/domain"
	"github.com/osse101/PrizeGrid_Go/internal/event"
	"github.com/osse101/PrizeGrid_Go/migrations"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testPool, terminate = setupDatabase(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

// setupDatabase starts postgres and applies the embedded migrations.
// A nil pool means docker is unavailable and integration tests skip.
func setupDatabase(ctx context.Context) (pool *pgxpool.Pool, terminate func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupDatabase: %v\n", r)
			pool = nil
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return nil, nil
	}
	terminate = func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		return nil, terminate
	}

	pool, err = database.NewPool(ctx, connStr, database.PoolConfig{MaxConns: 20, MaxConnIdleTime: time.Minute, MaxConnLifetime: 5 * time.Minute})
	if err != nil {
		fmt.Printf("WARNING: Failed to connect: %v\n", err)
		return nil, terminate
	}
	if err := database.Migrate(ctx, pool, migrations.FS); err != nil {
		fmt.Printf("WARNING: Failed to migrate: %v\n", err)
		pool.Close()
		return nil, terminate
	}
	return pool, terminate
}

func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
}

// fixtureGame creates an isolated game type so tests never share ledger rows
type fixtureGame struct {
	Game  domain.GameType
	Cash  domain.Item
	Prize domain.Item
	Items []domain.Item
}

func newFixtureGame(t *testing.T, price, pct string) fixtureGame {
	t.Helper()
	ctx := context.Background()

	g := domain.GameType{
		ID:             "it-" + uuid.NewString()[:8],
		Name:           "Integration grid",
		Price:          decimal.RequireFromString(price),
		Active:         true,
		CapMultiplier:  decimal.NewFromInt(10),
		PrizeBudgetPct: decimal.RequireFromString(pct),
	}
	_, err := testPool.Exec(ctx,
		`INSERT INTO game_types (game_type_id, display_name, price, active, cap_multiplier, prize_budget_pct) VALUES ($1, $2, $3, TRUE, $4, $5)`,
		g.ID, g.Name, numeric(g.Price), numeric(g.CapMultiplier), numeric(g.PrizeBudgetPct))
	require.NoError(t, err)

	f := fixtureGame{Game: g}
	specs := []struct {
		name     string
		value    string
		category domain.ItemCategory
		weight   float64
	}{
		{"cash 1", "1.00", domain.CategoryCash, 10},
		{"headphones", "1.50", domain.CategoryPhysical, 1},
		{"filler a", "0.50", domain.CategoryCash, 0},
		{"filler b", "2.00", domain.CategoryCash, 0},
		{"filler c", "5.00", domain.CategoryCash, 0},
		{"filler d", "20.00", domain.CategoryCash, 0},
		{"filler e", "50.00", domain.CategoryCash, 0},
	}
	for _, s := range specs {
		item := domain.Item{Name: s.name, Rarity: domain.RarityCommon, Value: decimal.RequireFromString(s.value), Category: s.category}
		err := testPool.QueryRow(ctx,
			`INSERT INTO items (name, rarity, value, category) VALUES ($1, $2, $3, $4) RETURNING item_id`,
			item.Name, string(item.Rarity), numeric(item.Value), string(item.Category)).Scan(&item.ID)
		require.NoError(t, err)
		_, err = testPool.Exec(ctx,
			`INSERT INTO game_type_items (game_type_id, item_id, weight, active) VALUES ($1, $2, $3, TRUE)`,
			g.ID, item.ID, s.weight)
		require.NoError(t, err)
		f.Items = append(f.Items, item)
	}
	f.Cash = f.Items[0]
	f.Prize = f.Items[1]
	return f
}

// fundWallet creates a wallet holding balance for a fresh user
func fundWallet(t *testing.T, balance string) string {
	t.Helper()
	userID := "user-" + uuid.NewString()
	_, err := testPool.Exec(context.Background(),
		`INSERT INTO wallets (user_id, balance) VALUES ($1, $2)`, userID, numeric(decimal.RequireFromString(balance)))
	require.NoError(t, err)
	return userID
}

// nopPublisher drops events; the integration tests assert on stored state
type nopPublisher struct{}

func (nopPublisher) PublishWithRetry(context.Context, event.Event) {}

func uuidFor(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewRandom()
	require.NoError(t, err)
	return id
}

func containsAlert(alerts []domain.AuditAlert, id uuid.UUID) bool {
	for _, a := range alerts {
		if a.ID == id {
			return true
		}
	}
	return false
}
