package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tradeStats/internal/domain"
	"tradeStats/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

// setupTestDB creates a temporary database for testing
func setupTestDB(t *testing.T) (*Repository, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "trade-stats-test-*")
	require.NoError(t, err)

	repo, err := NewRepository(Config{
		DBPath: filepath.Join(tmpDir, "test.db"),
		Logger: &mockLogger{},
	})
	require.NoError(t, err)

	cleanup := func() {
		repo.Close()
		os.RemoveAll(tmpDir)
	}
	return repo, cleanup
}

var t0 = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func TestNewRepository_RequiresLogger(t *testing.T) {
	_, err := NewRepository(Config{DBPath: filepath.Join(t.TempDir(), "x.db")})
	assert.Error(t, err)
}

func TestRepository_SaveAndFindOrders(t *testing.T) {
	tests := []struct {
		name  string
		order *domain.Order
	}{
		{
			name: "filled sell with execution price",
			order: &domain.Order{
				ExternalID:     "1001",
				Symbol:         "ETHUSDT",
				Side:           domain.Sell,
				Quantity:       1.5,
				Price:          2000.0,
				ExecutionPrice: domain.Float64(2001.25),
				Status:         domain.StatusFilled,
				Time:           t0,
			},
		},
		{
			name: "pending buy without execution price or external id",
			order: &domain.Order{
				Symbol:   "BTCUSDT",
				Side:     domain.Buy,
				Quantity: 0.1,
				Price:    40000.0,
				Status:   domain.StatusPending,
				Time:     t0.Add(time.Minute),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cleanup := setupTestDB(t)
			defer cleanup()
			ctx := context.Background()

			id, err := repo.SaveOrder(ctx, tt.order)
			require.NoError(t, err)
			assert.Greater(t, id, int64(0))
			assert.Equal(t, id, tt.order.ID)

			found, err := repo.FindBySymbol(ctx, tt.order.Symbol)
			require.NoError(t, err)
			require.Len(t, found, 1)

			got := found[0]
			assert.Equal(t, id, got.ID)
			assert.Equal(t, tt.order.ExternalID, got.ExternalID)
			assert.Equal(t, tt.order.Side, got.Side)
			assert.Equal(t, tt.order.Quantity, got.Quantity)
			assert.Equal(t, tt.order.Price, got.Price)
			assert.Equal(t, tt.order.ExecutionPrice, got.ExecutionPrice)
			assert.Equal(t, tt.order.Status, got.Status)
			assert.True(t, tt.order.Time.Equal(got.Time), "time mismatch: %v vs %v", tt.order.Time, got.Time)
		})
	}
}

func TestRepository_SaveOrdersAndQueries(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	orders := []*domain.Order{
		{Symbol: "ETHUSDT", Side: domain.Buy, Quantity: 1, Price: 10, Status: domain.StatusFilled, Time: t0.Add(2 * time.Hour)},
		{Symbol: "BTCUSDT", Side: domain.Buy, Quantity: 1, Price: 20, Status: domain.StatusFilled, Time: t0},
		{Symbol: "ETHUSDT", Side: domain.Sell, Quantity: 1, Price: 12, Status: domain.StatusFilled, Time: t0.Add(3 * time.Hour)},
	}
	require.NoError(t, repo.SaveOrders(ctx, orders))
	for _, o := range orders {
		assert.Greater(t, o.ID, int64(0))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "BTCUSDT", all[0].Symbol)
	assert.Equal(t, domain.Sell, all[2].Side)

	since, err := repo.FindSince(ctx, t0.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, since, 2)
	for _, o := range since {
		assert.Equal(t, "ETHUSDT", o.Symbol)
	}

	none, err := repo.FindBySymbol(ctx, "SOLUSDT")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_DuplicateExternalID(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	first := &domain.Order{ExternalID: "42", Symbol: "ETHUSDT", Side: domain.Buy, Quantity: 1, Price: 10, Status: domain.StatusFilled, Time: t0}
	_, err := repo.SaveOrder(ctx, first)
	require.NoError(t, err)

	exists, err := repo.ExistsByExternalID(ctx, "42")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByExternalID(ctx, "43")
	require.NoError(t, err)
	assert.False(t, exists)

	dup := *first
	dup.ID = 0
	_, err = repo.SaveOrder(ctx, &dup)
	assert.ErrorIs(t, err, ports.ErrDuplicateEntry)

	// A batch containing a duplicate is rolled back entirely.
	batch := []*domain.Order{
		{ExternalID: "50", Symbol: "ETHUSDT", Side: domain.Buy, Quantity: 1, Price: 10, Status: domain.StatusFilled, Time: t0},
		{ExternalID: "42", Symbol: "ETHUSDT", Side: domain.Buy, Quantity: 1, Price: 10, Status: domain.StatusFilled, Time: t0},
	}
	err = repo.SaveOrders(ctx, batch)
	assert.ErrorIs(t, err, ports.ErrDuplicateEntry)

	exists, err = repo.ExistsByExternalID(ctx, "50")
	require.NoError(t, err)
	assert.False(t, exists)
}
