package app

import (
	"context"
	"testing"
	"time"

	"tradeStats/internal/domain"
	"tradeStats/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImportService_Validation(t *testing.T) {
	_, err := NewImportService(&mockLogger{}, nil, &mockOrderRepo{}, nil)
	assert.Error(t, err)
}

func TestImportService_Import(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)

	existing := &domain.Order{ExternalID: "1", Symbol: "ETHUSDT", Side: domain.Buy, Quantity: 1, Price: 10, Status: domain.StatusFilled, Time: start}
	repo := &mockOrderRepo{orders: []*domain.Order{existing}}
	source := &mockSource{orders: map[string][]*domain.Order{
		"ETHUSDT": {
			{ExternalID: "1", Symbol: "ETHUSDT", Side: domain.Buy, Quantity: 1, Price: 10, Status: domain.StatusFilled, Time: start},
			{ExternalID: "2", Symbol: "ETHUSDT", Side: domain.Sell, Quantity: 1, Price: 12, Status: domain.StatusFilled, Time: start.Add(time.Hour)},
		},
		"BTCUSDT": {
			{Symbol: "BTCUSDT", Side: domain.Buy, Quantity: 1, Price: 100, Status: domain.StatusPending, Time: start},
		},
	}}
	rec := &mockRecorder{}
	logger := &mockLogger{}

	svc, err := NewImportService(logger, source, repo, rec)
	require.NoError(t, err)

	results, err := svc.Import(context.Background(), []string{"ETHUSDT", "BTCUSDT", "SOLUSDT"}, start, end)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, ImportResult{Symbol: "ETHUSDT", Fetched: 2, Stored: 1, Skipped: 1}, results[0])
	assert.Equal(t, ImportResult{Symbol: "BTCUSDT", Fetched: 1, Stored: 1}, results[1])
	assert.Equal(t, ImportResult{Symbol: "SOLUSDT"}, results[2])

	require.Len(t, repo.saved, 2)
	assert.Equal(t, "2", repo.saved[0].ExternalID)
	assert.Equal(t, [2]int{2, 1}, rec.imports["ETHUSDT"])
	assert.Len(t, logger.infoMsgs, 3)
}

func TestImportService_Errors(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	t.Run("ping fails", func(t *testing.T) {
		svc, err := NewImportService(&mockLogger{}, &mockSource{pingErr: ports.ErrConnectionFailed}, &mockOrderRepo{}, nil)
		require.NoError(t, err)
		_, err = svc.Import(context.Background(), []string{"ETHUSDT"}, start, end)
		assert.ErrorIs(t, err, ports.ErrConnectionFailed)
	})

	t.Run("list fails", func(t *testing.T) {
		logger := &mockLogger{}
		svc, err := NewImportService(logger, &mockSource{listErr: ports.ErrRateLimited}, &mockOrderRepo{}, nil)
		require.NoError(t, err)
		results, err := svc.Import(context.Background(), []string{"ETHUSDT"}, start, end)
		assert.ErrorIs(t, err, ports.ErrRateLimited)
		assert.Empty(t, results)
		assert.Len(t, logger.errorMsgs, 1)
	})

	t.Run("save fails", func(t *testing.T) {
		source := &mockSource{orders: map[string][]*domain.Order{
			"ETHUSDT": {{ExternalID: "9", Symbol: "ETHUSDT", Side: domain.Buy, Quantity: 1, Price: 1, Status: domain.StatusFilled, Time: start}},
		}}
		svc, err := NewImportService(&mockLogger{}, source, &mockOrderRepo{saveErr: ports.ErrDuplicateEntry}, nil)
		require.NoError(t, err)
		_, err = svc.Import(context.Background(), []string{"ETHUSDT"}, start, end)
		assert.ErrorIs(t, err, ports.ErrDuplicateEntry)
	})
}
