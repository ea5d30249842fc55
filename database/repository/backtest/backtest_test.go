package backtest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"

	"github.com/quantbox/quantbox/database"
	"github.com/quantbox/quantbox/database/repository/strategy"
	"github.com/quantbox/quantbox/portfolio"
)

func testRepository(t *testing.T) (*Repository, *database.Instance) {
	t.Helper()
	db, err := database.Connect(&database.Config{
		Enabled: true,
		Driver:  database.DBSQLite3,
		DSN:     ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.CloseConnection() })
	require.NoError(t, db.Setup(context.Background()))

	r, err := NewRepository(db)
	require.NoError(t, err)
	return r, db
}

func testRun(strategyID null.Int64) *Run {
	d := func(day int) time.Time {
		return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
	}
	return &Run{
		StrategyID:     strategyID,
		Symbol:         "AAPL",
		InitialCapital: 1000,
		StartDate:      d(2),
		EndDate:        d(4),
		FinalValue:     975,
		TotalReturn:    -2.5,
		MaxDrawdown:    4.878048780487805,
		SharpeRatio:    -1.2,
		TotalTrades:    2,
		WinningTrades:  0,
		LosingTrades:   1,
		Trades: []portfolio.Trade{
			{SequenceID: 1, Date: d(2), Symbol: "AAPL", Side: portfolio.Buy, Quantity: 5, Price: 100, Total: 500, PortfolioValue: 1000},
			{SequenceID: 2, Date: d(4), Symbol: "AAPL", Side: portfolio.Sell, Quantity: 5, Price: 95, Total: 475, PortfolioValue: 975},
		},
	}
}

func TestNewRepository(t *testing.T) {
	_, err := NewRepository(&database.Instance{})
	assert.ErrorIs(t, err, database.ErrNilInstance)
}

func TestInsertRun(t *testing.T) {
	r, _ := testRepository(t)
	ctx := context.Background()

	_, err := r.InsertRun(ctx, nil)
	assert.ErrorIs(t, err, errNilRun)

	id, err := r.InsertRun(ctx, testRun(null.Int64{}))
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, 1000.0, got.InitialCapital)
	assert.Equal(t, -2.5, got.TotalReturn)
	assert.False(t, got.StrategyID.Valid, "ad-hoc run carries no strategy id")
	assert.Equal(t, "2024-01-02", got.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2024-01-04", got.EndDate.Format("2006-01-02"))

	require.Len(t, got.Trades, 2)
	assert.Equal(t, portfolio.Buy, got.Trades[0].Side)
	assert.Equal(t, int64(5), got.Trades[0].Quantity)
	assert.Equal(t, 100.0, got.Trades[0].Price)
	assert.Equal(t, portfolio.Sell, got.Trades[1].Side)
	assert.Equal(t, 975.0, got.Trades[1].PortfolioValue)
}

func TestGetByIDNotFound(t *testing.T) {
	r, _ := testRepository(t)
	_, err := r.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListByStrategy(t *testing.T) {
	r, db := testRepository(t)
	ctx := context.Background()

	strategies, err := strategy.NewRepository(db)
	require.NoError(t, err)
	saved, err := strategies.Insert(ctx, "Buy and Hold", null.String{}, "ctx.buy(\"AAPL\", 1)")
	require.NoError(t, err)

	runs, err := r.ListByStrategy(ctx, saved.ID)
	require.NoError(t, err)
	assert.Empty(t, runs)

	first, err := r.InsertRun(ctx, testRun(null.Int64From(saved.ID)))
	require.NoError(t, err)
	second, err := r.InsertRun(ctx, testRun(null.Int64From(saved.ID)))
	require.NoError(t, err)
	_, err = r.InsertRun(ctx, testRun(null.Int64{}))
	require.NoError(t, err)

	runs, err = r.ListByStrategy(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, first, runs[1].ID)
	assert.Empty(t, runs[0].Trades, "summaries omit the ledger")

	// deleting the strategy cascades to its runs
	require.NoError(t, strategies.Delete(ctx, saved.ID))
	runs, err = r.ListByStrategy(ctx, saved.ID)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
