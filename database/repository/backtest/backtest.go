// Package backtest persists finished simulation runs alongside their
// full trade ledgers.
package backtest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quantbox/quantbox/database"
	"github.com/quantbox/quantbox/marketdata"
	"github.com/quantbox/quantbox/portfolio"
)

// NewRepository wraps a connected database instance
func NewRepository(db *database.Instance) (*Repository, error) {
	if !db.IsConnected() {
		return nil, database.ErrNilInstance
	}
	return &Repository{db: db}, nil
}

// InsertRun saves a run and its trades in one transaction and returns
// the assigned run id
func (r *Repository) InsertRun(ctx context.Context, run *Run) (int64, error) {
	if run == nil {
		return 0, errNilRun
	}

	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	insertRun := `INSERT INTO backtests
		(strategy_id, symbol, initial_capital, start_date, end_date,
		 final_value, total_return, max_drawdown, sharpe_ratio,
		 total_trades, winning_trades, losing_trades)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	args := []any{
		run.StrategyID,
		run.Symbol,
		run.InitialCapital,
		run.StartDate.Format(marketdata.DateFormat),
		run.EndDate.Format(marketdata.DateFormat),
		run.FinalValue,
		run.TotalReturn,
		run.MaxDrawdown,
		run.SharpeRatio,
		run.TotalTrades,
		run.WinningTrades,
		run.LosingTrades,
	}
	if r.db.Driver() == database.DBPostgres {
		err = tx.QueryRowContext(ctx, r.db.Rebind(insertRun+" RETURNING id"), args...).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("backtest insert failed: %w", err)
		}
	} else {
		res, execErr := tx.ExecContext(ctx, insertRun, args...)
		if execErr != nil {
			return 0, fmt.Errorf("backtest insert failed: %w", execErr)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return 0, err
		}
	}

	insertTrade := r.db.Rebind(`INSERT INTO backtest_trades
		(backtest_id, date, symbol, action, quantity, price, total, portfolio_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	for x := range run.Trades {
		t := &run.Trades[x]
		_, err = tx.ExecContext(ctx, insertTrade,
			id,
			t.Date.Format(marketdata.DateFormat),
			t.Symbol,
			string(t.Side),
			t.Quantity,
			t.Price,
			t.Total,
			t.PortfolioValue)
		if err != nil {
			return 0, fmt.Errorf("trade insert failed: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID returns a saved run with its trade ledger, or ErrRunNotFound
func (r *Repository) GetByID(ctx context.Context, id int64) (*Run, error) {
	query := r.db.Rebind(`SELECT id, strategy_id, symbol, initial_capital,
		 start_date, end_date, final_value, total_return, max_drawdown,
		 sharpe_ratio, total_trades, winning_trades, losing_trades, created_at
		 FROM backtests WHERE id = ?`)
	var run Run
	err := r.db.SQL.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.StrategyID, &run.Symbol, &run.InitialCapital,
		&run.StartDate, &run.EndDate, &run.FinalValue, &run.TotalReturn,
		&run.MaxDrawdown, &run.SharpeRatio, &run.TotalTrades,
		&run.WinningTrades, &run.LosingTrades, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	run.Trades, err = r.trades(ctx, id)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *Repository) trades(ctx context.Context, runID int64) ([]portfolio.Trade, error) {
	query := r.db.Rebind(`SELECT date, symbol, action, quantity, price, total, portfolio_value
		 FROM backtest_trades WHERE backtest_id = ? ORDER BY id ASC`)
	rows, err := r.db.SQL.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []portfolio.Trade
	for rows.Next() {
		var t portfolio.Trade
		var side string
		if err := rows.Scan(&t.Date, &t.Symbol, &side, &t.Quantity, &t.Price, &t.Total, &t.PortfolioValue); err != nil {
			return nil, err
		}
		t.Side = portfolio.Side(side)
		t.SequenceID = int64(len(trades) + 1)
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// ListByStrategy returns run summaries for one strategy, newest first.
// Trade ledgers are not loaded.
func (r *Repository) ListByStrategy(ctx context.Context, strategyID int64) ([]Run, error) {
	query := r.db.Rebind(`SELECT id, strategy_id, symbol, initial_capital,
		 start_date, end_date, final_value, total_return, max_drawdown,
		 sharpe_ratio, total_trades, winning_trades, losing_trades, created_at
		 FROM backtests WHERE strategy_id = ? ORDER BY created_at DESC, id DESC`)
	rows, err := r.db.SQL.QueryContext(ctx, query, strategyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID, &run.StrategyID, &run.Symbol, &run.InitialCapital,
			&run.StartDate, &run.EndDate, &run.FinalValue, &run.TotalReturn,
			&run.MaxDrawdown, &run.SharpeRatio, &run.TotalTrades,
			&run.WinningTrades, &run.LosingTrades, &run.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
