// Package strategy persists user authored scripts so they can be reused
// across backtest runs.
package strategy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/volatiletech/null"

	"github.com/quantbox/quantbox/database"
)

// NewRepository wraps a connected database instance
func NewRepository(db *database.Instance) (*Repository, error) {
	if !db.IsConnected() {
		return nil, database.ErrNilInstance
	}
	return &Repository{db: db}, nil
}

func validate(name, code string) error {
	if name == "" {
		return errNameInvalid
	}
	if code == "" {
		return errCodeInvalid
	}
	return nil
}

// Insert saves a new strategy and returns it with its assigned id
func (r *Repository) Insert(ctx context.Context, name string, description null.String, code string) (*Strategy, error) {
	if err := validate(name, code); err != nil {
		return nil, err
	}

	var id int64
	if r.db.Driver() == database.DBPostgres {
		query := r.db.Rebind(`INSERT INTO strategies (name, description, code) VALUES (?, ?, ?) RETURNING id`)
		if err := r.db.SQL.QueryRowContext(ctx, query, name, description, code).Scan(&id); err != nil {
			return nil, fmt.Errorf("strategy insert failed: %w", err)
		}
	} else {
		res, err := r.db.SQL.ExecContext(ctx,
			`INSERT INTO strategies (name, description, code) VALUES (?, ?, ?)`,
			name, description, code)
		if err != nil {
			return nil, fmt.Errorf("strategy insert failed: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// List returns all saved strategies, most recently updated first
func (r *Repository) List(ctx context.Context) ([]Strategy, error) {
	rows, err := r.db.SQL.QueryContext(ctx,
		`SELECT id, name, description, code, created_at, updated_at
		 FROM strategies ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var strategies []Strategy
	for rows.Next() {
		var s Strategy
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Code, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		strategies = append(strategies, s)
	}
	return strategies, rows.Err()
}

// GetByID returns a single strategy or ErrStrategyNotFound
func (r *Repository) GetByID(ctx context.Context, id int64) (*Strategy, error) {
	query := r.db.Rebind(`SELECT id, name, description, code, created_at, updated_at
		 FROM strategies WHERE id = ?`)
	var s Strategy
	err := r.db.SQL.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.Name, &s.Description, &s.Code, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStrategyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update replaces a strategy's fields and bumps its updated_at stamp
func (r *Repository) Update(ctx context.Context, id int64, name string, description null.String, code string) (*Strategy, error) {
	if err := validate(name, code); err != nil {
		return nil, err
	}
	query := r.db.Rebind(`UPDATE strategies
		 SET name = ?, description = ?, code = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`)
	res, err := r.db.SQL.ExecContext(ctx, query, name, description, code, id)
	if err != nil {
		return nil, fmt.Errorf("strategy update failed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrStrategyNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a strategy, cascading to its saved backtests
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM strategies WHERE id = ?`)
	res, err := r.db.SQL.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStrategyNotFound
	}
	return nil
}
