package strategy

import (
	"errors"
	"time"

	"github.com/volatiletech/null"

	"github.com/quantbox/quantbox/database"
)

var (
	// ErrStrategyNotFound is returned when the requested strategy id does
	// not exist
	ErrStrategyNotFound = errors.New("strategy not found")

	errNameInvalid = errors.New("strategy name must be set")
	errCodeInvalid = errors.New("strategy code must be set")
)

// Strategy is a saved script with its metadata
type Strategy struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	Code        string      `json:"code"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Repository provides CRUD access to saved strategies
type Repository struct {
	db *database.Instance
}
