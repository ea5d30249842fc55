package vm

import (
	"time"

	"github.com/d5/tengo/v2"
	"github.com/gofrs/uuid"
)

const (
	// ContextVariable is the only global injected into strategy scripts;
	// everything a strategy may touch hangs off it
	ContextVariable = "ctx"

	// DefaultTimeout bounds a single per-bar invocation as a defensive
	// measure against runaway scripts
	DefaultTimeout = 30 * time.Second
)

// Config holds user configurable script execution settings
type Config struct {
	Timeout time.Duration `json:"timeout"`
	Verbose bool          `json:"verbose"`
}

// VM wraps a single strategy script: parsed source, plus the pristine
// compiled unit every bar invocation is cloned from
type VM struct {
	ID       uuid.UUID
	Name     string
	Script   *tengo.Script
	Compiled *tengo.Compiled
	timeout  time.Duration
	verbose  bool
}

// Error holds a scripting error with the action and script that produced it
type Error struct {
	Action string
	Script string
	Cause  error
}
