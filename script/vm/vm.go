// Package vm executes user supplied strategy scripts inside a tengo virtual
// machine. A script can reach nothing of the host beyond the injected
// context variable.
package vm

import (
	"context"
	"errors"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/gofrs/uuid"

	"github.com/quantbox/quantbox/log"
)

var (
	// ErrNoSource is returned when a VM is created without script source
	ErrNoSource = errors.New("no script source supplied")
	// ErrNotCompiled is returned when a VM is invoked before Compile
	ErrNotCompiled = errors.New("script has not been compiled")
)

// New returns a VM loaded with the supplied script source. Imports are
// limited to the tengo math module and file imports stay disabled.
func New(name string, source []byte, cfg *Config) (*VM, error) {
	if len(source) == 0 {
		return nil, Error{Action: "New", Script: name, Cause: ErrNoSource}
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	timeout := DefaultTimeout
	var verbose bool
	if cfg != nil {
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
		verbose = cfg.Verbose
	}

	s := tengo.NewScript(source)
	s.SetImports(stdlib.GetModuleMap("math"))
	if err := s.Add(ContextVariable, tengo.UndefinedValue); err != nil {
		return nil, Error{Action: "New: Add", Script: name, Cause: err}
	}

	machine := &VM{
		ID:      id,
		Name:    name,
		Script:  s,
		timeout: timeout,
		verbose: verbose,
	}
	if verbose {
		log.Debugf(log.ScriptMgr, "New strategy VM created for script %s ID: %v", name, id)
	}
	return machine, nil
}

// Compile compiles the loaded script to byte code. A compilation failure is
// fatal for the whole run.
func (vm *VM) Compile() error {
	compiled, err := vm.Script.Compile()
	if err != nil {
		return Error{Action: "Compile", Script: vm.Name, Cause: err}
	}
	vm.Compiled = compiled
	return nil
}

// RunBar invokes the compiled script once against strategyCtx. Every
// invocation starts from a clone of the pristine compiled unit, so script
// globals cannot carry state from one bar to the next.
func (vm *VM) RunBar(ctx context.Context, strategyCtx tengo.Object) error {
	if vm.Compiled == nil {
		return Error{Action: "RunBar", Script: vm.Name, Cause: ErrNotCompiled}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	c := vm.Compiled.Clone()
	if err := c.Set(ContextVariable, strategyCtx); err != nil {
		return Error{Action: "RunBar: Set", Script: vm.Name, Cause: err}
	}

	runCtx, cancel := context.WithTimeout(ctx, vm.timeout)
	defer cancel()

	if vm.verbose {
		log.Debugf(log.ScriptMgr, "Running script: %s ID: %v", vm.Name, vm.ID)
	}
	if err := c.RunContext(runCtx); err != nil {
		return Error{Action: "RunBar", Script: vm.Name, Cause: err}
	}
	return nil
}
