package vm

import (
	"context"
	"testing"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New("empty", nil, nil)
	assert.ErrorIs(t, err, ErrNoSource)

	machine, err := New("ok", []byte(`x := 1`), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", machine.Name)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", machine.ID.String())
	assert.Equal(t, DefaultTimeout, machine.timeout)

	machine, err = New("cfg", []byte(`x := 1`), &Config{Timeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, time.Second, machine.timeout)
}

func TestCompile(t *testing.T) {
	machine, err := New("bad", []byte(`if {`), nil)
	require.NoError(t, err)
	err = machine.Compile()
	require.Error(t, err)
	var scriptErr Error
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, "Compile", scriptErr.Action)

	machine, err = New("good", []byte(`x := 1 + 1`), nil)
	require.NoError(t, err)
	require.NoError(t, machine.Compile())
	assert.NotNil(t, machine.Compiled)
}

func TestRunBar(t *testing.T) {
	machine, err := New("good", []byte(`x := 1 + 1`), nil)
	require.NoError(t, err)

	err = machine.RunBar(context.Background(), tengo.UndefinedValue)
	assert.ErrorIs(t, err, ErrNotCompiled)

	require.NoError(t, machine.Compile())
	assert.NoError(t, machine.RunBar(context.Background(), tengo.UndefinedValue))
	assert.NoError(t, machine.RunBar(nil, tengo.UndefinedValue))
}

func TestRunBarReadsContext(t *testing.T) {
	machine, err := New("ctxread", []byte(`v := ctx.value`), nil)
	require.NoError(t, err)
	require.NoError(t, machine.Compile())

	strategyCtx := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"value": &tengo.Int{Value: 42},
	}}
	assert.NoError(t, machine.RunBar(context.Background(), strategyCtx))
}

func TestRunBarRuntimeError(t *testing.T) {
	machine, err := New("boom", []byte(`x := ctx.value; y := x / ctx.zero`), nil)
	require.NoError(t, err)
	require.NoError(t, machine.Compile())

	strategyCtx := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"value": &tengo.Int{Value: 1},
		"zero":  &tengo.Int{Value: 0},
	}}
	err = machine.RunBar(context.Background(), strategyCtx)
	require.Error(t, err)
	var scriptErr Error
	require.ErrorAs(t, err, &scriptErr)
	assert.Equal(t, "RunBar", scriptErr.Action)
}

func TestRunBarTimeout(t *testing.T) {
	machine, err := New("spin", []byte(`for {}`), &Config{Timeout: 50 * time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, machine.Compile())

	start := time.Now()
	err = machine.RunBar(context.Background(), tengo.UndefinedValue)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRunBarIsolatesGlobals(t *testing.T) {
	// each invocation clones the pristine compiled unit, so a mutated
	// global never reaches the next run
	machine, err := New("iso", []byte(`x := ctx.value; x += 1`), nil)
	require.NoError(t, err)
	require.NoError(t, machine.Compile())

	for i := 0; i < 3; i++ {
		strategyCtx := &tengo.ImmutableMap{Value: map[string]tengo.Object{
			"value": &tengo.Int{Value: int64(i)},
		}}
		require.NoError(t, machine.RunBar(context.Background(), strategyCtx))
	}
	// the pristine unit still holds the placeholder context
	assert.NotNil(t, machine.Compiled)
}
