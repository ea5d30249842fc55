package strategies

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbox/quantbox/backtest"
	"github.com/quantbox/quantbox/marketdata"
	"github.com/quantbox/quantbox/portfolio"
	"github.com/quantbox/quantbox/script/vm"
)

func TestExamplesCompile(t *testing.T) {
	examples := Examples()
	require.Len(t, examples, 5)

	for _, example := range examples {
		example := example
		t.Run(example.Name, func(t *testing.T) {
			assert.NotEmpty(t, example.Description)
			machine, err := vm.New(example.Name, []byte(example.Code), nil)
			require.NoError(t, err)
			assert.NoError(t, machine.Compile())
		})
	}
}

func exampleByName(t *testing.T, name string) Example {
	t.Helper()
	for _, example := range Examples() {
		if example.Name == name {
			return example
		}
	}
	t.Fatalf("no example named %q", name)
	return Example{}
}

func syntheticBars(t *testing.T) []marketdata.Bar {
	t.Helper()
	provider := &marketdata.Synthetic{Seed: 7}
	bars, err := provider.Fetch(context.Background(), "AAPL",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotEmpty(t, bars)
	return bars
}

func TestBuyAndHoldRun(t *testing.T) {
	example := exampleByName(t, "Buy and Hold")
	result, err := backtest.Run(context.Background(), &backtest.Settings{
		Symbol:         "AAPL",
		InitialCapital: 10000,
		StrategyName:   example.Name,
		StrategySource: example.Code,
	}, syntheticBars(t))
	require.NoError(t, err)

	require.Len(t, result.Trades, 1, "buys once and holds")
	assert.Equal(t, portfolio.Buy, result.Trades[0].Side)
	assert.Equal(t, 1, result.Metrics.TotalTrades)
}

func TestExamplesRunCleanly(t *testing.T) {
	bars := syntheticBars(t)
	for _, example := range Examples() {
		example := example
		t.Run(example.Name, func(t *testing.T) {
			result, err := backtest.Run(context.Background(), &backtest.Settings{
				Symbol:         "AAPL",
				InitialCapital: 10000,
				StrategyName:   example.Name,
				StrategySource: example.Code,
			}, bars)
			require.NoError(t, err)
			assert.Len(t, result.EquityCurve, len(bars))
			// an example never sells short or overspends
			for _, point := range result.EquityCurve {
				assert.Positive(t, point.Value)
			}
		})
	}
}
