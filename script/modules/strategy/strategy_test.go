package strategy

import (
	"bytes"
	"testing"
	"time"

	objects "github.com/d5/tengo/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbox/quantbox/log"
	"github.com/quantbox/quantbox/marketdata"
)

type stubController struct {
	buys  []int64
	sells []int64
}

func (s *stubController) Buy(symbol string, quantity int64) bool {
	s.buys = append(s.buys, quantity)
	return true
}

func (s *stubController) Sell(symbol string, quantity int64) bool {
	s.sells = append(s.sells, quantity)
	return symbol == "AAPL"
}

func (s *stubController) Price(string) float64          { return 101.5 }
func (s *stubController) Position(string) int64         { return 7 }
func (s *stubController) SMA(_ string, p int) float64   { return float64(p) }
func (s *stubController) EMA(_ string, p int) float64   { return float64(p * 2) }
func (s *stubController) RSI(_ string, p int) float64   { return float64(p * 3) }
func (s *stubController) Cash() float64                 { return 250.25 }

func call(t *testing.T, ctx objects.Object, name string, args ...objects.Object) objects.Object {
	t.Helper()
	fn, err := ctx.IndexGet(&objects.String{Value: name})
	require.NoError(t, err)
	callable, ok := fn.(*objects.UserFunction)
	require.True(t, ok, "%s must be callable", name)
	res, err := callable.Value(args...)
	require.NoError(t, err)
	return res
}

func TestContextBindings(t *testing.T) {
	c := &stubController{}
	ctx := Context(c, "AAPL", "2024-01-02", nil)

	res := call(t, ctx, "buy", &objects.String{Value: "AAPL"}, &objects.Int{Value: 5})
	assert.Equal(t, objects.TrueValue, res)
	assert.Equal(t, []int64{5}, c.buys)

	res = call(t, ctx, "sell", &objects.String{Value: "MSFT"}, &objects.Int{Value: 2})
	assert.Equal(t, objects.FalseValue, res, "controller rejection propagates")
	assert.Equal(t, []int64{2}, c.sells)

	price := call(t, ctx, "price", &objects.String{Value: "AAPL"})
	assert.Equal(t, 101.5, price.(*objects.Float).Value)

	position := call(t, ctx, "position", &objects.String{Value: "AAPL"})
	assert.Equal(t, int64(7), position.(*objects.Int).Value)

	sma := call(t, ctx, "sma", &objects.String{Value: "AAPL"}, &objects.Int{Value: 20})
	assert.Equal(t, 20.0, sma.(*objects.Float).Value)

	cash := call(t, ctx, "cash")
	assert.Equal(t, 250.25, cash.(*objects.Float).Value)

	date, err := ctx.IndexGet(&objects.String{Value: "date"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", date.(*objects.String).Value)

	symbol, err := ctx.IndexGet(&objects.String{Value: "symbol"})
	require.NoError(t, err)
	assert.Equal(t, "AAPL", symbol.(*objects.String).Value)
}

func TestOrderPreconditions(t *testing.T) {
	var buf bytes.Buffer
	log.SetGlobalOutput(&buf)
	t.Cleanup(func() { log.SetGlobalOutput(nil) })

	c := &stubController{}
	ctx := Context(c, "AAPL", "2024-01-02", nil)

	// fractional shares rejected without reaching the controller
	res := call(t, ctx, "buy", &objects.String{Value: "AAPL"}, &objects.Float{Value: 2.5})
	assert.Equal(t, objects.FalseValue, res)
	assert.Empty(t, c.buys)
	assert.Contains(t, buf.String(), "AAPL buy rejected", "rejection must be visible in the log")
	assert.Contains(t, buf.String(), "2.5")

	buf.Reset()
	res = call(t, ctx, "buy", &objects.String{Value: "AAPL"}, &objects.Int{Value: 0})
	assert.Equal(t, objects.FalseValue, res)
	assert.Contains(t, buf.String(), "AAPL buy rejected")

	buf.Reset()
	res = call(t, ctx, "sell", &objects.String{Value: "AAPL"}, &objects.Int{Value: -3})
	assert.Equal(t, objects.FalseValue, res)
	assert.Contains(t, buf.String(), "AAPL sell rejected")
	assert.Empty(t, c.buys)
	assert.Empty(t, c.sells)
}

func TestOrderArgumentCount(t *testing.T) {
	c := &stubController{}
	ctx := Context(c, "AAPL", "2024-01-02", nil)

	fn, err := ctx.IndexGet(&objects.String{Value: "buy"})
	require.NoError(t, err)
	_, err = fn.(*objects.UserFunction).Value(&objects.String{Value: "AAPL"})
	assert.ErrorIs(t, err, objects.ErrWrongNumArguments)
}

func TestBarMap(t *testing.T) {
	bar := marketdata.Bar{
		Symbol: "AAPL",
		Date:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Open:   100,
		High:   106,
		Low:    99,
		Close:  105,
		Volume: 123456,
	}
	m := BarMap(bar)

	closeVal, err := m.IndexGet(&objects.String{Value: "close"})
	require.NoError(t, err)
	assert.Equal(t, 105.0, closeVal.(*objects.Float).Value)

	dateVal, err := m.IndexGet(&objects.String{Value: "date"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", dateVal.(*objects.String).Value)

	volumeVal, err := m.IndexGet(&objects.String{Value: "volume"})
	require.NoError(t, err)
	assert.Equal(t, int64(123456), volumeVal.(*objects.Int).Value)

	// the map is immutable from script code
	err = m.(*objects.ImmutableMap).IndexSet(&objects.String{Value: "close"}, &objects.Float{Value: 1})
	assert.Error(t, err)
}
