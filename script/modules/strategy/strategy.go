// Package strategy assembles the capability object a running simulation
// injects into strategy scripts. The object is rebuilt every bar and is the
// only surface a script can reach.
package strategy

import (
	"fmt"

	objects "github.com/d5/tengo/v2"

	"github.com/quantbox/quantbox/log"
	"github.com/quantbox/quantbox/marketdata"
)

// ErrParameterConvertFailed error to display when parameter conversion fails
const ErrParameterConvertFailed = "%v failed conversion"

// Controller is the restricted capability surface one simulation step
// exposes to a script; implementations close over the current bar so order
// fills always use that bar's closing price.
type Controller interface {
	Buy(symbol string, quantity int64) bool
	Sell(symbol string, quantity int64) bool
	Price(symbol string) float64
	Position(symbol string) int64
	SMA(symbol string, period int) float64
	EMA(symbol string, period int) float64
	RSI(symbol string, period int) float64
	Cash() float64
}

// Context builds the immutable context object for one bar. bars must hold
// the history up to and including today, oldest first.
func Context(c Controller, symbol, date string, bars []objects.Object) objects.Object {
	return &objects.ImmutableMap{Value: map[string]objects.Object{
		"buy":      &objects.UserFunction{Name: "buy", Value: orderFunc("buy", c.Buy)},
		"sell":     &objects.UserFunction{Name: "sell", Value: orderFunc("sell", c.Sell)},
		"price":    &objects.UserFunction{Name: "price", Value: symbolFloatFunc(c.Price)},
		"position": &objects.UserFunction{Name: "position", Value: positionFunc(c)},
		"sma":      &objects.UserFunction{Name: "sma", Value: windowFunc(c.SMA)},
		"ema":      &objects.UserFunction{Name: "ema", Value: windowFunc(c.EMA)},
		"rsi":      &objects.UserFunction{Name: "rsi", Value: windowFunc(c.RSI)},
		"cash":     &objects.UserFunction{Name: "cash", Value: cashFunc(c)},
		"symbol":   &objects.String{Value: symbol},
		"date":     &objects.String{Value: date},
		"bars":     &objects.ImmutableArray{Value: bars},
	}}
}

// BarMap converts a bar into the immutable map form scripts receive in
// ctx.bars
func BarMap(b marketdata.Bar) objects.Object {
	return &objects.ImmutableMap{Value: map[string]objects.Object{
		"symbol": &objects.String{Value: b.Symbol},
		"date":   &objects.String{Value: b.Date.Format(marketdata.DateFormat)},
		"open":   &objects.Float{Value: b.Open},
		"high":   &objects.Float{Value: b.High},
		"low":    &objects.Float{Value: b.Low},
		"close":  &objects.Float{Value: b.Close},
		"volume": &objects.Int{Value: b.Volume},
	}}
}

func orderFunc(name string, order func(string, int64) bool) objects.CallableFunc {
	return func(args ...objects.Object) (objects.Object, error) {
		if len(args) != 2 {
			return nil, objects.ErrWrongNumArguments
		}
		symbol, ok := objects.ToString(args[0])
		if !ok {
			return nil, fmt.Errorf(ErrParameterConvertFailed, args[0])
		}
		// Quantities are whole shares; a float or non-positive value is a
		// caller precondition violation and rejects the order.
		quantity, ok := args[1].(*objects.Int)
		if !ok || quantity.Value <= 0 {
			log.Warnf(log.PortfolioMgr, "%s %s rejected: quantity must be a positive whole number, got %s",
				symbol, name, args[1].String())
			return objects.FalseValue, nil
		}
		if order(symbol, quantity.Value) {
			return objects.TrueValue, nil
		}
		return objects.FalseValue, nil
	}
}

func symbolFloatFunc(f func(string) float64) objects.CallableFunc {
	return func(args ...objects.Object) (objects.Object, error) {
		if len(args) != 1 {
			return nil, objects.ErrWrongNumArguments
		}
		symbol, ok := objects.ToString(args[0])
		if !ok {
			return nil, fmt.Errorf(ErrParameterConvertFailed, args[0])
		}
		return &objects.Float{Value: f(symbol)}, nil
	}
}

func positionFunc(c Controller) objects.CallableFunc {
	return func(args ...objects.Object) (objects.Object, error) {
		if len(args) != 1 {
			return nil, objects.ErrWrongNumArguments
		}
		symbol, ok := objects.ToString(args[0])
		if !ok {
			return nil, fmt.Errorf(ErrParameterConvertFailed, args[0])
		}
		return &objects.Int{Value: c.Position(symbol)}, nil
	}
}

func windowFunc(f func(string, int) float64) objects.CallableFunc {
	return func(args ...objects.Object) (objects.Object, error) {
		if len(args) != 2 {
			return nil, objects.ErrWrongNumArguments
		}
		symbol, ok := objects.ToString(args[0])
		if !ok {
			return nil, fmt.Errorf(ErrParameterConvertFailed, args[0])
		}
		period, ok := objects.ToInt(args[1])
		if !ok {
			return nil, fmt.Errorf(ErrParameterConvertFailed, args[1])
		}
		return &objects.Float{Value: f(symbol, period)}, nil
	}
}

func cashFunc(c Controller) objects.CallableFunc {
	return func(args ...objects.Object) (objects.Object, error) {
		if len(args) != 0 {
			return nil, objects.ErrWrongNumArguments
		}
		return &objects.Float{Value: c.Cash()}, nil
	}
}
