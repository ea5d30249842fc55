// Package strategies ships ready-made example scripts users can load,
// tweak and run without writing one from scratch.
package strategies

// Example is a bundled strategy script
type Example struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Code        string `json:"code"`
}

// Examples returns the bundled strategy scripts. Each invests the whole
// cash balance when it enters and exits the full position, so results
// across examples are directly comparable.
func Examples() []Example {
	return []Example{
		{
			Name:        "Moving Average Crossover",
			Description: "Buys when the 10 day average crosses above the 30 day average, sells when it crosses back below",
			Code: `run := func() {
	fast := ctx.sma(ctx.symbol, 10)
	slow := ctx.sma(ctx.symbol, 30)
	if fast == 0 || slow == 0 {
		return
	}
	if fast > slow && ctx.position(ctx.symbol) == 0 {
		qty := int(ctx.cash() / ctx.price(ctx.symbol))
		if qty > 0 {
			ctx.buy(ctx.symbol, qty)
		}
	} else if fast < slow && ctx.position(ctx.symbol) > 0 {
		ctx.sell(ctx.symbol, ctx.position(ctx.symbol))
	}
}
run()
`,
		},
		{
			Name:        "Buy and Hold",
			Description: "Invests the full balance on the first bar and never trades again",
			Code: `run := func() {
	if ctx.position(ctx.symbol) > 0 {
		return
	}
	qty := int(ctx.cash() / ctx.price(ctx.symbol))
	if qty > 0 {
		ctx.buy(ctx.symbol, qty)
	}
}
run()
`,
		},
		{
			Name:        "Momentum Trading",
			Description: "Buys strength when the 14 day RSI pushes above 60, exits when momentum fades below 40",
			Code: `run := func() {
	momentum := ctx.rsi(ctx.symbol, 14)
	if momentum == 0 {
		return
	}
	if momentum > 60 && ctx.position(ctx.symbol) == 0 {
		qty := int(ctx.cash() / ctx.price(ctx.symbol))
		if qty > 0 {
			ctx.buy(ctx.symbol, qty)
		}
	} else if momentum < 40 && ctx.position(ctx.symbol) > 0 {
		ctx.sell(ctx.symbol, ctx.position(ctx.symbol))
	}
}
run()
`,
		},
		{
			Name:        "Mean Reversion",
			Description: "Buys dips more than 3% under the 20 day average and sells once price recovers to it",
			Code: `run := func() {
	avg := ctx.sma(ctx.symbol, 20)
	if avg == 0 {
		return
	}
	price := ctx.price(ctx.symbol)
	if price < avg*0.97 && ctx.position(ctx.symbol) == 0 {
		qty := int(ctx.cash() / price)
		if qty > 0 {
			ctx.buy(ctx.symbol, qty)
		}
	} else if price >= avg && ctx.position(ctx.symbol) > 0 {
		ctx.sell(ctx.symbol, ctx.position(ctx.symbol))
	}
}
run()
`,
		},
		{
			Name:        "Breakout",
			Description: "Buys a close above the prior 20 day high and exits below the 10 day average",
			Code: `run := func() {
	n := len(ctx.bars)
	if n < 21 {
		return
	}
	high := 0.0
	for i := n - 21; i < n-1; i++ {
		if ctx.bars[i].close > high {
			high = ctx.bars[i].close
		}
	}
	price := ctx.price(ctx.symbol)
	if price > high && ctx.position(ctx.symbol) == 0 {
		qty := int(ctx.cash() / price)
		if qty > 0 {
			ctx.buy(ctx.symbol, qty)
		}
	} else if ctx.position(ctx.symbol) > 0 && price < ctx.sma(ctx.symbol, 10) {
		ctx.sell(ctx.symbol, ctx.position(ctx.symbol))
	}
}
run()
`,
		},
	}
}
