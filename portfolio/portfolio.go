// Package portfolio implements the cash and position ledger a backtest run
// mutates through order fills
package portfolio

import "time"

// New returns a portfolio ledger seeded with initial cash
func New(initialCapital float64) (*Portfolio, error) {
	if initialCapital <= 0 {
		return nil, ErrInitialCapitalInvalid
	}
	return &Portfolio{
		cash:      initialCapital,
		positions: make(map[string]Position),
	}, nil
}

// Cash returns available funds
func (p *Portfolio) Cash() float64 {
	return p.cash
}

// Position returns the holding for symbol; a zero value means flat
func (p *Portfolio) Position(symbol string) Position {
	return p.positions[symbol]
}

// Holdings returns a copy of all open positions keyed by symbol
func (p *Portfolio) Holdings() map[string]Position {
	out := make(map[string]Position, len(p.positions))
	for symbol, pos := range p.positions {
		out[symbol] = pos
	}
	return out
}

// Trades returns the ordered trade log recorded so far
func (p *Portfolio) Trades() []Trade {
	out := make([]Trade, len(p.trades))
	copy(out, p.trades)
	return out
}

// Value marks every open position at markPrice and adds cash
func (p *Portfolio) Value(markPrice float64) float64 {
	value := p.cash
	for _, pos := range p.positions {
		value += float64(pos.Quantity) * markPrice
	}
	return value
}

// Buy debits cash for quantity shares at price, re-weights the position's
// average cost and appends a BUY trade. The fill is atomic; a rejection
// leaves the ledger untouched.
func (p *Portfolio) Buy(symbol string, quantity int64, price float64, date time.Time) (Trade, error) {
	if quantity <= 0 {
		return Trade{}, ErrInvalidQuantity
	}
	if price <= 0 {
		return Trade{}, ErrInvalidPrice
	}

	cost := float64(quantity) * price
	if cost > p.cash {
		return Trade{}, ErrInsufficientFunds
	}

	p.cash -= cost
	pos := p.positions[symbol]
	totalQuantity := pos.Quantity + quantity
	pos.AverageCost = (float64(pos.Quantity)*pos.AverageCost + cost) / float64(totalQuantity)
	pos.Quantity = totalQuantity
	p.positions[symbol] = pos

	return p.recordTrade(symbol, Buy, quantity, price, cost, date), nil
}

// Sell credits cash for quantity shares at price and decrements the
// position, removing it entirely when it reaches zero. Average cost is
// unaffected by disposals.
func (p *Portfolio) Sell(symbol string, quantity int64, price float64, date time.Time) (Trade, error) {
	if quantity <= 0 {
		return Trade{}, ErrInvalidQuantity
	}
	if price <= 0 {
		return Trade{}, ErrInvalidPrice
	}

	pos, ok := p.positions[symbol]
	if !ok || pos.Quantity < quantity {
		return Trade{}, ErrInsufficientHoldings
	}

	revenue := float64(quantity) * price
	p.cash += revenue
	if pos.Quantity == quantity {
		delete(p.positions, symbol)
	} else {
		pos.Quantity -= quantity
		p.positions[symbol] = pos
	}

	return p.recordTrade(symbol, Sell, quantity, price, revenue, date), nil
}

func (p *Portfolio) recordTrade(symbol string, side Side, quantity int64, price, total float64, date time.Time) Trade {
	trade := Trade{
		SequenceID:     int64(len(p.trades) + 1),
		Date:           date,
		Symbol:         symbol,
		Side:           side,
		Quantity:       quantity,
		Price:          price,
		Total:          total,
		PortfolioValue: p.Value(price),
	}
	p.trades = append(p.trades, trade)
	return trade
}
