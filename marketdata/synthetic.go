package marketdata

import (
	"context"
	"math"
	"math/rand"
	"time"
)

const (
	syntheticBasePrice  = 150.0
	syntheticFloorPrice = 50.0
)

// Synthetic generates a plausible random-walk daily series, used as a
// fallback when no remote provider is configured and as a test fixture source
type Synthetic struct {
	// Seed fixes the generator for reproducible series; zero seeds from the
	// clock
	Seed int64
}

// Fetch generates weekday bars across [start, end] following a random walk
// with a slight upward drift
func (s *Synthetic) Fetch(_ context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var bars []Bar
	price := syntheticBasePrice
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}

		change := (rng.Float64() - 0.48) * 5
		price = math.Max(price+change, syntheticFloorPrice)

		open := price + (rng.Float64()-0.5)*2
		closePrice := price + (rng.Float64()-0.5)*2
		high := math.Max(open, closePrice) + rng.Float64()*3
		low := math.Min(open, closePrice) - rng.Float64()*3
		volume := int64(50000000 + rng.Float64()*50000000)

		bars = append(bars, Bar{
			Symbol: symbol,
			Date:   d,
			Open:   roundPrice(open),
			High:   roundPrice(high),
			Low:    roundPrice(low),
			Close:  roundPrice(closePrice),
			Volume: volume,
		})
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	return bars, nil
}

// Ping always succeeds; the generator has no remote dependency
func (s *Synthetic) Ping(_ context.Context) error {
	return nil
}

func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
