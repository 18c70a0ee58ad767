package data

import (
	"math"
	"math/rand"
	"time"
)

// synthPriceProvider implements PriceProvider with a generated random walk
// so the screener can run without network access or API keys.
type synthPriceProvider struct {
	rng       *rand.Rand
	secondary PriceProvider
}

// NewSyntheticProvider constructs a synthetic price provider. A zero seed
// seeds from the clock.
func NewSyntheticProvider(seed int64) *synthPriceProvider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &synthPriceProvider{rng: rand.New(rand.NewSource(seed))}
}

func (synthProv *synthPriceProvider) Secondary() PriceProvider {
	return synthProv.secondary
}

// GetDailyCloses generates roughly 100 weekdays of closes ending today,
// matching the compact window of the live provider.
func (synthProv *synthPriceProvider) GetDailyCloses(symbol string) (PriceSeries, error) {
	price := 20.0 + synthProv.rng.Float64()*300.0
	vol := 0.05 + synthProv.rng.Float64()*0.45 // annualized, 5%-50%
	daily := vol / math.Sqrt(252.0)

	end := time.Now().UTC().Truncate(24 * time.Hour)
	cur := end.AddDate(0, 0, -140)

	var out PriceSeries
	for !cur.After(end) {
		if cur.Weekday() != time.Saturday && cur.Weekday() != time.Sunday {
			price *= math.Exp(synthProv.rng.NormFloat64() * daily)
			out = append(out, ClosePoint{Date: cur, Close: price})
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return out, nil
}
