package metric

import (
	"context"
	"math"

	"neighborhood_insights/platform/logger"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const rentGranularity = 10

// HousingCost reports the average rent of a two-bedroom apartment. When the
// source fails it falls back to the last value it fetched for the place.
type HousingCost struct {
	source RentSource
	store  *LastKnownGood
	label  string
	log    *logger.Logger
}

// NewHousingCost creates the provider. A nil store gets a private one.
func NewHousingCost(source RentSource, store *LastKnownGood, log *logger.Logger) *HousingCost {
	if store == nil {
		store = NewLastKnownGood()
	}
	return &HousingCost{source: source, store: store, log: log}
}

func (p *HousingCost) Name() string { return KeyAverageRent }

func (p *HousingCost) Measure(ctx context.Context, in Input) (Value, error) {
	rent, err := p.source.Rent(ctx, in.Place)
	if err == nil {
		rounded := RoundRent(rent)
		p.store.Store(in.Place, rounded)
		return Text(FormatRent(rounded) + p.label), nil
	}

	if last, ok := p.store.Load(in.Place); ok {
		p.log.WithContext(ctx).Debug("housing fetch failed, using last known good", "place", in.Place, "error", err)
		return Text(FormatRent(last) + p.label), nil
	}
	return Value{}, err
}

// RoundRent rounds to the nearest $10.
func RoundRent(v float64) float64 {
	return math.Round(v/rentGranularity) * rentGranularity
}

// FormatRent renders whole dollars with thousands separators, e.g. $2,000.
func FormatRent(v float64) string {
	return message.NewPrinter(language.English).Sprintf("$%d", int64(math.Round(v)))
}
