package metric

import (
	"context"
	"fmt"
)

// CrimeLevel maps a crime rate onto a coarse category.
type CrimeLevel struct {
	source CrimeSource
	label  string
}

// NewCrimeLevel creates the provider.
func NewCrimeLevel(source CrimeSource) *CrimeLevel {
	return &CrimeLevel{source: source}
}

func (p *CrimeLevel) Name() string { return KeyCrimeLevel }

func (p *CrimeLevel) Measure(ctx context.Context, in Input) (Value, error) {
	rate, err := p.source.CrimeRate(ctx, in.Place)
	if err != nil {
		return Value{}, err
	}
	return Text(fmt.Sprintf("%s (%.1f per 1,000)%s", CrimeCategory(rate), rate, p.label)), nil
}

// CrimeCategory buckets incidents per 1,000 residents.
func CrimeCategory(rate float64) string {
	switch {
	case rate < 20:
		return "Low"
	case rate < 40:
		return "Moderate"
	case rate < 60:
		return "High"
	default:
		return "Very High"
	}
}
