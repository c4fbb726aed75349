package metric

import "math"

// DiversityIndex is the Gini-Simpson index over the amenity counts of the
// nearby metrics, scaled to 0-100.
type DiversityIndex struct {
	inputs []string
}

// NewDiversityIndex creates the derived provider.
func NewDiversityIndex() *DiversityIndex {
	return &DiversityIndex{inputs: []string{KeySchools, KeyParks, KeyHospitals, KeyRestaurants, KeyParking}}
}

func (p *DiversityIndex) Name() string     { return KeyDiversityIndex }
func (p *DiversityIndex) Inputs() []string { return p.inputs }

func (p *DiversityIndex) Derive(values map[string]Value) Value {
	counts := make([]float64, 0, len(p.inputs))
	for _, key := range p.inputs {
		counts = append(counts, values[key].Numeric())
	}
	return Number(GiniSimpson(counts))
}

// GiniSimpson returns round(100 * (1 - sum(p_i^2))), or 0 for no observations.
func GiniSimpson(counts []float64) float64 {
	var total float64
	for _, c := range counts {
		if c > 0 {
			total += c
		}
	}
	if total == 0 {
		return 0
	}
	var sumSquares float64
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		share := c / total
		sumSquares += share * share
	}
	return math.Round(100 * (1 - sumSquares))
}

// PETScore blends green space and walkability into one 0-100 figure.
type PETScore struct{}

// NewPETScore creates the derived provider.
func NewPETScore() *PETScore {
	return &PETScore{}
}

func (p *PETScore) Name() string     { return KeyPETScore }
func (p *PETScore) Inputs() []string { return []string{KeyParks, KeyWalkability} }

func (p *PETScore) Derive(values map[string]Value) Value {
	parks := values[KeyParks].Numeric()
	walk := values[KeyWalkability].Numeric()
	return Number(math.Min(100, math.Round(parks*8+walk*0.5)))
}
