package scoring

import "math"

// Default weights. They need not sum to 1.
const (
	DefaultSkillWeight        = 0.4
	DefaultCertWeight         = 0.3
	DefaultLocationWeight     = 0.15
	DefaultAvailabilityWeight = 0.15
)

// Weights are the per-factor contributions of the additive score.
type Weights struct {
	Skill        float64 `json:"skill"`
	Cert         float64 `json:"cert"`
	Location     float64 `json:"location"`
	Availability float64 `json:"availability"`
}

// DefaultWeights returns the documented defaults.
func DefaultWeights() Weights {
	return Weights{
		Skill:        DefaultSkillWeight,
		Cert:         DefaultCertWeight,
		Location:     DefaultLocationWeight,
		Availability: DefaultAvailabilityWeight,
	}
}

// Validate rejects negative, NaN and infinite weights.
func (w Weights) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"skill", w.Skill},
		{"cert", w.Cert},
		{"location", w.Location},
		{"availability", w.Availability},
	} {
		if f.v < 0 || math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &ConfigurationError{Field: f.name, Value: f.v}
		}
	}
	return nil
}

// Max is the best achievable score.
func (w Weights) Max() float64 {
	return w.Skill + w.Cert + w.Location + w.Availability
}
