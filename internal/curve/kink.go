package curve

import (
	"fmt"

	"rateCurves/internal/domain"
)

// KinkModel is the two-slope borrow rate model common to lending markets.
//
// Parameters are decimals: a 2% base rate is 0.02 and an 80% kink is 0.8.
// Below the kink the rate grows by Slope1 per unit of utilization; above it
// by Slope2.
type KinkModel struct {
	BaseRate float64
	Slope1   float64
	Slope2   float64
	Kink     float64
}

// DefaultKinkModel is a modest base rate with a steep jump past 80% utilization.
var DefaultKinkModel = KinkModel{BaseRate: 0.02, Slope1: 0.15, Slope2: 0.6, Kink: 0.8}

// BorrowRate returns the model's borrow rate, in percent, at a utilization
// given in percent.
func (m KinkModel) BorrowRate(utilization float64) float64 {
	u := utilization / 100
	if u < 0 {
		u = 0
	}
	if !m.hasKink() || u <= m.Kink {
		return (m.BaseRate + m.Slope1*u) * 100
	}
	return (m.BaseRate + m.Slope1*m.Kink + m.Slope2*(u-m.Kink)) * 100
}

// Definition expresses the model as catalog nodes. A zero base rate adds no
// node at 0% since BuildPoints anchors there already.
func (m KinkModel) Definition(name string) *domain.CurveDefinition {
	def := &domain.CurveDefinition{
		Name:    name,
		MaxRate: m.BorrowRate(domain.MaxUtilization),
	}
	if m.BaseRate != 0 {
		def.X = append(def.X, domain.MinUtilization)
		def.Y = append(def.Y, m.BorrowRate(domain.MinUtilization))
	}
	if m.hasKink() {
		k := m.Kink * 100
		def.X = append(def.X, k)
		def.Y = append(def.Y, m.BorrowRate(k))
	}
	return def
}

// Validate rejects parameter sets that produce a meaningless curve.
func (m KinkModel) Validate() error {
	switch {
	case m.BaseRate < 0:
		return fmt.Errorf("base rate %g must be non-negative", m.BaseRate)
	case m.Slope1 < 0 || m.Slope2 < 0:
		return fmt.Errorf("slopes (%g, %g) must be non-negative", m.Slope1, m.Slope2)
	case m.Kink < 0 || m.Kink > 1:
		return fmt.Errorf("kink %g must be within [0, 1]", m.Kink)
	}
	return nil
}

func (m KinkModel) hasKink() bool {
	return m.Kink > 0 && m.Kink < 1
}
