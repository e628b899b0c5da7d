package curve

import (
	"fmt"
	"math"

	"rateCurves/internal/domain"
)

// ValidateDefinition checks a definition for the problems the permissive
// path tolerates silently. It returns nil or a *ValidationError naming every
// issue found.
func ValidateDefinition(def *domain.CurveDefinition) error {
	if def == nil {
		return &ValidationError{Curve: "", Issues: []string{"definition is missing"}}
	}

	var issues []string
	if def.Name == "" {
		issues = append(issues, "name must be set")
	}
	if len(def.X) != len(def.Y) {
		issues = append(issues, fmt.Sprintf("x has %d nodes but y has %d", len(def.X), len(def.Y)))
	}
	for i, x := range def.X {
		if !isFinite(x) || x < domain.MinUtilization || x > domain.MaxUtilization {
			issues = append(issues, fmt.Sprintf("x[%d]=%g outside [0, 100]", i, x))
		}
		if i > 0 && x <= def.X[i-1] {
			issues = append(issues, fmt.Sprintf("x[%d]=%g does not increase", i, x))
		}
	}
	for i, y := range def.Y {
		if !isFinite(y) || y < 0 {
			issues = append(issues, fmt.Sprintf("y[%d]=%g must be a non-negative rate", i, y))
		}
	}
	if !isFinite(def.MaxRate) || def.MaxRate < 0 {
		issues = append(issues, fmt.Sprintf("max_rate=%g must be a non-negative rate", def.MaxRate))
	}
	if def.CurrentUtilization != nil {
		u := *def.CurrentUtilization
		if !isFinite(u) || u < domain.MinUtilization || u > domain.MaxUtilization {
			issues = append(issues, fmt.Sprintf("current_utilization=%g outside [0, 100]", u))
		}
	}
	if def.ProtocolFee != nil {
		if f := *def.ProtocolFee; !isFinite(f) || f < 0 {
			issues = append(issues, fmt.Sprintf("protocol_fee=%g must be non-negative", f))
		}
	}

	if len(issues) > 0 {
		return &ValidationError{Curve: def.Name, Issues: issues}
	}
	return nil
}

// ValidateRange rejects inverted or non-numeric windows. With strict set the
// bounds must also sit inside the utilization domain.
func ValidateRange(rng domain.Range, strict bool) error {
	if err := checkBounds(rng.Lower, rng.Upper); err != nil {
		return err
	}
	if strict && (rng.Lower < domain.MinUtilization || rng.Upper > domain.MaxUtilization) {
		return &InvalidRangeError{Lower: rng.Lower, Upper: rng.Upper, Reason: "bounds must be within [0, 100]"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
