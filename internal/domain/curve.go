package domain

// CurveDefinition is a sparse borrow-rate curve as it appears in a catalog.
type CurveDefinition struct {
	Name               string    `json:"name"`                          // Catalog identifier, also used in labels
	Token              string    `json:"token,omitempty"`               // Optional asset symbol (e.g., "USDC")
	X                  []float64 `json:"x"`                             // Utilization nodes in percent
	Y                  []float64 `json:"y"`                             // Rate at each node in percent
	MaxRate            float64   `json:"max_rate"`                      // Rate at 100% utilization
	CurrentUtilization *float64  `json:"current_utilization,omitempty"` // Optional live utilization marker
	ProtocolFee        *float64  `json:"protocol_fee,omitempty"`        // Optional surcharge in percent of the borrow rate
}

// NodeCount returns how many x/y pairs are usable.
func (d *CurveDefinition) NodeCount() int {
	return min(len(d.X), len(d.Y))
}

// HasCurrentUtilization reports whether a utilization marker is configured.
func (d *CurveDefinition) HasCurrentUtilization() bool {
	return d.CurrentUtilization != nil
}

// Fee returns the protocol fee, or zero when none is set.
func (d *CurveDefinition) Fee() float64 {
	if d.ProtocolFee == nil {
		return 0
	}
	return *d.ProtocolFee
}

// Range is a closed utilization window [Lower, Upper] in percent.
type Range struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width returns Upper - Lower.
func (r Range) Width() float64 {
	return r.Upper - r.Lower
}

// RenderedCurve is one chart series ready for a charting tool.
type RenderedCurve struct {
	Label       string        `json:"label"`
	Curve       string        `json:"curve"` // Name of the source CurveDefinition
	Kind        CurveKind     `json:"kind"`
	Data        PointSequence `json:"data"`
	Color       string        `json:"color"`
	StrokeWidth float64       `json:"stroke_width"`
}

// Marker is a single highlighted point overlaid on a series.
type Marker struct {
	Label string    `json:"label"`
	Curve string    `json:"curve"`
	Kind  CurveKind `json:"kind"`
	Point Point     `json:"point"`
	Color string    `json:"color"`
}
