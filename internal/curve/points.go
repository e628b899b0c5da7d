package curve

import "rateCurves/internal/domain"

// BuildPoints turns a sparse definition into a point sequence anchored at
// (0, 0) and (100, MaxRate). Anchors are added even when the nodes already
// cover 0 or 100, so duplicate x values are expected downstream. Unpaired
// trailing nodes are dropped and nothing is validated.
func BuildPoints(def *domain.CurveDefinition) domain.PointSequence {
	if def == nil {
		return domain.PointSequence{
			{X: domain.MinUtilization, Y: 0},
			{X: domain.MaxUtilization, Y: 0},
		}
	}

	n := def.NodeCount()
	points := make(domain.PointSequence, 0, n+2)
	points = append(points, domain.Point{X: domain.MinUtilization, Y: 0})
	for i := 0; i < n; i++ {
		points = append(points, domain.Point{X: def.X[i], Y: def.Y[i]})
	}
	points = append(points, domain.Point{X: domain.MaxUtilization, Y: def.MaxRate})
	return points
}
