package domain

import "sort"

// Point is a single (utilization %, rate %) sample.
type Point struct {
	X float64 `json:"x"` // Utilization in percent
	Y float64 `json:"y"` // Rate in percent
}

// PointSequence is an ordered run of samples. Consumers that need ascending x
// sort a copy; the sequence itself carries no ordering guarantee.
type PointSequence []Point

// Clone returns a copy that can be reordered without touching the receiver.
func (s PointSequence) Clone() PointSequence {
	if s == nil {
		return nil
	}
	out := make(PointSequence, len(s))
	copy(out, s)
	return out
}

// Sorted returns a copy ordered by ascending x. Ties keep their original order.
func (s PointSequence) Sorted() PointSequence {
	out := s.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].X < out[j].X
	})
	return out
}

// HasX reports whether any sample sits exactly at x.
func (s PointSequence) HasX(x float64) bool {
	for _, p := range s {
		if p.X == x {
			return true
		}
	}
	return false
}

// Span returns the smallest and largest x in the sequence. ok is false for an
// empty sequence.
func (s PointSequence) Span() (lo, hi float64, ok bool) {
	if len(s) == 0 {
		return 0, 0, false
	}
	lo, hi = s[0].X, s[0].X
	for _, p := range s[1:] {
		if p.X < lo {
			lo = p.X
		}
		if p.X > hi {
			hi = p.X
		}
	}
	return lo, hi, true
}

// First and Last return the boundary samples. Both panic on an empty sequence.
func (s PointSequence) First() Point { return s[0] }
func (s PointSequence) Last() Point  { return s[len(s)-1] }
