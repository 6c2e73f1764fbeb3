package model

import "math"

// Game distances, in world units.
const (
	RangeAdjacent  = 166.0
	RangeNearby    = 252.0
	RangeArea      = 322.0
	RangeEarshot   = 1012.0
	RangeSpellcast = 1248.0
	RangeSpirit    = 2500.0
	RangeCompass   = 3500.0
)

// Distance returns the euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// DistanceTo returns the distance between two agents.
func (a Agent) DistanceTo(b Agent) float64 {
	return Distance(a.X, a.Y, b.X, b.Y)
}
