package assessment

import "math"

// Partition assigns question indices to each axis.
type Partition map[Axis][]int

// DefaultPartition splits the questionnaire into quintiles.
func DefaultPartition() Partition {
	return Partition{
		AxisStructure:     {0, 1, 2, 3, 4},
		AxisCollaboration: {5, 6, 7, 8, 9},
		AxisScope:         {10, 11, 12, 13, 14},
		AxisTempo:         {15, 16, 17, 18, 19},
	}
}

// AxisOf returns the axis a question index belongs to.
func (p Partition) AxisOf(idx int) (Axis, bool) {
	for _, axis := range Axes {
		for _, q := range p[axis] {
			if q == idx {
				return axis, true
			}
		}
	}
	return "", false
}

// AggregateAxes computes the share of A answers per axis, scaled to 0-100.
// Axes with an empty group score 0.
func AggregateAxes(rv ResponseVector, p Partition) AxisScores {
	scores := make(AxisScores, len(Axes))
	for _, axis := range Axes {
		group := p[axis]
		if len(group) == 0 {
			scores[axis] = 0
			continue
		}
		sum := 0
		for _, idx := range group {
			if idx >= 0 && idx < QuestionCount {
				sum += rv[idx]
			}
		}
		scores[axis] = float64(sum) / float64(len(group)) * 100
	}
	return scores
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Rounded returns a copy with every score rounded to one decimal.
func (s AxisScores) Rounded() AxisScores {
	out := make(AxisScores, len(s))
	for k, v := range s {
		out[k] = Round1(v)
	}
	return out
}
