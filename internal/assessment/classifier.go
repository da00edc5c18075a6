package assessment

import (
	"fmt"
	"math"
	"sort"
)

// Classify ranks every archetype centroid against the axis scores and derives
// primary, secondary, margin and confidence tier.
func Classify(scores AxisScores, m *ScoringModel) (Classification, error) {
	for _, axis := range Axes {
		if _, ok := scores[axis]; !ok {
			return Classification{}, fmt.Errorf("%w: missing axis %q", ErrInvalidInput, axis)
		}
	}

	matches := make([]Match, 0, len(Archetypes))
	for _, a := range Archetypes {
		centroid, ok := m.Centroids[a]
		if !ok {
			continue
		}
		matches = append(matches, matchCentroid(a, scores, centroid, m))
	}
	if len(matches) < 2 {
		return Classification{}, fmt.Errorf("%w: model defines %d centroids", ErrInvalidModel, len(matches))
	}

	ranked := make([]Match, len(matches))
	copy(ranked, matches)
	// Stable sort keeps declared order on ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	primary, secondary := ranked[0], ranked[1]
	margin := (primary.Score - secondary.Score) / 100

	c := Classification{
		Primary:    primary.Archetype,
		Secondary:  secondary.Archetype,
		Margin:     margin,
		Confidence: ConfidenceFor(margin, m.Thresholds),
		Matches:    matches,
	}
	if c.Confidence == ConfidenceLow {
		c.Hybrid = fmt.Sprintf("%s-%s", c.Primary, c.Secondary)
	}
	return c, nil
}

// matchCentroid scores one centroid. Under both metrics Score is a 0-100
// closeness, so the score gap divided by 100 is the margin: the similarity
// gap for euclidean and d_secondary - d_primary for weighted.
func matchCentroid(a Archetype, scores, centroid AxisScores, m *ScoringModel) Match {
	switch m.Metric {
	case MetricWeighted:
		sum := 0.0
		for _, axis := range Axes {
			diff := (scores[axis] - centroid[axis]) / 100
			sum += m.Weights[axis] * diff * diff
		}
		d := math.Sqrt(sum)
		return Match{Archetype: a, Score: (1 - d) * 100, Distance: d}
	default:
		sum := 0.0
		for _, axis := range Axes {
			diff := scores[axis] - centroid[axis]
			sum += diff * diff
		}
		d := math.Sqrt(sum)
		return Match{Archetype: a, Score: math.Max(0, 100-d/m.EuclideanScale()*100), Distance: d}
	}
}

// ConfidenceFor maps a margin onto a confidence tier.
func ConfidenceFor(margin float64, t Thresholds) Confidence {
	switch {
	case margin >= t.High:
		return ConfidenceHigh
	case margin >= t.Medium:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
