package assessment

import "math"

// ArchetypeMix splits 100 percentage points proportionally to the match
// scores. The rounding residual goes to the primary so the mix always sums
// to exactly 100.
func ArchetypeMix(matches []Match, primary Archetype) Mix {
	mix := make(Mix, len(matches))
	if len(matches) == 0 {
		return mix
	}

	total := 0.0
	for _, m := range matches {
		total += math.Max(0, m.Score)
	}

	assigned := 0
	for _, m := range matches {
		var pct int
		if total > 0 {
			pct = int(math.Round(math.Max(0, m.Score) / total * 100))
		} else {
			pct = 100 / len(matches)
		}
		mix[m.Archetype] = pct
		assigned += pct
	}

	if _, ok := mix[primary]; !ok {
		primary = matches[0].Archetype
	}
	mix[primary] += 100 - assigned

	return mix
}
