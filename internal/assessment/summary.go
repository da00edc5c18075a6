package assessment

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Summarize renders the one-line profile summary shown with the result.
func Summarize(p Profile, lib *ContentLibrary) string {
	c := p.Classification
	var b strings.Builder

	if c.Hybrid != "" {
		fmt.Fprintf(&b, "%s-%s hybrid", lib.DisplayName(c.Primary), lib.DisplayName(c.Secondary))
	} else {
		fmt.Fprintf(&b, "%s: %s", lib.DisplayName(c.Primary), p.Tagline)
	}
	fmt.Fprintf(&b, " (%s confidence). ", c.Confidence)

	e := p.Estimate
	fmt.Fprintf(&b, "About %.1f hours lost per person each week", e.HoursLostPPW)
	if e.TeamMultiplier > 1 {
		fmt.Fprintf(&b, ", %.1f across a %s team", e.HoursTeam, e.Context.TeamSize)
	}
	fmt.Fprintf(&b, ", roughly $%s per year.", formatDollars(e.AnnualCost))

	return b.String()
}

// formatDollars renders a whole-dollar amount with thousands separators.
func formatDollars(v float64) string {
	s := strconv.FormatInt(int64(math.Round(v)), 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var out []byte
	for i := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
