package scoring

import (
	"iter"
	"slices"
	"strings"
)

// MatchSignals returns the signals that contain at least one token as a
// substring, in signal order. The match is deliberately permissive: a short
// token such as "ai" also hits "mail". tokens is consumed once.
func MatchSignals(signals []string, tokens iter.Seq[string]) []string {
	collected := slices.Collect(tokens)
	matched := make([]string, 0, len(signals))
	for _, signal := range signals {
		for _, token := range collected {
			if strings.Contains(signal, token) {
				matched = append(matched, signal)
				break
			}
		}
	}
	return matched
}

// Coverage is the matched share of a niche's skill signals. A niche without
// signals has no credibility signal and scores 0.
func Coverage(matched, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(matched) / float64(total)
}
