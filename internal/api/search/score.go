package search

import "strings"

// RelevanceScore rates how well a candidate name answers a user query, as an
// integer 0-100. An exact case-insensitive match scores 100; otherwise token
// overlap, prefix/containment of the full query and a close length are each
// worth partial credit, capped at 100.
func RelevanceScore(name, query string) int {
	loweredName := strings.ToLower(strings.TrimSpace(name))
	loweredQuery := strings.ToLower(strings.TrimSpace(query))
	if loweredName == loweredQuery {
		return 100
	}

	score := 0
	nameTokens := strings.Fields(loweredName)
	queryTokens := strings.Fields(loweredQuery)

	for _, qt := range queryTokens {
		for _, nt := range nameTokens {
			switch {
			case qt == nt:
				score += 40
			case len(qt) > 2 && strings.Contains(nt, qt):
				score += 20
			case len(nt) > 2 && strings.Contains(qt, nt):
				score += 15
			}
		}
	}

	if strings.HasPrefix(loweredName, loweredQuery) {
		score += 35
	} else if strings.Contains(loweredName, loweredQuery) {
		score += 25
	}

	diff := len(loweredName) - len(loweredQuery)
	if diff < 0 {
		diff = -diff
	}
	if diff <= 3 {
		score += 15
	}

	if score > 100 {
		score = 100
	}
	return score
}
