package relevance

const (
	baseScore = 40
	maxScore  = 100

	pointsPerGeneralHit = 2  // positive + activity vocabularies
	pointsPerTargetHit  = 3  // mood + reason vocabularies
	generalListCap      = 20 // cap on each general list's total contribution
)

// Scorable is the minimal view of content the scorer needs.
type Scorable interface {
	// SearchText returns the lower-cased title+body text to match against.
	SearchText() string
}

// Score computes the advisory relevance score of a piece of content for the
// given canonical mood and reason tokens. The result is always in [0,100] and
// is deterministic for identical text and vocabularies. The score orders
// display; it never excludes an item.
func Score(content Scorable, moodToken, reasonToken string) int {
	text := content.SearchText()
	score := baseScore

	score += cappedContribution(countMatches(text, positiveKeywords))
	score += cappedContribution(countMatches(text, activityKeywords))

	if moodToken != "" {
		if kws, ok := moodKeywords[moodToken]; ok {
			score += countMatches(text, kws) * pointsPerTargetHit
		}
	}
	if reasonToken != "" {
		if kws, ok := reasonKeywords[reasonToken]; ok {
			score += countMatches(text, kws) * pointsPerTargetHit
		}
	}

	if score > maxScore {
		score = maxScore
	}
	return score
}

func cappedContribution(hits int) int {
	pts := hits * pointsPerGeneralHit
	if pts > generalListCap {
		return generalListCap
	}
	return pts
}
