package relevance

import "decathlonminds/internal/core"

// minFilterResults is the result size below which the filter relaxes to the
// next pass.
const minFilterResults = 5

// filterPass is one predicate-strength level. Passes are evaluated strictest
// first and each one always runs over the original unfiltered list: relaxation
// widens from scratch, it does not re-filter the previous pass's output.
type filterPass func(text string, emotionKws, reasonKws []string) bool

func strictPass(text string, emotionKws, reasonKws []string) bool {
	if !matchesAny(text, activityKeywords) {
		return false
	}
	if !matchesAny(text, emotionKws) {
		return false
	}
	if reasonKws != nil && !matchesAny(text, reasonKws) {
		return false
	}
	return true
}

func relaxedPass(text string, emotionKws, reasonKws []string) bool {
	if !matchesAny(text, activityKeywords) {
		return false
	}
	return matchesAny(text, emotionKws) || (reasonKws != nil && matchesAny(text, reasonKws))
}

func minimalPass(text string, emotionKws, reasonKws []string) bool {
	return matchesAny(text, activityKeywords)
}

// Filter narrows candidate articles to those matching the mood and reason
// criteria, relaxing in three passes until at least minFilterResults survive.
// The strict pass demands an emotion keyword, a physical-activity keyword and
// (when a reason is set) a reason keyword; the relaxed pass demands activity
// plus either of the others; the minimal pass demands activity alone. The
// result of the first pass yielding enough items is returned; if even the
// minimal pass comes up short its (possibly small) result is returned as is.
func Filter(articles []core.Article, moodToken, reasonToken string) []core.Article {
	// The mood's vocabulary, or the generic positive list when no mood is set.
	emotionKws := moodKeywords[moodToken]
	if emotionKws == nil {
		emotionKws = positiveKeywords
	}
	var reasonKws []string
	if reasonToken != "" {
		reasonKws = reasonKeywords[reasonToken]
	}

	passes := []filterPass{strictPass, relaxedPass, minimalPass}

	var result []core.Article
	for _, pass := range passes {
		result = applyPass(articles, pass, emotionKws, reasonKws)
		if len(result) >= minFilterResults {
			return result
		}
	}
	return result
}

func applyPass(articles []core.Article, pass filterPass, emotionKws, reasonKws []string) []core.Article {
	kept := make([]core.Article, 0, len(articles))
	for _, a := range articles {
		if pass(a.SearchText(), emotionKws, reasonKws) {
			kept = append(kept, a)
		}
	}
	return kept
}
