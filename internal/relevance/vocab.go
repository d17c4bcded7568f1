// Package relevance scores and filters candidate content against the user's
// mood and stated cause, using fixed keyword vocabularies over lower-cased
// title+body text.
package relevance

import "strings"

// positiveKeywords is the fixed "encouraging" vocabulary. Matching any of
// these nudges the score up regardless of mood.
var positiveKeywords = []string{
	"bienfait", "bien-être", "bonheur", "motivation", "plaisir", "progrès",
	"réussite", "santé", "énergie", "positif", "optimisme", "sérénité",
	"confiance", "amélioration", "équilibre",
	"benefit", "wellbeing", "well-being", "happiness", "improve", "boost",
	"positive", "healthy", "balance", "confidence",
}

// activityKeywords is the fixed physical-activity vocabulary.
var activityKeywords = []string{
	"marche", "marcher", "course", "courir", "jogging", "randonnée",
	"exercice", "activité physique", "sport", "mouvement", "plein air",
	"promenade", "pas quotidiens",
	"walk", "walking", "run", "running", "hike", "exercise",
	"physical activity", "movement", "steps", "outdoor",
}

// moodKeywords maps canonical mood tokens to the vocabulary that signals
// content relevant to that mood.
var moodKeywords = map[string][]string{
	"HAPPY":     {"joie", "bonheur", "heureux", "sourire", "partager", "joy", "happy", "smile", "celebrate"},
	"SAD":       {"tristesse", "moral", "réconfort", "douceur", "soutien", "sad", "comfort", "mood", "support"},
	"STRESSED":  {"stress", "détente", "relaxation", "respiration", "pression", "relax", "breathing", "unwind"},
	"ANXIOUS":   {"anxiété", "angoisse", "apaiser", "calme", "rassurer", "anxiety", "calming", "soothe", "ease"},
	"TIRED":     {"fatigue", "sommeil", "repos", "récupération", "vitalité", "sleep", "rest", "recovery", "energy"},
	"ANGRY":     {"colère", "tension", "défouler", "apaisement", "anger", "tension", "release", "cool down"},
	"EXCITED":   {"enthousiasme", "défi", "aventure", "découverte", "excitement", "challenge", "adventure", "explore"},
	"CALM":      {"calme", "sérénité", "paisible", "méditation", "calm", "serenity", "peaceful", "mindfulness"},
	"LONELY":    {"solitude", "lien social", "groupe", "ensemble", "rencontre", "social", "together", "community", "connect"},
	"MOTIVATED": {"objectif", "défi", "dépassement", "persévérance", "goal", "achievement", "progress", "milestone"},
}

// reasonKeywords maps canonical reason tokens to their vocabulary.
var reasonKeywords = map[string][]string{
	"WORK":         {"travail", "bureau", "pause", "burnout", "charge mentale", "work", "office", "break", "workload"},
	"FAMILY":       {"famille", "proches", "enfants", "parents", "family", "children", "loved ones"},
	"HEALTH":       {"santé", "maladie", "prévention", "médecin", "health", "illness", "prevention", "doctor"},
	"FATIGUE":      {"fatigue", "épuisement", "sommeil", "repos", "exhaustion", "sleep", "rest"},
	"SOLITUDE":     {"solitude", "isolement", "lien social", "rencontre", "loneliness", "isolation", "social"},
	"MONEY":        {"argent", "budget", "finances", "gratuit", "money", "free"},
	"STUDIES":      {"études", "examen", "concentration", "mémoire", "studies", "exam", "focus", "memory"},
	"RELATIONSHIP": {"couple", "amour", "relation", "relationship", "partner"},
	"SLEEP":        {"sommeil", "insomnie", "endormissement", "sleep", "insomnia", "bedtime"},
	"WEATHER":      {"météo", "pluie", "soleil", "saison", "weather", "rain", "sunshine", "season"},
}

// MoodKeywords returns the keyword list for a canonical mood token, or nil.
func MoodKeywords(mood string) []string {
	return moodKeywords[mood]
}

// ReasonKeywords returns the keyword list for a canonical reason token, or nil.
func ReasonKeywords(reason string) []string {
	return reasonKeywords[reason]
}

// matchKeyword reports whether kw occurs in text (already lower-cased).
// Besides plain substring containment it applies French suffix-stem
// heuristics: "-tion" also matches on its bare stem ("motivation" hits
// "motivant"), "-isme" matches its "-iste" form, and "-ie" its "-ique" form.
// This is best-effort fuzzy matching for morphological variants, not a
// linguistically exact stemmer; false positives are accepted.
func matchKeyword(text, kw string) bool {
	kw = strings.ToLower(kw)
	if strings.Contains(text, kw) {
		return true
	}

	switch {
	case strings.HasSuffix(kw, "tion"):
		// "motivation" -> "motiva" (covers "motivant", "motivante").
		if stem := kw[:len(kw)-4]; strings.Contains(text, stem) {
			return true
		}
	case strings.HasSuffix(kw, "isme"):
		// "optimisme" -> "optimiste".
		if strings.Contains(text, kw[:len(kw)-4]+"iste") {
			return true
		}
	case strings.HasSuffix(kw, "ie"):
		// "énergie" -> "énergique".
		if strings.Contains(text, kw[:len(kw)-2]+"ique") {
			return true
		}
	}
	return false
}

// countMatches returns how many keywords from the list occur in text.
func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if matchKeyword(text, kw) {
			n++
		}
	}
	return n
}

// matchesAny reports whether at least one keyword from the list occurs in text.
func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if matchKeyword(text, kw) {
			return true
		}
	}
	return false
}
