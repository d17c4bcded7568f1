// Package mood normalizes free-text emotion and cause labels into the
// canonical uppercase tokens the rest of the engine keys on. Input arrives
// from the check-in chatbot in French (accented, sometimes with a
// parenthetical feminine suffix) or English.
package mood

import (
	"regexp"
	"sort"
	"strings"

	"decathlonminds/internal/logger"
)

// Canonical mood tokens.
const (
	Happy     = "HAPPY"
	Sad       = "SAD"
	Stressed  = "STRESSED"
	Anxious   = "ANXIOUS"
	Tired     = "TIRED"
	Angry     = "ANGRY"
	Excited   = "EXCITED"
	Calm      = "CALM"
	Lonely    = "LONELY"
	Motivated = "MOTIVATED"
)

// moodTable maps normalized labels to their canonical token. Keys are
// upper-cased with accents stripped and gender parentheticals removed.
var moodTable = map[string]string{
	"HEUREUX":       Happy,
	"HEUREUSE":      Happy,
	"CONTENT":       Happy,
	"CONTENTE":      Happy,
	"JOYEUX":        Happy,
	"JOYEUSE":       Happy,
	"HAPPY":         Happy,
	"JOYFUL":        Happy,
	"TRISTE":        Sad,
	"MALHEUREUX":    Sad,
	"MALHEUREUSE":   Sad,
	"DEPRIME":       Sad,
	"DEPRIMEE":      Sad,
	"SAD":           Sad,
	"DOWN":          Sad,
	"STRESSE":       Stressed,
	"STRESSEE":      Stressed,
	"SOUS PRESSION": Stressed,
	"STRESSED":      Stressed,
	"ANXIEUX":       Anxious,
	"ANXIEUSE":      Anxious,
	"INQUIET":       Anxious,
	"INQUIETE":      Anxious,
	"ANXIOUS":       Anxious,
	"WORRIED":       Anxious,
	"FATIGUE":       Tired,
	"FATIGUEE":      Tired,
	"EPUISE":        Tired,
	"EPUISEE":       Tired,
	"TIRED":         Tired,
	"EXHAUSTED":     Tired,
	"ENERVE":        Angry,
	"ENERVEE":       Angry,
	"EN COLERE":     Angry,
	"FACHE":         Angry,
	"FACHEE":        Angry,
	"ANGRY":         Angry,
	"EXCITE":        Excited,
	"EXCITEE":       Excited,
	"ENTHOUSIASTE":  Excited,
	"EXCITED":       Excited,
	"THRILLED":      Excited,
	"CALME":         Calm,
	"SEREIN":        Calm,
	"SEREINE":       Calm,
	"APAISE":        Calm,
	"APAISEE":       Calm,
	"CALM":          Calm,
	"RELAXED":       Calm,
	"SEUL":          Lonely,
	"SEULE":         Lonely,
	"ISOLE":         Lonely,
	"ISOLEE":        Lonely,
	"LONELY":        Lonely,
	"MOTIVE":        Motivated,
	"MOTIVEE":       Motivated,
	"DETERMINE":     Motivated,
	"DETERMINEE":    Motivated,
	"MOTIVATED":     Motivated,
}

// reasonTable maps normalized cause labels to canonical reason tokens.
var reasonTable = map[string]string{
	"TRAVAIL":      "WORK",
	"BOULOT":       "WORK",
	"WORK":         "WORK",
	"FAMILLE":      "FAMILY",
	"FAMILY":       "FAMILY",
	"SANTE":        "HEALTH",
	"HEALTH":       "HEALTH",
	"FATIGUE":      "FATIGUE",
	"TIREDNESS":    "FATIGUE",
	"SOLITUDE":     "SOLITUDE",
	"LONELINESS":   "SOLITUDE",
	"ARGENT":       "MONEY",
	"MONEY":        "MONEY",
	"ETUDES":       "STUDIES",
	"ECOLE":        "STUDIES",
	"STUDIES":      "STUDIES",
	"SCHOOL":       "STUDIES",
	"AMOUR":        "RELATIONSHIP",
	"COUPLE":       "RELATIONSHIP",
	"RELATIONSHIP": "RELATIONSHIP",
	"SOMMEIL":      "SLEEP",
	"SLEEP":        "SLEEP",
	"METEO":        "WEATHER",
	"WEATHER":      "WEATHER",
}

var (
	genderSuffixRe = regexp.MustCompile(`\([^)]*\)`)
	accentReplacer = strings.NewReplacer(
		"É", "E", "È", "E", "Ê", "E", "Ë", "E",
		"À", "A", "Â", "A",
		"Ù", "U", "Û", "U", "Ü", "U",
		"Î", "I", "Ï", "I",
		"Ô", "O", "Ö", "O",
		"Ç", "C",
		"é", "e", "è", "e", "ê", "e", "ë", "e",
		"à", "a", "â", "a",
		"ù", "u", "û", "u", "ü", "u",
		"î", "i", "ï", "i",
		"ô", "o", "ö", "o",
		"ç", "c",
	)
)

// normalize strips accents and gender parentheticals ("HEUREUX(SE)") and
// upper-cases the remainder.
func normalize(raw string) string {
	s := genderSuffixRe.ReplaceAllString(raw, "")
	s = accentReplacer.Replace(s)
	return strings.ToUpper(strings.TrimSpace(s))
}

// Canonicalize maps a free-text mood label to its canonical token. Unknown
// input falls back to substring containment against the known labels; if
// nothing matches, the normalized input is returned verbatim and a warning is
// logged. An empty label returns "" (the wildcard: no mood set).
func Canonicalize(raw string) (token string, known bool) {
	return lookup(raw, moodTable, "mood")
}

// CanonicalizeReason maps a free-text cause label to its canonical token with
// the same fallback behavior as Canonicalize.
func CanonicalizeReason(raw string) (token string, known bool) {
	return lookup(raw, reasonTable, "reason")
}

func lookup(raw string, table map[string]string, what string) (string, bool) {
	norm := normalize(raw)
	if norm == "" {
		return "", true
	}

	if token, ok := table[norm]; ok {
		return token, true
	}

	// Substring containment either way, so "TRES HEUREUX" and "HEUR" both
	// still land on HAPPY. Labels are tried in sorted order so inputs that
	// graze several labels resolve the same way on every run.
	labels := make([]string, 0, len(table))
	for label := range table {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		if strings.Contains(norm, label) || strings.Contains(label, norm) {
			return table[label], true
		}
	}

	logger.Warn("unmapped "+what+" label, using verbatim", what, raw, "normalized", norm)
	return norm, false
}
