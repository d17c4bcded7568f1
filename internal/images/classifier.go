package images

import "strings"

// HumanClassifier reports whether an image shows people. The boolean contract
// lets a real vision model be swapped in without touching call sites.
type HumanClassifier interface {
	ContainsHumans(url string) bool
}

// FilenameClassifier is the placeholder implementation: a substring check on
// the URL. It carries no real semantic power and exists only to keep the
// classifier seam in place.
type FilenameClassifier struct{}

var humanHints = []string{
	"people", "person", "portrait", "crowd", "group", "runner", "face",
	"selfie", "famille", "family",
}

// ContainsHumans implements HumanClassifier.
func (FilenameClassifier) ContainsHumans(url string) bool {
	u := strings.ToLower(url)
	for _, hint := range humanHints {
		if strings.Contains(u, hint) {
			return true
		}
	}
	return false
}
