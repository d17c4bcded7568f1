// Package images picks non-repeating illustration URLs for feed items from
// curated category and emotion pools. Repetition avoidance is best-effort for
// aesthetic variety, not a correctness guarantee.
package images

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Selector hands out image URLs while avoiding repeats within the process
// lifetime. Construct one per process and inject it; tests run isolated
// instances.
type Selector struct {
	mu         sync.Mutex
	used       map[string]struct{}
	rand       *rand.Rand
	classifier HumanClassifier
}

// NewSelector creates a selector with an empty used set and the filename
// placeholder classifier.
func NewSelector() *Selector {
	return &Selector{
		used:       make(map[string]struct{}),
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
		classifier: FilenameClassifier{},
	}
}

// SetClassifier swaps the humans-in-image classifier.
func (s *Selector) SetClassifier(c HumanClassifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classifier = c
}

// Select returns an image URL for the given category ("scientific", "route",
// "event"), mood token and content keywords, with display parameters
// appended. The pool is built from the category's keyword sub-pools (falling
// back to the category default), the mood's pool, and, for wellness-themed
// scientific posts, a curated seed list; already-used and brand-blacklisted
// URLs are excluded. When everything is exhausted the guaranteed-safe list is
// used, resetting the used set entirely if even that is spent.
func (s *Selector) Select(category, moodToken string, keywords []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool := s.buildPool(category, moodToken, keywords)

	filtered := pool[:0:0]
	for _, url := range pool {
		if _, seen := s.used[url]; seen {
			continue
		}
		if blacklisted(url) {
			continue
		}
		// Scientific posts stay people-free.
		if category == "scientific" && s.classifier != nil && s.classifier.ContainsHumans(url) {
			continue
		}
		filtered = append(filtered, url)
	}

	if len(filtered) == 0 {
		filtered = s.safeRemainder()
		if len(filtered) == 0 {
			// Everything has been handed out; start over.
			s.used = make(map[string]struct{})
			filtered = append([]string(nil), guaranteedSafe...)
		}
	}

	chosen := filtered[s.rand.Intn(len(filtered))]
	s.used[chosen] = struct{}{}
	return withDisplayParams(chosen)
}

// Reset clears the used set. Called on a client-requested refresh.
func (s *Selector) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.used = make(map[string]struct{})
}

// UsedCount returns how many URLs have been handed out since the last reset.
func (s *Selector) UsedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.used)
}

func (s *Selector) buildPool(category, moodToken string, keywords []string) []string {
	var pool []string
	seen := make(map[string]struct{})
	add := func(urls []string) {
		for _, u := range urls {
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			pool = append(pool, u)
		}
	}

	if category == "scientific" && suggestsWellness(keywords) {
		add(curatedScientific)
	}

	if subPools, ok := categorySubPools[category]; ok {
		matched := false
		for _, kw := range keywords {
			k := strings.ToLower(kw)
			for name, urls := range subPools {
				if strings.Contains(k, name) || strings.Contains(name, k) {
					add(urls)
					matched = true
				}
			}
		}
		if !matched {
			add(categoryDefaults[category])
		}
	} else {
		add(categoryDefaults[category])
	}

	if moodPool, ok := emotionPools[moodToken]; ok {
		add(moodPool)
	}

	return pool
}

func (s *Selector) safeRemainder() []string {
	var out []string
	for _, u := range guaranteedSafe {
		if _, seen := s.used[u]; !seen {
			out = append(out, u)
		}
	}
	return out
}

func suggestsWellness(keywords []string) bool {
	for _, kw := range keywords {
		k := strings.ToLower(kw)
		for _, hint := range wellnessHints {
			if strings.Contains(k, hint) {
				return true
			}
		}
	}
	return false
}

func blacklisted(url string) bool {
	u := strings.ToLower(url)
	for _, brand := range brandBlacklist {
		if strings.Contains(u, brand) {
			return true
		}
	}
	return false
}

func withDisplayParams(url string) string {
	if strings.Contains(url, "?") {
		return url + "&" + displayParams
	}
	return url + "?" + displayParams
}
