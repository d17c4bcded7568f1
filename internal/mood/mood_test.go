package mood

import "testing"

func TestCanonicalizeKnownLabels(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"HEUREUX", Happy},
		{"HEUREUSE", Happy},
		{"HAPPY", Happy},
		{"heureux", Happy},
		{"HEUREUX(SE)", Happy},
		{"Énervé", Angry},
		{"énervée", Angry},
		{"STRESSÉ(E)", Stressed},
		{"fatigué", Tired},
		{"anxieuse", Anxious},
		{"triste", Sad},
		{"excité(e)", Excited},
		{"calme", Calm},
		{"seule", Lonely},
		{"motivée", Motivated},
	}

	for _, tc := range cases {
		got, known := Canonicalize(tc.in)
		if !known {
			t.Errorf("Canonicalize(%q): expected a known mapping", tc.in)
		}
		if got != tc.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalizeSubstringFallback(t *testing.T) {
	got, known := Canonicalize("très heureux aujourd'hui")
	if !known || got != Happy {
		t.Errorf("expected substring fallback to HAPPY, got %q (known=%v)", got, known)
	}
}

func TestCanonicalizeUnknownIsVerbatimUppercase(t *testing.T) {
	got, known := Canonicalize("flabbergasted")
	if known {
		t.Error("expected unknown label to be reported as unknown")
	}
	if got != "FLABBERGASTED" {
		t.Errorf("expected verbatim uppercase fallback, got %q", got)
	}
}

func TestCanonicalizeEmptyIsWildcard(t *testing.T) {
	got, known := Canonicalize("")
	if got != "" || !known {
		t.Errorf("empty mood should stay empty, got %q (known=%v)", got, known)
	}
}

func TestCanonicalizeReason(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"travail", "WORK"},
		{"Santé", "HEALTH"},
		{"fatigue", "FATIGUE"},
		{"solitude", "SOLITUDE"},
		{"sommeil", "SLEEP"},
		{"money", "MONEY"},
	}

	for _, tc := range cases {
		got, known := CanonicalizeReason(tc.in)
		if !known {
			t.Errorf("CanonicalizeReason(%q): expected a known mapping", tc.in)
		}
		if got != tc.want {
			t.Errorf("CanonicalizeReason(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalizeAmbiguousInputIsStable(t *testing.T) {
	// "CONTENT" (HAPPY) and "SEUL" (LONELY) both occur in the input; the
	// first label in sorted order must win, every time.
	for i := 0; i < 50; i++ {
		got, known := Canonicalize("content mais seul")
		if !known {
			t.Fatal("expected a known mapping")
		}
		if got != Happy {
			t.Fatalf("iteration %d: got %q, want %q", i, got, Happy)
		}
	}
}
