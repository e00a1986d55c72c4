package utils

import "testing"

func TestSubjectColorsDeterministic(t *testing.T) {
	subjects := []string{"Math", "Physics", "Chemistry"}
	a := SubjectColors(subjects)
	b := SubjectColors(subjects)
	for _, s := range subjects {
		if a[s] == "" {
			t.Fatalf("no color for %s", s)
		}
		if a[s] != b[s] {
			t.Fatalf("color for %s not stable: %s vs %s", s, a[s], b[s])
		}
	}
	if a["Math"] != basePalette[0] {
		t.Fatalf("first subject should use first palette entry, got %s", a["Math"])
	}
}

func TestSubjectColorsUniqueWithinPalette(t *testing.T) {
	subjects := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	colors := SubjectColors(subjects)
	seen := map[string]string{}
	for s, c := range colors {
		if prev, ok := seen[c]; ok {
			t.Fatalf("subjects %s and %s share color %s", prev, s, c)
		}
		seen[c] = s
	}
}

func TestSubjectColorsBeyondPalette(t *testing.T) {
	subjects := make([]string, 14)
	for i := range subjects {
		subjects[i] = string(rune('A' + i))
	}
	colors := SubjectColors(subjects)
	if len(colors) != 14 {
		t.Fatalf("want 14 colors, got %d", len(colors))
	}
	for s, c := range colors {
		if len(c) != 7 || c[0] != '#' {
			t.Fatalf("bad hex color %q for %s", c, s)
		}
	}
}

func TestSubjectColorsDuplicateSubject(t *testing.T) {
	colors := SubjectColors([]string{"Math", "Math", "Physics"})
	if len(colors) != 2 {
		t.Fatalf("duplicates should collapse, got %d entries", len(colors))
	}
}
