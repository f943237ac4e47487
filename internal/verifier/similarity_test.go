package verifier

import (
	"math"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Main Street", "main street"},
		{"strips punctuation", "corner of 5th & Main!", "corner of 5th   main "},
		{"folds accents", "Montréal café", "montreal cafe"},
		{"keeps digits", "Highway 401", "highway 401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tokens := Tokenize("Saw him near the OLD train station, around 3pm.")

	expected := []string{"saw", "him", "near", "the", "old", "train", "station", "around", "3pm"}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(tokens), tokens)
	}
	for i, tok := range expected {
		if tokens[i] != tok {
			t.Errorf("token %d: expected %q, got %q", i, tok, tokens[i])
		}
	}
}

func TestTokenSetJaccard(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"identical", "blue jacket near station", "blue jacket near station", 1},
		{"both empty", "", "", 1},
		{"one empty", "blue jacket", "", 0},
		{"disjoint", "red car highway", "yellow bird forest", 0},
		{"half overlap", "blue jacket", "blue hat ball cap", 1.0 / 5.0},
		{"word order ignored", "station train the near", "near the train station", 1},
		{"accent folded", "Montréal station", "montreal station", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenSetJaccard(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTokenSetJaccard_Symmetric(t *testing.T) {
	a := "man in a grey hoodie by the bus stop"
	b := "grey hoodie guy standing near bus stop"

	if s1, s2 := TokenSetJaccard(a, b), TokenSetJaccard(b, a); s1 != s2 {
		t.Errorf("expected symmetric similarity, got %v and %v", s1, s2)
	}
}
