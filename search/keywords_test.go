package search

import (
	"testing"
)

func TestKeywordExtractorExtract(t *testing.T) {
	e := NewKeywordExtractor()

	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{"StopWordsDropped", "the house and the sun", []string{"hous", "sun"}},
		{"StemmedDeduplicated", "mountain mountains", []string{"mountain"}},
		{"PunctuationStripped", "bright, yellow; sun!", []string{"bright", "yellow", "sun"}},
		{"NonASCIILettersKept", "Café!", []string{"café"}},
		{"Empty", "", nil},
		{"OnlyStopWords", "the and of", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Extract(tc.text)
			if len(got) != len(tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
			for i := range got {
				if got[i] != tc.expected[i] {
					t.Errorf("expected %v, got %v", tc.expected, got)
				}
			}
		})
	}
}

func TestKeywordExtractorMatchesAll(t *testing.T) {
	e := NewKeywordExtractor()

	testCases := []struct {
		name        string
		query       string
		description string
		expected    bool
	}{
		{"SingleWordMatch", "bee", "yellow bee, green meadow, blue sky", true},
		{"InflectedMatch", "bees", "yellow bee, green meadow", true},
		{"PartialQueryNoMatch", "red bee", "yellow bee, green meadow", false},
		{"NoMatch", "dragon", "yellow bee, green meadow", false},
		{"NonASCIIMatch", "café", "sunny café terrace, red awning", true},
		{"EmptyQuery", "", "yellow bee", false},
		{"EmptyDescription", "bee", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := e.MatchesAll(tc.query, tc.description); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}
