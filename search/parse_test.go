package search

import (
	"testing"
)

func TestParseRankedResults(t *testing.T) {
	testCases := []struct {
		name     string
		response string
		expected []RankedResult
	}{
		{
			name:     "PlainArray",
			response: `[{"id":"a","similarity":0.91},{"id":"b","similarity":0.85}]`,
			expected: []RankedResult{{ID: "a", Similarity: 0.91}, {ID: "b", Similarity: 0.85}},
		},
		{
			name:     "CodeFenced",
			response: "```json\n[{\"id\":\"a\",\"similarity\":0.5}]\n```",
			expected: []RankedResult{{ID: "a", Similarity: 0.5}},
		},
		{
			name:     "ArrayWrappedInProse",
			response: `Here are the results: [{"id":"x","similarity":0.7}] hope this helps`,
			expected: []RankedResult{{ID: "x", Similarity: 0.7}},
		},
		{
			name:     "Garbage",
			response: "I could not find any projects matching that description.",
			expected: nil,
		},
		{
			name:     "EmptyArray",
			response: `[]`,
			expected: nil,
		},
		{
			name:     "EmptyString",
			response: "",
			expected: nil,
		},
		{
			name:     "EntriesWithoutIDSkipped",
			response: `[{"similarity":0.9},{"id":"b","similarity":0.8}]`,
			expected: []RankedResult{{ID: "b", Similarity: 0.8}},
		},
		{
			name:     "NotAnArray",
			response: `{"id":"a","similarity":0.9}`,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseRankedResults(tc.response)
			if len(got) != len(tc.expected) {
				t.Fatalf("expected %d results, got %d: %v", len(tc.expected), len(got), got)
			}
			for i := range got {
				if got[i].ID != tc.expected[i].ID {
					t.Errorf("result %d: expected id %q, got %q", i, tc.expected[i].ID, got[i].ID)
				}
				if got[i].Similarity != tc.expected[i].Similarity {
					t.Errorf("result %d: expected similarity %v, got %v", i, tc.expected[i].Similarity, got[i].Similarity)
				}
			}
		})
	}
}

func TestParseRankedResultsNeverPanics(t *testing.T) {
	inputs := []string{
		"[[[",
		"```json```",
		"[{]",
		"null",
		"[null]",
	}
	for _, in := range inputs {
		if got := ParseRankedResults(in); got != nil {
			t.Errorf("input %q: expected nil, got %v", in, got)
		}
	}
}
