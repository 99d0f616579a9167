package search

import (
	"encoding/json"
	"regexp"
	"strings"
)

var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

// ParseRankedResults turns a model response into ranked results. Any parse
// failure returns nil, never an error: the caller's fallback path is the
// single place that decides what "no usable rerank" means.
func ParseRankedResults(response string) []RankedResult {
	clean := strings.TrimSpace(response)
	clean = strings.ReplaceAll(clean, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.ReplaceAll(clean, "\n", "")
	clean = strings.ReplaceAll(clean, "\r", "")
	clean = strings.TrimSpace(clean)

	if results := decodeResults(clean); results != nil {
		return results
	}

	// Models sometimes wrap the array in prose. Best effort: extract the
	// outermost bracketed span and retry.
	if match := jsonArrayRe.FindString(clean); match != "" {
		return decodeResults(match)
	}
	return nil
}

func decodeResults(text string) []RankedResult {
	var parsed []struct {
		ID         string      `json:"id"`
		Similarity json.Number `json:"similarity"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil
	}

	results := make([]RankedResult, 0, len(parsed))
	for _, item := range parsed {
		if item.ID == "" {
			continue
		}
		score, err := item.Similarity.Float64()
		if err != nil {
			continue
		}
		results = append(results, RankedResult{ID: item.ID, Similarity: float32(score)})
	}
	if len(results) == 0 {
		return nil
	}
	return results
}
