package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"pictora/pkg/genai"
	"pictora/repository"

	"go.uber.org/zap"
)

// Reranker asks the generative model for a second, more precise ordering of
// the vector-search shortlist. It degrades to a nil result on any model or
// parse failure so the orchestrator can fall back to raw similarity.
type Reranker struct {
	genaiClient genai.Client
	keywords    *KeywordExtractor
	logger      *zap.Logger
}

func NewReranker(genaiClient genai.Client, logger *zap.Logger) *Reranker {
	return &Reranker{
		genaiClient: genaiClient,
		keywords:    NewKeywordExtractor(),
		logger:      logger,
	}
}

func (r *Reranker) Rank(ctx context.Context, query string, candidates []repository.SearchCandidate, maxResults int) []RankedResult {
	if len(candidates) == 0 {
		return nil
	}

	response, err := r.genaiClient.GenerateText(ctx, rerankPrompt(query, candidates, maxResults))
	if err != nil {
		r.logger.Warn("rerank call failed", zap.Error(err))
		return nil
	}

	results := ParseRankedResults(response)
	if results == nil {
		r.logger.Warn("rerank response unparseable", zap.Int("response_chars", len(response)))
		return nil
	}

	byID := make(map[string]repository.SearchCandidate, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}

	// Keep only real candidate ids; the model occasionally invents entries.
	seen := make(map[string]bool, len(results))
	kept := results[:0]
	for _, res := range results {
		if _, ok := byID[res.ID]; !ok || seen[res.ID] {
			continue
		}
		seen[res.ID] = true
		kept = append(kept, res)
	}
	if len(kept) == 0 {
		return nil
	}

	// A lexical match must survive into the final list even when the model
	// dropped it or scored it below the cap.
	for _, c := range candidates {
		if !seen[c.ID] && r.keywords.MatchesAll(query, c.Description) {
			seen[c.ID] = true
			kept = append(kept, RankedResult{ID: c.ID, Similarity: c.RawScore})
		}
	}

	// Backfill from the raw-similarity-ordered candidates until the result
	// holds exactly maxResults entries, or every candidate when the
	// shortlist fits under the cap.
	target := min(len(candidates), maxResults)
	for _, c := range candidates {
		if len(kept) >= target {
			break
		}
		if !seen[c.ID] {
			seen[c.ID] = true
			kept = append(kept, RankedResult{ID: c.ID, Similarity: c.RawScore})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Similarity > kept[j].Similarity
	})
	kept = r.exactMatchesFirst(query, kept, byID)
	if len(kept) > target {
		kept = kept[:target]
	}
	return kept
}

// exactMatchesFirst moves candidates whose description lexically contains
// the whole query to the front, regardless of numeric score.
func (r *Reranker) exactMatchesFirst(query string, results []RankedResult, byID map[string]repository.SearchCandidate) []RankedResult {
	matched := make([]RankedResult, 0, len(results))
	rest := make([]RankedResult, 0, len(results))
	for _, res := range results {
		if r.keywords.MatchesAll(query, byID[res.ID].Description) {
			matched = append(matched, res)
		} else {
			rest = append(rest, res)
		}
	}
	return append(matched, rest...)
}

func rerankPrompt(query string, candidates []repository.SearchCandidate, maxResults int) string {
	var sb strings.Builder
	for _, c := range candidates {
		fmt.Fprintf(&sb, "Project %s:\n%s\nSimilarity: %.2f\n\n", c.ID, c.Description, c.RawScore)
	}

	return fmt.Sprintf(`Based on the provided descriptions, analyze and find similar projects.
Compare the search description with the stored project descriptions and return projects with their EXACT similarity scores.

Stored project descriptions:
%s
Search description:
%s

Instructions:
1. First, find projects that DIRECTLY match the search criteria
2. Then, find additional projects based on:
   - Related themes or elements
   - Similar visual style
   - Common color schemes
   - Comparable compositions
3. IMPORTANT RULES:
   - If the search term matches exactly (like searching "bee" and finding a bee image), that project should be first
   - MUST return ALL available projects if total count <= %d
   - MUST return EXACTLY %d projects if total count > %d
   - Sort by similarity score in descending order
   - Use ONLY the exact similarity scores from descriptions
   - Include projects to meet the count requirement, even if less relevant

Return a valid JSON array of objects with 'id' and 'similarity' properties.`,
		sb.String(), query, maxResults, maxResults, maxResults)
}
