package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	// Candidate shortlist size for the initial vector fetch.
	DefaultTopK = 20
	// Cap on the final result list.
	DefaultMaxResults = 5

	minQueryLength = 3
)

// Orchestrator composes embedding, vector retrieval, reranking and the
// fallback policy into one search operation. Stateless per call; concurrent
// searches only share the injected services.
type Orchestrator struct {
	embedder   Embedder
	index      CandidateIndex
	ranker     Ranker
	topK       uint64
	maxResults int
	logger     *zap.Logger
}

func NewOrchestrator(embedder Embedder, index CandidateIndex, ranker Ranker,
	topK uint64, maxResults int, logger *zap.Logger) *Orchestrator {
	if topK == 0 {
		topK = DefaultTopK
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Orchestrator{
		embedder:   embedder,
		index:      index,
		ranker:     ranker,
		topK:       topK,
		maxResults: maxResults,
		logger:     logger,
	}
}

// SearchByDescription finds projects matching a free-text description.
// Embedding and index failures are fatal to the call; rerank failure never
// is, it degrades to raw similarity ordering. An empty result list with a
// nil error means nothing matched.
func (o *Orchestrator) SearchByDescription(ctx context.Context, query string) ([]RankedResult, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minQueryLength {
		return nil, fmt.Errorf("%w: need at least %d characters", ErrInvalidQuery, minQueryLength)
	}

	embedding, err := o.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	candidates, err := o.index.Query(ctx, embedding, o.topK)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}
	if len(candidates) == 0 {
		return []RankedResult{}, nil
	}

	if ranked := o.ranker.Rank(ctx, query, candidates, o.maxResults); len(ranked) > 0 {
		return ranked, nil
	}

	o.logger.Info("rerank unavailable, falling back to raw similarity",
		zap.Int("candidates", len(candidates)))

	// Fallback: top maxResults by raw similarity, scores unmodified. Never
	// empty when candidates exist.
	n := min(len(candidates), o.maxResults)
	results := make([]RankedResult, 0, n)
	for _, c := range candidates[:n] {
		results = append(results, RankedResult{ID: c.ID, Similarity: c.RawScore})
	}
	return results, nil
}
