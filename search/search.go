package search

import (
	"context"
	"errors"

	"pictora/repository"
)

// ErrInvalidQuery means the caller's query was malformed. Not retried,
// returned to the caller before any network call is made.
var ErrInvalidQuery = errors.New("invalid search query")

// RankedResult is one search hit. Similarity is the reranked score, or the
// raw vector similarity when reranking was unavailable.
type RankedResult struct {
	ID         string  `json:"id"`
	Similarity float32 `json:"similarity"`
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type CandidateIndex interface {
	Query(ctx context.Context, embedding []float32, topK uint64) ([]repository.SearchCandidate, error)
}

// Ranker orders a candidate shortlist. A nil result means no usable ranking
// was produced; deciding what that means is the orchestrator's job.
type Ranker interface {
	Rank(ctx context.Context, query string, candidates []repository.SearchCandidate, maxResults int) []RankedResult
}
