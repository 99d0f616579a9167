package repository

import (
	"context"
	"errors"
)

// ErrIndexUnavailable wraps any vector-store transport or availability
// failure so callers can classify it without importing the provider package.
var ErrIndexUnavailable = errors.New("vector index unavailable")

// SearchCandidate is one nearest-neighbor match returned by a vector query.
type SearchCandidate struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	RawScore    float32 `json:"raw_score"`
}

// ProjectVectorRepo stores one embedding per project id.
//
// Exists is a non-authoritative probe: transport errors are reported as
// "not found". Every other operation surfaces transport failures wrapped
// in ErrIndexUnavailable.
type ProjectVectorRepo interface {
	EnsureCollection(ctx context.Context) error
	Exists(ctx context.Context, id string) bool
	Upsert(ctx context.Context, id string, description string, embedding []float32) error
	UpdateDescription(ctx context.Context, id string, description string) error
	CreatePlaceholder(ctx context.Context, id string) error
	DeletePoint(ctx context.Context, id string) error
	Query(ctx context.Context, embedding []float32, topK uint64) ([]SearchCandidate, error)
	DeleteCollection(ctx context.Context) error
}
