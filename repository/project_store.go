package repository

import (
	"context"
	"time"
)

type ProjectStore interface {
	PatchMetadata(ctx context.Context, id string, description string, thumbnail []byte) error
	GetOne(ctx context.Context, id string) (*ProjectMetadataDoc, error)
}

type ProjectMetadataDoc struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Thumbnail   []byte    `json:"thumbnail,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
