package qdrantdb

import (
	"context"
	"fmt"
	"math/rand/v2"

	"pictora/repository"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

const (
	ProjectCollectionName = "projects"
	// Dimension of text-embedding-004 vectors.
	EmbeddingDim = 768
)

// Fixed namespace so a project id always maps to the same point id.
var pointNamespace = uuid.MustParse("9f2cb1f6-7a30-44c2-b6d1-5f0a8a3d41ce")

// PointID derives the qdrant point id for a project id. Qdrant only accepts
// UUID or integer ids, project ids are arbitrary strings.
func PointID(projectID string) string {
	return uuid.NewSHA1(pointNamespace, []byte(projectID)).String()
}

func (c *ProjectClient) EnsureCollection(ctx context.Context) error {
	exists, err := c.Client.CollectionExists(ctx, ProjectCollectionName)
	if err != nil {
		return fmt.Errorf("%w: collection exists check: %v", repository.ErrIndexUnavailable, err)
	}
	if exists {
		return nil
	}
	err = c.Client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: ProjectCollectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     EmbeddingDim,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("%w: create collection: %v", repository.ErrIndexUnavailable, err)
	}
	return nil
}

// Exists probes for the point. Transport errors are reported as "not found":
// the probe only picks between the update and insert paths, it is never
// authoritative.
func (c *ProjectClient) Exists(ctx context.Context, id string) bool {
	resp, err := c.Client.Get(ctx, &qdrant.GetPoints{
		CollectionName: ProjectCollectionName,
		Ids:            []*qdrant.PointId{qdrant.NewID(PointID(id))},
	})
	if err != nil {
		return false
	}
	return len(resp) > 0
}

// Upsert writes the vector and description for a project. When the point
// already exists the vector and payload are updated in place rather than
// re-inserted, so a payload-only refresh elsewhere never clears fields.
func (c *ProjectClient) Upsert(ctx context.Context, id string, description string, embedding []float32) error {
	pid := qdrant.NewID(PointID(id))
	payload := qdrant.NewValueMap(map[string]any{
		"id":          id,
		"description": description,
	})

	if c.Exists(ctx, id) {
		_, err := c.Client.UpdateVectors(ctx, &qdrant.UpdatePointVectors{
			CollectionName: ProjectCollectionName,
			Points: []*qdrant.PointVectors{{
				Id:      pid,
				Vectors: qdrant.NewVectorsDense(embedding),
			}},
		})
		if err != nil {
			return fmt.Errorf("%w: update vector %s: %v", repository.ErrIndexUnavailable, id, err)
		}
		_, err = c.Client.SetPayload(ctx, &qdrant.SetPayloadPoints{
			CollectionName: ProjectCollectionName,
			Payload:        payload,
			PointsSelector: qdrant.NewPointsSelector(pid),
		})
		if err != nil {
			return fmt.Errorf("%w: update payload %s: %v", repository.ErrIndexUnavailable, id, err)
		}
		return nil
	}

	point := &qdrant.PointStruct{
		Id:      pid,
		Vectors: qdrant.NewVectorsDense(embedding),
		Payload: payload,
	}
	_, err := c.Client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: ProjectCollectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("%w: insert %s: %v", repository.ErrIndexUnavailable, id, err)
	}
	return nil
}

// UpdateDescription refreshes the stored description without touching the
// vector, for when only the text changed and no re-embedding is wanted.
func (c *ProjectClient) UpdateDescription(ctx context.Context, id string, description string) error {
	_, err := c.Client.SetPayload(ctx, &qdrant.SetPayloadPoints{
		CollectionName: ProjectCollectionName,
		Payload: qdrant.NewValueMap(map[string]any{
			"id":          id,
			"description": description,
		}),
		PointsSelector: qdrant.NewPointsSelector(qdrant.NewID(PointID(id))),
	})
	if err != nil {
		return fmt.Errorf("%w: update description %s: %v", repository.ErrIndexUnavailable, id, err)
	}
	return nil
}

// CreatePlaceholder inserts a low-information vector with an empty
// description so a freshly created project is already query-eligible.
func (c *ProjectClient) CreatePlaceholder(ctx context.Context, id string) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(PointID(id)),
		Vectors: qdrant.NewVectorsDense(PlaceholderVector()),
		Payload: qdrant.NewValueMap(map[string]any{
			"id":          id,
			"description": "",
		}),
	}
	_, err := c.Client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: ProjectCollectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("%w: create placeholder %s: %v", repository.ErrIndexUnavailable, id, err)
	}
	return nil
}

// PlaceholderVector returns small-magnitude random components. Never
// all-zero: cosine similarity against a zero vector is undefined and would
// need a special case in every query path.
func PlaceholderVector() []float32 {
	vec := make([]float32, EmbeddingDim)
	for i := range vec {
		v := rand.Float32()*0.02 - 0.01
		if v == 0 {
			v = 0.001
		}
		vec[i] = v
	}
	return vec
}

func (c *ProjectClient) DeletePoint(ctx context.Context, id string) error {
	_, err := c.Client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: ProjectCollectionName,
		Points:         qdrant.NewPointsSelector(qdrant.NewID(PointID(id))),
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", repository.ErrIndexUnavailable, id, err)
	}
	return nil
}

// Query returns up to topK nearest neighbors, similarity descending as
// qdrant returns them. No re-sort here.
func (c *ProjectClient) Query(ctx context.Context, embedding []float32, topK uint64) ([]repository.SearchCandidate, error) {
	points, err := c.Client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: ProjectCollectionName,
		Query:          qdrant.NewQueryDense(embedding),
		Limit:          &topK,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", repository.ErrIndexUnavailable, err)
	}

	candidates := make([]repository.SearchCandidate, 0, len(points))
	for _, p := range points {
		candidates = append(candidates, repository.SearchCandidate{
			ID:          p.Payload["id"].GetStringValue(),
			Description: p.Payload["description"].GetStringValue(),
			RawScore:    p.Score,
		})
	}
	return candidates, nil
}

func (c *ProjectClient) DeleteCollection(ctx context.Context) error {
	exists, err := c.Client.CollectionExists(ctx, ProjectCollectionName)
	if err != nil {
		return fmt.Errorf("%w: collection exists check: %v", repository.ErrIndexUnavailable, err)
	}
	if !exists {
		return nil
	}
	if err := c.Client.DeleteCollection(ctx, ProjectCollectionName); err != nil {
		return fmt.Errorf("%w: delete collection: %v", repository.ErrIndexUnavailable, err)
	}
	return nil
}
