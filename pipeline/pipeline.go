package pipeline

import (
	"context"
	"fmt"

	"pictora/repository"
	"pictora/synthesis"

	"go.uber.org/zap"
)

// Pipeline keeps the vector index and project metadata in sync with the
// project lifecycle: placeholder on create, description+embedding refresh on
// save, vector delete on project delete.
type Pipeline struct {
	synthesizer synthesis.Client
	vectors     repository.ProjectVectorRepo
	projects    repository.ProjectStore
	logger      *zap.Logger
}

func NewPipeline(synthesizer synthesis.Client, vectors repository.ProjectVectorRepo,
	projects repository.ProjectStore, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		synthesizer: synthesizer,
		vectors:     vectors,
		projects:    projects,
		logger:      logger,
	}
}

// OnProjectCreated makes the project query-eligible before any content
// exists by inserting a placeholder vector.
func (p *Pipeline) OnProjectCreated(ctx context.Context, id string) error {
	if err := p.vectors.CreatePlaceholder(ctx, id); err != nil {
		return fmt.Errorf("failed to create placeholder for project %s: %w", id, err)
	}
	p.logger.Info("placeholder vector created", zap.String("project_id", id))
	return nil
}

// OnProjectSaved regenerates the description and embedding from the saved
// canvas and writes both stores. The metadata persist and the index write
// are independent best-effort steps, not a transaction: one failing never
// rolls back the other, each is reported in its own stage result.
//
// The returned error is non-nil only when generation failed and the save
// could not proceed past it.
func (p *Pipeline) OnProjectSaved(ctx context.Context, id string, snapshot synthesis.Snapshot, structural string) (StageResults, error) {
	var stages StageResults

	description, err := p.synthesizer.Describe(ctx, snapshot, structural)
	if err != nil {
		stages = append(stages, failed(StageImageAnalysis, err))
		return stages, err
	}
	stages = append(stages, ok(StageImageAnalysis))

	embedding, err := p.synthesizer.Embed(ctx, description)
	if err != nil {
		stages = append(stages, failed(StageEmbedding, err))
		return stages, err
	}
	stages = append(stages, ok(StageEmbedding))

	if err := p.projects.PatchMetadata(ctx, id, description, snapshot.Data); err != nil {
		p.logger.Error("metadata persist failed", zap.String("project_id", id), zap.Error(err))
		stages = append(stages, failed(StageMetadataPersist, err))
	} else {
		stages = append(stages, ok(StageMetadataPersist))
	}

	if err := p.vectors.Upsert(ctx, id, description, embedding); err != nil {
		p.logger.Error("index write failed", zap.String("project_id", id), zap.Error(err))
		stages = append(stages, failed(StageIndexWrite, err))
	} else {
		stages = append(stages, ok(StageIndexWrite))
	}

	p.logger.Info("project save processed",
		zap.String("project_id", id),
		zap.Int("description_chars", len(description)),
		zap.Bool("all_ok", stages.AllOK()))
	return stages, nil
}

// OnProjectDeleted removes the project's vector. Best-effort relative to the
// primary deletion: the caller must not roll back the project delete when
// this fails, but the failure is surfaced.
func (p *Pipeline) OnProjectDeleted(ctx context.Context, id string) error {
	if err := p.vectors.DeletePoint(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vector for project %s: %w", id, err)
	}
	p.logger.Info("project vector deleted", zap.String("project_id", id))
	return nil
}
