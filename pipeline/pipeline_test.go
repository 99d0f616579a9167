package pipeline

import (
	"context"
	"errors"
	"testing"

	"pictora/repository"
	"pictora/synthesis"

	"go.uber.org/zap"
)

type fakeSynthesizer struct {
	description string
	describeErr error
	vector      []float32
	embedErr    error
}

func (f *fakeSynthesizer) Describe(ctx context.Context, snapshot synthesis.Snapshot, structural string) (string, error) {
	return f.description, f.describeErr
}

func (f *fakeSynthesizer) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.vector, f.embedErr
}

type fakeVectorRepo struct {
	upsertErr      error
	deleteErr      error
	placeholderErr error

	upserts      []string
	deletes      []string
	placeholders []string
}

func (f *fakeVectorRepo) EnsureCollection(ctx context.Context) error { return nil }
func (f *fakeVectorRepo) Exists(ctx context.Context, id string) bool { return false }
func (f *fakeVectorRepo) Upsert(ctx context.Context, id string, description string, embedding []float32) error {
	f.upserts = append(f.upserts, id)
	return f.upsertErr
}
func (f *fakeVectorRepo) UpdateDescription(ctx context.Context, id string, description string) error {
	return nil
}
func (f *fakeVectorRepo) CreatePlaceholder(ctx context.Context, id string) error {
	f.placeholders = append(f.placeholders, id)
	return f.placeholderErr
}
func (f *fakeVectorRepo) DeletePoint(ctx context.Context, id string) error {
	f.deletes = append(f.deletes, id)
	return f.deleteErr
}
func (f *fakeVectorRepo) Query(ctx context.Context, embedding []float32, topK uint64) ([]repository.SearchCandidate, error) {
	return nil, nil
}
func (f *fakeVectorRepo) DeleteCollection(ctx context.Context) error { return nil }

type fakeProjectStore struct {
	patchErr error
	patches  []string
}

func (f *fakeProjectStore) PatchMetadata(ctx context.Context, id string, description string, thumbnail []byte) error {
	f.patches = append(f.patches, id)
	return f.patchErr
}

func (f *fakeProjectStore) GetOne(ctx context.Context, id string) (*repository.ProjectMetadataDoc, error) {
	return nil, nil
}

var testSnapshot = synthesis.Snapshot{Data: []byte{0x89, 0x50}, MimeType: "image/png"}

func stageByName(t *testing.T, stages StageResults, name Stage) StageResult {
	t.Helper()
	for _, s := range stages {
		if s.Stage == name {
			return s
		}
	}
	t.Fatalf("stage %s not reported in %v", name, stages)
	return StageResult{}
}

func TestOnProjectSavedAllStagesOK(t *testing.T) {
	vectors := &fakeVectorRepo{}
	projects := &fakeProjectStore{}
	p := NewPipeline(&fakeSynthesizer{description: "bee", vector: []float32{0.1}},
		vectors, projects, zap.NewNop())

	stages, err := p.OnProjectSaved(context.Background(), "proj-1", testSnapshot, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stages.AllOK() {
		t.Fatalf("expected all stages ok, got %v", stages)
	}
	if len(stages) != 4 {
		t.Fatalf("expected 4 stages, got %d", len(stages))
	}
	if len(vectors.upserts) != 1 || len(projects.patches) != 1 {
		t.Errorf("expected one index write and one metadata persist")
	}
}

func TestOnProjectSavedGenerationFailureIsFatal(t *testing.T) {
	describeErr := errors.New("vision model down")
	vectors := &fakeVectorRepo{}
	projects := &fakeProjectStore{}
	p := NewPipeline(&fakeSynthesizer{describeErr: describeErr}, vectors, projects, zap.NewNop())

	stages, err := p.OnProjectSaved(context.Background(), "proj-1", testSnapshot, "")
	if !errors.Is(err, describeErr) {
		t.Fatalf("expected describe error, got %v", err)
	}
	if s := stageByName(t, stages, StageImageAnalysis); s.OK {
		t.Errorf("expected image analysis stage to report failure")
	}
	if len(vectors.upserts) != 0 || len(projects.patches) != 0 {
		t.Errorf("expected no writes after generation failure")
	}
}

func TestOnProjectSavedEmbeddingFailureIsFatal(t *testing.T) {
	embedErr := errors.New("embedding down")
	p := NewPipeline(&fakeSynthesizer{description: "bee", embedErr: embedErr},
		&fakeVectorRepo{}, &fakeProjectStore{}, zap.NewNop())

	stages, err := p.OnProjectSaved(context.Background(), "proj-1", testSnapshot, "")
	if !errors.Is(err, embedErr) {
		t.Fatalf("expected embed error, got %v", err)
	}
	if s := stageByName(t, stages, StageEmbedding); s.OK {
		t.Errorf("expected embedding stage to report failure")
	}
}

func TestOnProjectSavedIndexFailureIsNotFatal(t *testing.T) {
	vectors := &fakeVectorRepo{upsertErr: repository.ErrIndexUnavailable}
	projects := &fakeProjectStore{}
	p := NewPipeline(&fakeSynthesizer{description: "bee", vector: []float32{0.1}},
		vectors, projects, zap.NewNop())

	stages, err := p.OnProjectSaved(context.Background(), "proj-1", testSnapshot, "")
	if err != nil {
		t.Fatalf("index failure must not fail the save, got %v", err)
	}
	if s := stageByName(t, stages, StageIndexWrite); s.OK {
		t.Errorf("expected index write stage to report failure")
	}
	if s := stageByName(t, stages, StageMetadataPersist); !s.OK {
		t.Errorf("expected metadata persist to succeed independently")
	}
}

func TestOnProjectSavedMetadataFailureDoesNotBlockIndexWrite(t *testing.T) {
	vectors := &fakeVectorRepo{}
	projects := &fakeProjectStore{patchErr: errors.New("store down")}
	p := NewPipeline(&fakeSynthesizer{description: "bee", vector: []float32{0.1}},
		vectors, projects, zap.NewNop())

	stages, err := p.OnProjectSaved(context.Background(), "proj-1", testSnapshot, "")
	if err != nil {
		t.Fatalf("metadata failure must not fail the save, got %v", err)
	}
	if s := stageByName(t, stages, StageMetadataPersist); s.OK {
		t.Errorf("expected metadata persist stage to report failure")
	}
	if len(vectors.upserts) != 1 {
		t.Errorf("expected index write to still run, got %d writes", len(vectors.upserts))
	}
}

func TestOnProjectCreated(t *testing.T) {
	vectors := &fakeVectorRepo{}
	p := NewPipeline(&fakeSynthesizer{}, vectors, &fakeProjectStore{}, zap.NewNop())

	if err := p.OnProjectCreated(context.Background(), "proj-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors.placeholders) != 1 || vectors.placeholders[0] != "proj-1" {
		t.Errorf("expected one placeholder for proj-1, got %v", vectors.placeholders)
	}
}

func TestOnProjectDeletedSurfacesFailure(t *testing.T) {
	vectors := &fakeVectorRepo{deleteErr: repository.ErrIndexUnavailable}
	p := NewPipeline(&fakeSynthesizer{}, vectors, &fakeProjectStore{}, zap.NewNop())

	err := p.OnProjectDeleted(context.Background(), "proj-1")
	if !errors.Is(err, repository.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}
