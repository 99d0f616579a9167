package synthesis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pictora/pkg/genai"

	"go.uber.org/zap"
)

var (
	// ErrDescriptionGeneration wraps upstream failures while deriving a
	// description. Never replaced by a placeholder description: a wrong
	// description corrupts future ranking, a failed save is visible.
	ErrDescriptionGeneration = errors.New("description generation failed")

	// ErrEmbeddingFailed wraps empty input and upstream embedding failures.
	ErrEmbeddingFailed = errors.New("embedding failed")
)

// Token budget for embedding input.
const maxEmbedTokens = 2048

type Synthesizer struct {
	genaiClient genai.Client
	logger      *zap.Logger
}

func NewSynthesizer(genaiClient genai.Client, logger *zap.Logger) *Synthesizer {
	return &Synthesizer{
		genaiClient: genaiClient,
		logger:      logger,
	}
}

// Describe runs a vision pass over the snapshot and, when structural content
// is present, a second pass folding it into the visual analysis.
func (s *Synthesizer) Describe(ctx context.Context, snapshot Snapshot, structural string) (string, error) {
	if len(snapshot.Data) == 0 {
		return "", fmt.Errorf("%w: empty snapshot", ErrDescriptionGeneration)
	}
	mimeType := snapshot.MimeType
	if mimeType == "" {
		mimeType = "image/png"
	}

	imageAnalysis, err := s.genaiClient.DescribeImage(ctx, snapshot.Data, mimeType, imagePrompt)
	if err != nil {
		return "", fmt.Errorf("%w: image analysis: %v", ErrDescriptionGeneration, err)
	}
	imageAnalysis = cleanDescription(imageAnalysis)
	if imageAnalysis == "" {
		return "", fmt.Errorf("%w: empty image analysis", ErrDescriptionGeneration)
	}

	// Structural content is additive. Without it the visual analysis stands
	// on its own.
	if strings.TrimSpace(structural) == "" {
		s.logger.Debug("no structural content, using visual analysis only",
			zap.Int("description_chars", len(imageAnalysis)))
		return imageAnalysis, nil
	}

	combined, err := s.genaiClient.GenerateText(ctx, combinedPrompt(imageAnalysis, structural))
	if err != nil {
		return "", fmt.Errorf("%w: combining pass: %v", ErrDescriptionGeneration, err)
	}
	combined = cleanDescription(combined)
	if combined == "" {
		return "", fmt.Errorf("%w: empty combined description", ErrDescriptionGeneration)
	}
	return combined, nil
}

func (s *Synthesizer) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty input", ErrEmbeddingFailed)
	}

	vector, err := s.genaiClient.EmbedText(ctx, truncateText(text, maxEmbedTokens))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: provider returned empty vector", ErrEmbeddingFailed)
	}
	return vector, nil
}

// cleanDescription strips markdown fences the model sometimes wraps its
// output in.
func cleanDescription(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// truncateText approximates token length by character count.
// Safe upper bound: ~4 chars ≈ 1 token (English).
func truncateText(text string, maxTokens int) string {
	maxChars := maxTokens * 4
	if len(text) <= maxChars {
		return text
	}
	return text[:maxChars]
}
