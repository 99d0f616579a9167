package genai

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const (
	DefaultTextModel      = "gemini-1.5-flash"
	DefaultEmbeddingModel = "text-embedding-004"

	defaultCallTimeout = 60 * time.Second
)

type Gemini struct {
	llm         *googleai.GoogleAI
	textModel   string
	callTimeout time.Duration
}

func NewGemini(ctx context.Context, apiKey string, textModel string, embeddingModel string) (*Gemini, error) {
	if textModel == "" {
		textModel = DefaultTextModel
	}
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(textModel),
		googleai.WithDefaultEmbeddingModel(embeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create googleai client: %w", err)
	}
	return &Gemini{
		llm:         llm,
		textModel:   textModel,
		callTimeout: defaultCallTimeout,
	}, nil
}

func (g *Gemini) EmbedText(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	vectors, err := g.llm.CreateEmbedding(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(vectors))
	}
	return vectors[0], nil
}

func (g *Gemini) DescribeImage(ctx context.Context, data []byte, mimeType string, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	msg := llms.MessageContent{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.BinaryPart(mimeType, data),
			llms.TextPart(prompt),
		},
	}
	resp, err := g.llm.GenerateContent(ctx, []llms.MessageContent{msg}, llms.WithModel(g.textModel))
	if err != nil {
		return "", fmt.Errorf("failed to analyze image: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Content, nil
}

func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()

	resp, err := g.llm.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)},
		llms.WithModel(g.textModel),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Content, nil
}
