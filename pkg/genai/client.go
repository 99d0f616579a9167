package genai

import "context"

// Client is the generative capability the core consumes. Implementations
// must be pure functions of their input: calls carry no idempotency key and
// may be retried by upstream transports.
type Client interface {
	// EmbedText maps text to a fixed-dimension vector.
	// Input: "mountain landscape" -> [0.12, -0.33, 0.57, ...]
	EmbedText(ctx context.Context, text string) ([]float32, error)
	DescribeImage(ctx context.Context, data []byte, mimeType string, prompt string) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}
