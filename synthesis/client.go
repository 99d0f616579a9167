package synthesis

import "context"

// Snapshot is a rendered raster export of a project canvas.
type Snapshot struct {
	Data     []byte
	MimeType string
}

type Client interface {
	// Describe produces a dense keyword description of the snapshot.
	// structural carries literal text and numeric values extracted from the
	// project content; it is additive, an empty value still yields a
	// description from visual content alone.
	Describe(ctx context.Context, snapshot Snapshot, structural string) (string, error)

	// Embed maps text to an embedding vector.
	Embed(ctx context.Context, text string) ([]float32, error)
}
