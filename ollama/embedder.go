package ollama

import (
	"context"

	"github.com/fwojciec/locqa"
)

// Ensure Embedder implements locqa.Embedder at compile time.
var _ locqa.Embedder = (*Embedder)(nil)

// Embedder implements locqa.Embedder against the Ollama /api/embed
// endpoint. Queries and documents share a single symmetric model, so
// both methods embed the text the same way.
type Embedder struct {
	completer *Completer
	model     string
}

// NewEmbedder creates a new Embedder sharing the Completer's HTTP
// client and server address. An empty model selects the default
// embedding model.
func NewEmbedder(completer *Completer, model string) *Embedder {
	if model == "" {
		model = DefaultEmbedModel
	}
	return &Embedder{completer: completer, model: model}
}

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// EmbedQuery embeds a search query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text)
}

// EmbedDocument embeds a passage of document text.
func (e *Embedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text)
}

func (e *Embedder) embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, locqa.Errorf(locqa.EINVALID, "text required")
	}

	var resp embedResponse
	if err := e.completer.post(ctx, "/api/embed", embedRequest{Model: e.model, Input: text}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embeddings) == 0 {
		return nil, locqa.Errorf(locqa.EINTERNAL, "ollama returned no embedding")
	}
	return resp.Embeddings[0], nil
}
