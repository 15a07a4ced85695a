package gemini

import (
	"context"

	"github.com/fwojciec/locqa"
	"google.golang.org/genai"
)

// Ensure Embedder implements locqa.Embedder at compile time.
var _ locqa.Embedder = (*Embedder)(nil)

// Embedder implements locqa.Embedder using the Gemini embedding API.
// Queries and documents are embedded with asymmetric task types, which
// is the Gemini equivalent of query/passage prefix conventions.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates a new Embedder. An empty model selects the
// default embedding model.
func NewEmbedder(client *genai.Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbedModel
	}
	return &Embedder{client: client, model: model}
}

// EmbedQuery embeds a search query.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, "RETRIEVAL_QUERY")
}

// EmbedDocument embeds a passage of document text.
func (e *Embedder) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, "RETRIEVAL_DOCUMENT")
}

func (e *Embedder) embed(ctx context.Context, text, taskType string) ([]float32, error) {
	if text == "" {
		return nil, locqa.Errorf(locqa.EINVALID, "text required")
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		TaskType: taskType,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, locqa.Errorf(locqa.ETIMEOUT, "gemini embedding timed out: %s", err)
		}
		return nil, locqa.Errorf(locqa.EUNAVAILABLE, "gemini embedding failed: %s", err)
	}
	if result == nil || len(result.Embeddings) == 0 || result.Embeddings[0] == nil {
		return nil, locqa.Errorf(locqa.EINTERNAL, "gemini returned no embedding")
	}

	return result.Embeddings[0].Values, nil
}
