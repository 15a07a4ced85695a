// Package gemini provides Google Gemini implementations of the locqa
// language model gateway and embedder.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/locqa"
	"google.golang.org/genai"
)

// Default models. The caller overrides them per call via
// CompleteOptions.Model when the session distinguishes chat and helper
// models.
const (
	DefaultModel      = "gemini-3-flash-preview"
	DefaultEmbedModel = "gemini-embedding-001"
)

// Ensure Completer implements locqa.Completer at compile time.
var _ locqa.Completer = (*Completer)(nil)

// Completer implements locqa.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
}

// NewCompleter creates a new Completer.
func NewCompleter(client *genai.Client) *Completer {
	return &Completer{client: client}
}

// Complete sends the prompt and prior conversation turns to Gemini and
// returns the reply text.
func (c *Completer) Complete(ctx context.Context, prompt string, opts locqa.CompleteOptions) (string, error) {
	if prompt == "" {
		return "", locqa.Errorf(locqa.EINVALID, "prompt required")
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	var contents []*genai.Content
	for _, turn := range opts.History {
		contents = append(contents,
			genai.NewContentFromText(turn.User, genai.RoleUser),
			genai.NewContentFromText(turn.Assistant, genai.RoleModel),
		)
	}
	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	result, err := c.client.Models.GenerateContent(ctx, model, contents, buildConfig())
	if err != nil {
		if ctx.Err() != nil {
			return "", locqa.Errorf(locqa.ETIMEOUT, "gemini request timed out: %s", err)
		}
		return "", locqa.Errorf(locqa.EUNAVAILABLE, "gemini request failed: %s", err)
	}
	if result == nil {
		return "", locqa.Errorf(locqa.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// buildConfig returns the GenerateContentConfig for Gemini API calls.
func buildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		Temperature: &temp,
	}
}
