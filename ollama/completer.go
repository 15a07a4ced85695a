// Package ollama provides Ollama implementations of the locqa language
// model gateway and embedder, talking to a local Ollama server over its
// HTTP API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/locqa"
)

// Default models and server address for a stock local install.
const (
	DefaultURL        = "http://localhost:11434"
	DefaultModel      = "llama3.1"
	DefaultEmbedModel = "nomic-embed-text"
)

// requestTimeout bounds a single completion request. Local models can be
// slow to load on first use, so the bound is generous.
const requestTimeout = 180 * time.Second

// Ensure Completer implements locqa.Completer at compile time.
var _ locqa.Completer = (*Completer)(nil)

// Completer implements locqa.Completer against the Ollama /api/chat
// endpoint. The context window is passed per request via the num_ctx
// option so chat and helper models can use different windows.
type Completer struct {
	client  *http.Client
	baseURL string
}

// NewCompleter creates a new Completer. An empty baseURL selects the
// default local server address.
func NewCompleter(baseURL string) *Completer {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Completer{
		client:  &http.Client{Timeout: requestTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []chatMessage  `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Complete sends the prompt and prior conversation turns to Ollama and
// returns the reply text.
func (c *Completer) Complete(ctx context.Context, prompt string, opts locqa.CompleteOptions) (string, error) {
	if prompt == "" {
		return "", locqa.Errorf(locqa.EINVALID, "prompt required")
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel
	}

	messages := make([]chatMessage, 0, 2*len(opts.History)+1)
	for _, turn := range opts.History {
		messages = append(messages,
			chatMessage{Role: "user", Content: turn.User},
			chatMessage{Role: "assistant", Content: turn.Assistant},
		)
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	req := chatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
	}
	if opts.ContextWindow > 0 {
		req.Options = map[string]any{"num_ctx": opts.ContextWindow}
	}

	var resp chatResponse
	if err := c.post(ctx, "/api/chat", req, &resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Message.Content), nil
}

// post sends a JSON request to the Ollama server and decodes the JSON
// response into out.
func (c *Completer) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return locqa.Errorf(locqa.EINTERNAL, "encode ollama request: %s", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return locqa.Errorf(locqa.EINTERNAL, "build ollama request: %s", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return locqa.Errorf(locqa.ETIMEOUT, "ollama request timed out: %s", err)
		}
		return locqa.Errorf(locqa.EUNAVAILABLE, "cannot reach ollama at %s: %s", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return locqa.Errorf(locqa.EUNAVAILABLE, "ollama: %s", apiErr.Error)
		}
		return locqa.Errorf(locqa.EUNAVAILABLE, "ollama: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return locqa.Errorf(locqa.EINTERNAL, "decode ollama response: %s", err)
	}
	return nil
}

// String returns the server address, useful in startup logs.
func (c *Completer) String() string {
	return fmt.Sprintf("ollama(%s)", c.baseURL)
}
