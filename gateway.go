package locqa

import "context"

// Turn is one user/assistant exchange kept as conversation history.
// The assistant text is length-capped before storage; history is used
// only as LLM context and never re-parsed.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// CompleteOptions configures a single completion call.
type CompleteOptions struct {
	// Model identifies which model to use. Empty means the
	// implementation's default chat model.
	Model string

	// ContextWindow is the context size hint, in tokens. Zero means
	// the implementation's default.
	ContextWindow int

	// History is prior conversation turns, oldest first.
	History []Turn
}

// Completer sends a prompt to a language model and returns its reply.
//
// Complete blocks until the model responds or the context is canceled.
// Failures carry ETIMEOUT, EUNAVAILABLE, or EINTERNAL codes so callers
// can distinguish transport problems from malformed output.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error)
}
