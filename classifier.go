package locqa

import (
	"context"
	"fmt"
	"strings"
)

// Classifier decides, in a single model call, whether a query needs
// retrieval at all. Malformed model output degrades through a keyword
// scan to a fixed default and never propagates as an error: an
// ungrounded direct answer is worse than an unnecessary search, so the
// defaults fail open toward searching.
type Classifier struct {
	completer Completer
	cfg       Config
}

// NewClassifier creates a Classifier using the helper model from cfg.
func NewClassifier(completer Completer, cfg Config) *Classifier {
	return &Classifier{completer: completer, cfg: cfg}
}

// Classify decides whether a document-mode query requires searching the
// knowledge base (ActionSearch) or can be answered directly
// (ActionDirect).
func (c *Classifier) Classify(ctx context.Context, query string) Decision {
	prompt := c.buildDocPrompt(query)

	reply, err := c.completer.Complete(ctx, prompt, c.helperOpts())
	if err != nil {
		return Decision{Action: ActionSearch, Reason: "classification uncertain"}
	}

	var d Decision
	if DecodeJSONObject(reply, &d) && validDocAction(d.Action) {
		return d
	}

	// Keyword fallback: SEARCH before DIRECT, defaulting to search.
	if ContainsKeyword(reply, string(ActionSearch)) {
		return Decision{Action: ActionSearch, Reason: "requires knowledge base"}
	}
	if ContainsKeyword(reply, string(ActionDirect)) {
		return Decision{Action: ActionDirect, Reason: "general conversation"}
	}
	return Decision{Action: ActionSearch, Reason: "classification uncertain"}
}

// ClassifyCode decides whether a code-mode query requires searching the
// codebase (ActionSearchCode), can be answered from already cached
// files (ActionUseMemory), or is a general programming question
// (ActionDirect). cachedPaths lists the currently cached file paths,
// not their content.
func (c *Classifier) ClassifyCode(ctx context.Context, query string, cachedPaths []string) Decision {
	prompt := c.buildCodePrompt(query, cachedPaths)

	reply, err := c.completer.Complete(ctx, prompt, c.helperOpts())
	if err != nil {
		return Decision{Action: ActionSearchCode, Reason: "classification uncertain"}
	}

	var d Decision
	if DecodeJSONObject(reply, &d) && validCodeAction(d.Action) {
		return d
	}

	// Keyword fallback. SEARCH_CODE is tested first: the bare SEARCH
	// substring would otherwise shadow it.
	switch {
	case ContainsKeyword(reply, string(ActionSearchCode)):
		return Decision{Action: ActionSearchCode, Reason: "requires codebase analysis"}
	case ContainsKeyword(reply, string(ActionUseMemory)):
		return Decision{Action: ActionUseMemory, Reason: "references loaded files"}
	case ContainsKeyword(reply, string(ActionDirect)):
		return Decision{Action: ActionDirect, Reason: "general programming question"}
	}
	return Decision{Action: ActionSearchCode, Reason: "classification uncertain"}
}

func (c *Classifier) helperOpts() CompleteOptions {
	return CompleteOptions{
		Model:         c.cfg.HelperModel,
		ContextWindow: c.cfg.HelperContextWindow,
	}
}

func validDocAction(a Action) bool {
	return a == ActionSearch || a == ActionDirect
}

func validCodeAction(a Action) bool {
	return a == ActionSearchCode || a == ActionUseMemory || a == ActionDirect
}

func (c *Classifier) buildDocPrompt(query string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a query classifier for %s, an assistant that answers questions about a local documentation knowledge base. ", c.cfg.BotName)
	sb.WriteString("Determine if the following user query requires searching the knowledge base or can be answered directly with general conversation.\n\n")
	fmt.Fprintf(&sb, "User Query: %s\n\n", query)
	sb.WriteString(`The knowledge base contains technical documentation, guides, setup instructions, coding standards, and engineering documentation.

Instructions:
- The assistant cannot see the knowledge base unless it searches it, so any query that needs specific documentation must be classified as "SEARCH".
- Respond "SEARCH" if the query asks for specific technical information, documentation, how-to guides, or factual knowledge that would be in a knowledge base.
- Respond "DIRECT" if the query is a greeting, casual conversation, or a general question that does not require specific documentation.

Examples:
- "hi" -> DIRECT (greeting)
- "how are you" -> DIRECT (casual)
- "how to setup git" -> SEARCH (technical)
- "python coding standards" -> SEARCH (documentation)

Respond in JSON format:
{"action": "SEARCH|DIRECT", "reason": "brief explanation"}`)
	return sb.String()
}

func (c *Classifier) buildCodePrompt(query string, cachedPaths []string) string {
	var sb strings.Builder
	sb.WriteString("You are a query classifier for a code analysis assistant. Determine if the user's query requires searching and analyzing code files, or can be answered directly with general programming knowledge.\n\n")
	fmt.Fprintf(&sb, "User Query: %s\n", query)

	if len(cachedPaths) > 0 {
		sb.WriteString("\nCurrently loaded files in memory:\n")
		for _, path := range cachedPaths {
			fmt.Fprintf(&sb, "- %s\n", path)
		}
	}

	sb.WriteString(`
Instructions:
- Respond "SEARCH_CODE" if the query asks about:
  * Specific implementation details in THIS codebase
  * How a particular feature works in THIS project
  * Where something is located in the code
  * Code structure, architecture, or organization
  * Debugging or understanding existing code

- Note that the assistant cannot directly access the codebase unless instructed to search it, so if the query requires anything from the codebase, it must be classified as "SEARCH_CODE".

- Respond "USE_MEMORY" if the query references information from currently loaded files (follow-up questions).

- Respond "DIRECT" if the query is:
  * A general programming question not specific to this codebase
  * A theoretical or conceptual programming question
  * A request for code examples or tutorials
  * A greeting or casual conversation

Respond in JSON format:
{"action": "SEARCH_CODE|USE_MEMORY|DIRECT", "reason": "brief explanation"}`)
	return sb.String()
}
