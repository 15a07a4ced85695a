package locqa

import (
	"context"
	"fmt"
	"strings"
)

// Assessor rates how well a draft answer is supported by the gathered
// context. One model call per assessment; structured JSON is tried
// first, then a keyword scan. A fully unreadable assessment defaults to
// MEDIUM in both modes: it must neither force premature termination
// (HIGH) nor runaway refinement (LOW with no signal).
type Assessor struct {
	completer Completer
	cfg       Config
}

// NewAssessor creates an Assessor using the helper model from cfg.
func NewAssessor(completer Completer, cfg Config) *Assessor {
	return &Assessor{completer: completer, cfg: cfg}
}

// Assess rates the answer's support by the context items. The returned
// follow-up query, if any, is advisory only.
func (a *Assessor) Assess(ctx context.Context, query string, items []ContextItem, answer string) Assessment {
	prompt := a.buildPrompt(query, items, answer)

	reply, err := a.completer.Complete(ctx, prompt, CompleteOptions{
		Model:         a.cfg.HelperModel,
		ContextWindow: a.cfg.HelperContextWindow,
	})
	if err != nil {
		return Assessment{Confidence: ConfidenceMedium, Reason: "assessment failed"}
	}

	var result Assessment
	if DecodeJSONObject(reply, &result) && validConfidence(result.Confidence) {
		return result
	}

	// Keyword fallback. HIGH stops the loop and LOW keeps the current
	// query as the refinement signal.
	switch {
	case ContainsKeyword(reply, string(ConfidenceHigh)):
		return Assessment{Confidence: ConfidenceHigh, Reason: "parsed from text"}
	case ContainsKeyword(reply, string(ConfidenceLow)):
		return Assessment{Confidence: ConfidenceLow, Reason: "parsed from text", FollowUp: query}
	case ContainsKeyword(reply, string(ConfidenceMedium)):
		return Assessment{Confidence: ConfidenceMedium, Reason: "parsed from text", FollowUp: query}
	}
	return Assessment{Confidence: ConfidenceMedium, Reason: "assessment failed"}
}

func validConfidence(c Confidence) bool {
	return c == ConfidenceHigh || c == ConfidenceMedium || c == ConfidenceLow
}

func (a *Assessor) buildPrompt(query string, items []ContextItem, answer string) string {
	var sb strings.Builder
	sb.WriteString("You are assessing whether an answer is well-supported by the context.\n\n")
	fmt.Fprintf(&sb, "Question: %s\n", query)
	fmt.Fprintf(&sb, "Answer: %s\n\n", answer)

	// Chunks are small enough to show in full; files are listed by path.
	sb.WriteString("Context used:\n")
	for _, item := range items {
		if item.Kind == KindChunk {
			fmt.Fprintf(&sb, "- %s\n", item.Text)
		} else {
			fmt.Fprintf(&sb, "- %s\n", item.Label)
		}
	}

	sb.WriteString(`
Instructions:
1. Rate confidence: HIGH, MEDIUM, or LOW
   - HIGH: Answer is directly supported by context with clear evidence
   - MEDIUM: Answer is partially supported but missing some details
   - LOW: Answer is not well-supported or context is insufficient

2. If confidence is not HIGH, suggest a follow-up search query that could find the missing information. Suggest a search query, NOT a command to search one.

Respond in JSON format:
{"confidence": "HIGH|MEDIUM|LOW", "reason": "brief explanation", "follow_up_query": "suggested query or empty"}`)
	return sb.String()
}
