package locqa

import (
	"context"
	"log/slog"
	"time"
)

// Fixed user-visible answers for terminal loop outcomes.
const (
	// NoInformationAnswer is returned when the first document retrieval
	// finds nothing.
	NoInformationAnswer = "I don't know - no relevant information found."

	// NoFilesAnswer is returned when the first directed selection
	// yields zero files: no plausible context exists for the query.
	NoFilesAnswer = "I couldn't identify any relevant files for this query."

	// GatewayFailureAnswer is returned when answer generation fails.
	// Terminal for the turn, not retried; the session continues.
	GatewayFailureAnswer = "I encountered an error while processing your query. Please try again."
)

// LoopResult is the terminal output of one agentic loop run.
type LoopResult struct {
	// Answer is the final answer text.
	Answer string

	// Context holds the items actually accumulated, in gathering order
	// with no duplicate identifiers.
	Context []ContextItem

	// Iterations is the number of retrieve/answer/assess cycles run.
	Iterations int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Loop is the agentic retrieval controller: a bounded
// search-assess-refine state machine. Each iteration retrieves context
// for the current query, drafts an answer over everything accumulated
// so far, and assesses confidence; it stops on HIGH confidence, on
// exhausting iterations, or when no new refinement direction is found.
type Loop struct {
	strategy  Strategy
	completer Completer
	assessor  *Assessor
	cfg       Config
	mode      AnswerMode
}

// NewLoop creates a loop controller. mode selects the answer prompt
// variant; ModeCode switches the empty-first-retrieval answer to the
// total-failure message.
func NewLoop(strategy Strategy, completer Completer, assessor *Assessor, cfg Config, mode AnswerMode) *Loop {
	return &Loop{
		strategy:  strategy,
		completer: completer,
		assessor:  assessor,
		cfg:       cfg,
		mode:      mode,
	}
}

// Run executes the loop for a query. history is prior conversation
// turns passed through to answer generation.
func (l *Loop) Run(ctx context.Context, query string, history []Turn) LoopResult {
	start := time.Now()

	var accumulated []ContextItem
	seen := make(map[string]bool)
	currentQuery := query
	var lastAnswer string

	maxIterations := l.cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 3
	}

	for iteration := 1; iteration <= maxIterations; iteration++ {
		if iteration > 1 {
			slog.Info("refining", "iteration", iteration, "query", currentQuery)
		}

		result, err := l.strategy.Retrieve(ctx, currentQuery, seen)
		if err != nil {
			// Strategies absorb their own failures; an error here is a
			// programming mistake, treated as empty retrieval.
			slog.Warn("retrieval error", "error", err)
			result = StrategyResult{}
		}

		// Sufficient means already accumulated context answers the
		// query; honored before merging so the terminal context only
		// lists items the returned answer actually saw. Meaningful
		// only once something has been answered.
		if result.Sufficient && iteration > 1 {
			return LoopResult{
				Answer:     lastAnswer,
				Context:    accumulated,
				Iterations: iteration,
				Elapsed:    time.Since(start),
			}
		}

		if len(result.Items) == 0 {
			if iteration == 1 {
				return LoopResult{
					Answer:     l.emptyAnswer(),
					Iterations: iteration,
					Elapsed:    time.Since(start),
				}
			}
			// A refinement attempt came up empty: keep prior progress.
			return LoopResult{
				Answer:     lastAnswer,
				Context:    accumulated,
				Iterations: iteration,
				Elapsed:    time.Since(start),
			}
		}

		for _, item := range result.Items {
			if seen[item.ID] {
				continue
			}
			seen[item.ID] = true
			accumulated = append(accumulated, item)
		}
		slog.Debug("gathered context", "iteration", iteration, "new", len(result.Items), "total", len(accumulated))

		prompt := BuildAnswerPrompt(l.cfg, l.mode, query, accumulated, iteration)
		answer, err := l.completer.Complete(ctx, prompt, CompleteOptions{
			Model:         l.cfg.ChatModel,
			ContextWindow: l.cfg.ChatContextWindow,
			History:       history,
		})
		if err != nil || answer == "" {
			slog.Warn("answer generation failed", "error", err)
			return LoopResult{
				Answer:     GatewayFailureAnswer,
				Context:    accumulated,
				Iterations: iteration,
				Elapsed:    time.Since(start),
			}
		}
		lastAnswer = answer

		assessment := l.assessor.Assess(ctx, query, accumulated, answer)
		slog.Debug("assessed", "iteration", iteration, "confidence", assessment.Confidence)

		if assessment.Confidence == ConfidenceHigh || iteration == maxIterations {
			return LoopResult{
				Answer:     answer,
				Context:    accumulated,
				Iterations: iteration,
				Elapsed:    time.Since(start),
			}
		}

		if assessment.FollowUp == "" || assessment.FollowUp == currentQuery {
			// No new direction to explore.
			return LoopResult{
				Answer:     answer,
				Context:    accumulated,
				Iterations: iteration,
				Elapsed:    time.Since(start),
			}
		}
		currentQuery = assessment.FollowUp
	}

	// Unreachable: every path inside the loop returns by max iteration.
	return LoopResult{
		Answer:     lastAnswer,
		Context:    accumulated,
		Iterations: maxIterations,
		Elapsed:    time.Since(start),
	}
}

func (l *Loop) emptyAnswer() string {
	if l.mode == ModeCode {
		return NoFilesAnswer
	}
	return NoInformationAnswer
}
