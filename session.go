package locqa

import (
	"context"
	"log/slog"
	"time"
)

// ContextSummary describes the context actually used to answer one
// query, for display by the session layer.
type ContextSummary struct {
	// Direct is true when the query was answered without retrieval.
	Direct bool

	// FromMemory is true when a code query was answered from cached
	// files without a new search.
	FromMemory bool

	// Items is the number of context items used.
	Items int

	// Sources lists the distinct originating documents or files,
	// in gathering order.
	Sources []string

	// Iterations and Elapsed report loop telemetry; zero for direct
	// answers.
	Iterations int
	Elapsed    time.Duration
}

func summarize(result LoopResult) ContextSummary {
	summary := ContextSummary{
		Items:      len(result.Context),
		Iterations: result.Iterations,
		Elapsed:    result.Elapsed,
	}
	seen := make(map[string]bool)
	for _, item := range result.Context {
		if item.Source == "" || seen[item.Source] {
			continue
		}
		seen[item.Source] = true
		summary.Sources = append(summary.Sources, item.Source)
	}
	return summary
}

// DocSession is one interactive run of the document query loop. It
// owns the conversation history and processes turns strictly
// sequentially; it is not safe for concurrent use.
type DocSession struct {
	classifier *Classifier
	assessor   *Assessor
	strategy   Strategy
	completer  Completer
	history    *History
	cfg        Config
	mode       AnswerMode
}

// NewDocSession creates a document session using the given retrieval
// strategy, typically a VectorStrategy wrapped with logging at the
// composition root. The session starts in search mode.
func NewDocSession(strategy Strategy, completer Completer, cfg Config) *DocSession {
	return &DocSession{
		classifier: NewClassifier(completer, cfg),
		assessor:   NewAssessor(completer, cfg),
		strategy:   strategy,
		completer:  completer,
		history:    NewHistory(cfg.HistoryLength, cfg.AssistantCap),
		cfg:        cfg,
		mode:       ModeSearch,
	}
}

// SetMode switches the answer prompt variant. Returns EINVALID for
// non-document modes.
func (s *DocSession) SetMode(mode AnswerMode) error {
	switch mode {
	case ModeSearch, ModeAsk, ModeTeach:
		s.mode = mode
		return nil
	}
	return Errorf(EINVALID, "invalid document answer mode %q", mode)
}

// Mode returns the current answer mode.
func (s *DocSession) Mode() AnswerMode {
	return s.mode
}

// RunQuery answers one query: a single classification decides between
// a direct conversational answer and the agentic retrieval loop. The
// exchange is appended to history either way.
func (s *DocSession) RunQuery(ctx context.Context, query string) (string, ContextSummary) {
	decision := s.classifier.Classify(ctx, query)

	var answer string
	var summary ContextSummary

	if decision.Action == ActionDirect {
		slog.Debug("direct response", "reason", decision.Reason)
		answer = s.direct(ctx, query)
		summary = ContextSummary{Direct: true}
	} else {
		loop := NewLoop(s.strategy, s.completer, s.assessor, s.cfg, s.mode)
		result := loop.Run(ctx, query, s.history.Turns())
		answer = result.Answer
		summary = summarize(result)
	}

	s.history.Append(query, answer)
	return answer, summary
}

func (s *DocSession) direct(ctx context.Context, query string) string {
	prompt := BuildDirectPrompt(s.cfg, s.mode, query)
	answer, err := s.completer.Complete(ctx, prompt, CompleteOptions{
		Model:         s.cfg.ChatModel,
		ContextWindow: s.cfg.ChatContextWindow,
		History:       s.history.Turns(),
	})
	if err != nil || answer == "" {
		slog.Warn("direct answer failed", "error", err)
		return GatewayFailureAnswer
	}
	return answer
}

// History returns the session's conversation history.
func (s *DocSession) History() *History {
	return s.history
}

// CodeSession is one interactive run of the code query loop. It owns
// the conversation history, the file content cache, and the manifest
// snapshot; it is not safe for concurrent use.
type CodeSession struct {
	classifier *Classifier
	assessor   *Assessor
	completer  Completer
	strategy   Strategy
	manifest   []FileManifestEntry
	memory     *FileMemory
	history    *History
	cfg        Config
}

// NewCodeSession creates a code session over a manifest snapshot built
// once at session start. The strategy must share the given memory so
// that files loaded during the loop land in the session cache.
func NewCodeSession(strategy Strategy, manifest []FileManifestEntry, memory *FileMemory, completer Completer, cfg Config) *CodeSession {
	return &CodeSession{
		classifier: NewClassifier(completer, cfg),
		assessor:   NewAssessor(completer, cfg),
		completer:  completer,
		strategy:   strategy,
		manifest:   manifest,
		memory:     memory,
		history:    NewHistory(cfg.HistoryLength, cfg.AssistantCap),
		cfg:        cfg,
	}
}

// RunQuery answers one code query. The classifier routes between a
// direct answer, answering from cached files, and the directed
// selection loop; the file cache is compacted after a loop turn.
func (s *CodeSession) RunQuery(ctx context.Context, query string) (string, ContextSummary) {
	decision := s.classifier.ClassifyCode(ctx, query, s.memory.Paths())
	action := decision.Action

	// USE_MEMORY with an empty cache degrades to a search.
	if action == ActionUseMemory && s.memory.Len() == 0 {
		slog.Debug("no files in memory, switching to codebase search")
		action = ActionSearchCode
	}

	var answer string
	var summary ContextSummary

	switch action {
	case ActionDirect:
		slog.Debug("direct answer", "reason", decision.Reason)
		answer = s.direct(ctx, query)
		summary = ContextSummary{Direct: true}

	case ActionUseMemory:
		slog.Debug("answering from cached files", "reason", decision.Reason)
		answer = s.fromMemory(ctx, query)
		summary = ContextSummary{
			FromMemory: true,
			Items:      s.memory.Len(),
			Sources:    s.memory.Paths(),
		}

	default:
		loop := NewLoop(s.strategy, s.completer, s.assessor, s.cfg, ModeCode)
		result := loop.Run(ctx, query, s.history.Turns())
		// The cache is unbounded during the search; compact it now
		// that the loop has returned control to the session.
		s.memory.Compact()
		answer = result.Answer
		summary = summarize(result)
	}

	s.history.Append(query, answer)
	return answer, summary
}

func (s *CodeSession) direct(ctx context.Context, query string) string {
	prompt := BuildDirectPrompt(s.cfg, ModeCode, query)
	answer, err := s.completer.Complete(ctx, prompt, CompleteOptions{
		Model:         s.cfg.ChatModel,
		ContextWindow: s.cfg.ChatContextWindow,
		History:       s.history.Turns(),
	})
	if err != nil || answer == "" {
		slog.Warn("direct answer failed", "error", err)
		return GatewayFailureAnswer
	}
	return answer
}

func (s *CodeSession) fromMemory(ctx context.Context, query string) string {
	prompt := BuildMemoryPrompt(s.memory, query)
	answer, err := s.completer.Complete(ctx, prompt, CompleteOptions{
		Model:         s.cfg.ChatModel,
		ContextWindow: s.cfg.ChatContextWindow,
		History:       s.history.Turns(),
	})
	if err != nil || answer == "" {
		slog.Warn("memory answer failed", "error", err)
		return GatewayFailureAnswer
	}
	return answer
}

// CachedPaths returns the cached file paths in insertion order.
// Operates only on session memory; never invokes the loop.
func (s *CodeSession) CachedPaths() []string {
	return s.memory.Paths()
}

// ClearCache empties the file content cache.
func (s *CodeSession) ClearCache() {
	s.memory.Clear()
}

// Manifest returns the read-only manifest snapshot.
func (s *CodeSession) Manifest() []FileManifestEntry {
	return s.manifest
}

// History returns the session's conversation history.
func (s *CodeSession) History() *History {
	return s.history
}
