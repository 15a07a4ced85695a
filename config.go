package locqa

// Config carries the tunable parameters for a query session. It is
// constructed once at session start and passed explicitly into
// components; there is no package-level mutable configuration.
type Config struct {
	// BotName is used in prompts to identify the assistant.
	BotName string

	// ChatModel answers questions; HelperModel handles classification,
	// assessment, and file selection.
	ChatModel           string
	ChatContextWindow   int
	HelperModel         string
	HelperContextWindow int

	// TopK is the chunk fan-out per vector retrieval.
	TopK int

	// MaxIterations bounds the search-assess-refine loop.
	MaxIterations int

	// HistoryLength is the maximum number of retained conversation
	// turns; AssistantCap truncates stored assistant replies.
	HistoryLength int
	AssistantCap  int

	// FileCacheCap bounds the code-mode file content cache after a
	// loop turn completes.
	FileCacheCap int

	// FileHeadChars and FileTailChars bound loaded file content:
	// files longer than FileHeadChars+FileTailChars keep a head and a
	// tail segment with an omission marker in between.
	FileHeadChars int
	FileTailChars int

	// ManifestListingCap bounds how many manifest entries are shown to
	// the model; the count of omitted entries is appended.
	ManifestListingCap int

	// PreviewChars bounds the manifest entry preview.
	PreviewChars int
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		BotName:             "locqa",
		ChatModel:           "llama3.1",
		ChatContextWindow:   16000,
		HelperModel:         "mistral",
		HelperContextWindow: 4096,
		TopK:                5,
		MaxIterations:       3,
		HistoryLength:       4,
		AssistantCap:        500,
		FileCacheCap:        10,
		FileHeadChars:       6000,
		FileTailChars:       2000,
		ManifestListingCap:  200,
		PreviewChars:        500,
	}
}
