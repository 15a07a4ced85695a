package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/gemini"
	"github.com/fwojciec/locqa/ollama"
	locslog "github.com/fwojciec/locqa/slog"
	"github.com/fwojciec/locqa/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DocumentService locqa.DocumentService
	ChunkService    locqa.ChunkService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("locqa"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'locqa --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	deps.Logger = logger

	cfg := locqa.DefaultConfig()
	if cli.Backend == backendGemini {
		cfg.ChatModel = gemini.DefaultModel
		cfg.HelperModel = gemini.DefaultModel
	}
	if cli.ChatModel != "" {
		cfg.ChatModel = cli.ChatModel
	}
	if cli.HelperModel != "" {
		cfg.HelperModel = cli.HelperModel
	}
	deps.Config = cfg

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LOCQA_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.DocumentService = sqlite.NewDocumentService(m.DB)
	m.ChunkService = sqlite.NewChunkService(m.DB)
	deps.DB = m.DB
	deps.Documents = m.DocumentService
	deps.Chunks = m.ChunkService

	// The stats command needs no model backend.
	if cmd != "stats" {
		completer, embedder, err := m.openBackend(ctx, cli, stderr)
		if err != nil {
			return err
		}
		deps.Completer = locslog.NewLoggingCompleter(completer, logger)
		deps.Embedder = locslog.NewLoggingEmbedder(embedder, logger)
		deps.Retriever = locslog.NewLoggingRetriever(
			sqlite.NewSearcher(m.DB, deps.Embedder), logger)
	}

	return kongCtx.Run(deps)
}

const (
	backendOllama = "ollama"
	backendGemini = "gemini"
)

// openBackend connects the selected language model backend.
func (m *Main) openBackend(ctx context.Context, cli *CLI, stderr io.Writer) (locqa.Completer, locqa.Embedder, error) {
	switch cli.Backend {
	case backendGemini:
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewCompleter(client), gemini.NewEmbedder(client, ""), nil

	default:
		completer := ollama.NewCompleter(cli.OllamaURL)
		return completer, ollama.NewEmbedder(completer, cli.EmbedModel), nil
	}
}

func defaultDBPath() string {
	if path := os.Getenv("LOCQA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "locqa.db"
	}
	dir := filepath.Join(home, ".locqa")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "locqa.db")
}
