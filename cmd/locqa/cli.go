package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    locqa.Config
	DB        *sqlite.DB
	Documents locqa.DocumentService
	Chunks    locqa.ChunkService
	Retriever locqa.Retriever
	Completer locqa.Completer
	Embedder  locqa.Embedder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose     bool   `short:"v" help:"Enable debug logging"`
	Backend     string `enum:"ollama,gemini" default:"ollama" help:"Model backend (ollama or gemini)"`
	OllamaURL   string `name:"ollama-url" help:"Ollama server address (default http://localhost:11434)"`
	ChatModel   string `help:"Override the chat model"`
	HelperModel string `help:"Override the helper model"`
	EmbedModel  string `help:"Override the embedding model (ollama backend)"`

	Index IndexCmd `cmd:"" help:"Ingest an HTML documentation dump into the knowledge base"`
	Chat  ChatCmd  `cmd:"" help:"Interactive question answering over the knowledge base"`
	Code  CodeCmd  `cmd:"" help:"Interactive question answering over a source code tree"`
	Stats StatsCmd `cmd:"" help:"Show knowledge base statistics"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Dir         string `arg:"" help:"Directory containing the HTML dump"`
	LinkMode    string `enum:"wiki,title,url,strip" default:"wiki" help:"Internal link rendering"`
	Concurrency int    `short:"c" default:"10" help:"Concurrent extraction limit"`
	EmbedRPS    int    `name:"embed-rps" default:"10" help:"Embedding requests per second"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	Question string `arg:"" optional:"" help:"One-shot question (omit for interactive mode)"`
}

// CodeCmd is the "code" subcommand.
type CodeCmd struct {
	Dir      string `arg:"" help:"Root of the source code tree"`
	Question string `arg:"" optional:"" help:"One-shot question (omit for interactive mode)"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}
