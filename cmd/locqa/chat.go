package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/locqa"
	locslog "github.com/fwojciec/locqa/slog"
)

// timeRounding keeps elapsed times readable in summaries.
const timeRounding = 10 * time.Millisecond

// Run executes the chat command.
func (c *ChatCmd) Run(deps *Dependencies) error {
	strategy := locslog.NewLoggingStrategy(
		locqa.NewVectorStrategy(deps.Retriever, deps.Config.TopK), deps.Logger)
	session := locqa.NewDocSession(strategy, deps.Completer, deps.Config)

	if c.Question != "" {
		answer, summary := session.RunQuery(deps.Ctx, c.Question)
		fmt.Fprintln(deps.Stdout, answer)
		printSummary(deps, summary)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%s ready. Type '/help' for commands.\n", deps.Config.BotName)

	scanner := bufio.NewScanner(deps.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(deps.Stdout, "Query: ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		if strings.HasPrefix(query, "/") {
			if c.runCommand(deps, session, query) {
				break
			}
			continue
		}

		answer, summary := session.RunQuery(deps.Ctx, query)
		fmt.Fprintf(deps.Stdout, "\n%s\n\n", answer)
		printSummary(deps, summary)
	}
	return scanner.Err()
}

// runCommand handles a slash command. Returns true to exit the session.
func (c *ChatCmd) runCommand(deps *Dependencies, session *locqa.DocSession, query string) bool {
	cmd, arg, _ := strings.Cut(strings.ToLower(query), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit", "/exit":
		return true

	case "/mode":
		mode, ok := parseMode(arg)
		if !ok {
			fmt.Fprintf(deps.Stdout, "Modes: 1=search, 2=ask, 3=teach. Current: %s\n", session.Mode())
			return false
		}
		if err := session.SetMode(mode); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", locqa.ErrorMessage(err))
			return false
		}
		fmt.Fprintf(deps.Stdout, "Mode set to %s.\n", mode)

	case "/help":
		fmt.Fprintln(deps.Stdout, "\nAvailable commands:")
		fmt.Fprintln(deps.Stdout, "  /mode <1|2|3>    - Switch answer mode (1=search, 2=ask, 3=teach)")
		fmt.Fprintln(deps.Stdout, "  /help            - Show this help")
		fmt.Fprintln(deps.Stdout, "  /exit or /quit   - Exit")
		fmt.Fprintln(deps.Stdout, "")

	default:
		fmt.Fprintf(deps.Stdout, "Unknown command %q. Type '/help' for commands.\n", cmd)
	}
	return false
}

func parseMode(arg string) (locqa.AnswerMode, bool) {
	switch arg {
	case "1", "search":
		return locqa.ModeSearch, true
	case "2", "ask":
		return locqa.ModeAsk, true
	case "3", "teach":
		return locqa.ModeTeach, true
	}
	return 0, false
}

// printSummary reports how the last answer was produced.
func printSummary(deps *Dependencies, summary locqa.ContextSummary) {
	switch {
	case summary.Direct:
		deps.Logger.Debug("answered directly")
	case summary.FromMemory:
		fmt.Fprintf(deps.Stdout, "[from %d cached files]\n", summary.Items)
	case len(summary.Sources) > 0:
		fmt.Fprintf(deps.Stdout, "[%d context items from %d sources, %d iterations, %s]\n",
			summary.Items, len(summary.Sources), summary.Iterations, summary.Elapsed.Round(timeRounding))
	}
}
