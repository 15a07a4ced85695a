package main

import (
	"bufio"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/fs"
	locslog "github.com/fwojciec/locqa/slog"
)

// Run executes the code command.
func (c *CodeCmd) Run(deps *Dependencies) error {
	repo := fs.NewRepo(c.Dir)

	manifest, err := locqa.BuildManifest(deps.Ctx, repo, deps.Config.PreviewChars)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locqa.ErrorMessage(err))
		return err
	}
	if len(manifest) == 0 {
		return fmt.Errorf("no code files found in %q", c.Dir)
	}

	memory := locqa.NewFileMemory(deps.Config.FileCacheCap)
	strategy := locslog.NewLoggingStrategy(
		locqa.NewDirectedStrategy(deps.Completer, repo, manifest, memory, deps.Config), deps.Logger)
	session := locqa.NewCodeSession(strategy, manifest, memory, deps.Completer, deps.Config)

	if c.Question != "" {
		answer, summary := session.RunQuery(deps.Ctx, c.Question)
		fmt.Fprintln(deps.Stdout, answer)
		printSummary(deps, summary)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Codebase query ready with %d files. Type '/help' for commands.\n", len(manifest))

	scanner := bufio.NewScanner(deps.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(deps.Stdout, "Code Query: ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		if strings.HasPrefix(query, "/") {
			if c.runCommand(deps, session, repo, query) {
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
func (c *CodeCmd) runCommand(deps *Dependencies, session *locqa.CodeSession, repo *fs.Repo, query string) bool {
	cmd, arg, _ := strings.Cut(query, " ")
	cmd = strings.ToLower(cmd)
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/quit", "/exit":
		fmt.Fprintln(deps.Stdout, "Exiting codebase query mode.")
		return true

	case "/help":
		fmt.Fprintln(deps.Stdout, "\nAvailable commands:")
		fmt.Fprintln(deps.Stdout, "  /ls [path]       - List files (optionally in a specific path)")
		fmt.Fprintln(deps.Stdout, "  /read <file>     - Read a specific file")
		fmt.Fprintln(deps.Stdout, "  /search <term>   - Search for files containing term")
		fmt.Fprintln(deps.Stdout, "  /tree            - Show directory tree")
		fmt.Fprintln(deps.Stdout, "  /memory          - Show cached files in memory")
		fmt.Fprintln(deps.Stdout, "  /clear           - Clear file memory cache")
		fmt.Fprintln(deps.Stdout, "  /help            - Show this help")
		fmt.Fprintln(deps.Stdout, "  /exit or /quit   - Exit codebase query mode")
		fmt.Fprintln(deps.Stdout, "")

	case "/memory":
		paths := session.CachedPaths()
		if len(paths) == 0 {
			fmt.Fprintln(deps.Stdout, "\nNo files in memory cache.")
		} else {
			fmt.Fprintf(deps.Stdout, "\nCached files (%d):\n", len(paths))
			for _, p := range paths {
				fmt.Fprintf(deps.Stdout, "  %s\n", p)
			}
		}
		fmt.Fprintln(deps.Stdout, "")

	case "/clear":
		session.ClearCache()
		fmt.Fprintln(deps.Stdout, "Memory cache cleared.")

	case "/ls":
		c.listFiles(deps, session, arg)

	case "/read":
		if arg == "" {
			fmt.Fprintln(deps.Stdout, "Usage: /read <filename>")
			break
		}
		content, err := repo.ReadFile(deps.Ctx, arg)
		if err != nil {
			fmt.Fprintf(deps.Stdout, "File not found: %s\n", arg)
			break
		}
		fmt.Fprintf(deps.Stdout, "\n--- %s ---\n%s\n--- End of %s ---\n", arg, content, arg)

	case "/search":
		if arg == "" {
			fmt.Fprintln(deps.Stdout, "Usage: /search <term>")
			break
		}
		c.searchFiles(deps, session, repo, arg)

	case "/tree":
		c.printTree(deps, session)

	default:
		fmt.Fprintln(deps.Stdout, "Unknown command. Type '/help' for available commands.")
	}
	return false
}

// listFiles prints manifest paths, optionally restricted to a prefix.
func (c *CodeCmd) listFiles(deps *Dependencies, session *locqa.CodeSession, prefix string) {
	const maxShown = 50

	var matched []string
	for _, entry := range session.Manifest() {
		if prefix == "" || strings.HasPrefix(entry.Path, strings.TrimSuffix(prefix, "/")+"/") || entry.Path == prefix {
			matched = append(matched, entry.Path)
		}
	}
	if len(matched) == 0 {
		fmt.Fprintf(deps.Stdout, "No files found in %q\n", prefix)
		return
	}

	label := prefix
	if label == "" {
		label = "/"
	}
	fmt.Fprintf(deps.Stdout, "\nFiles in '%s':\n", label)
	for _, p := range matched[:min(len(matched), maxShown)] {
		fmt.Fprintf(deps.Stdout, "  %s\n", p)
	}
	if len(matched) > maxShown {
		fmt.Fprintf(deps.Stdout, "  ... and %d more files\n", len(matched)-maxShown)
	}
	fmt.Fprintln(deps.Stdout, "")
}

// searchFiles reports which files contain the term, case-insensitively.
func (c *CodeCmd) searchFiles(deps *Dependencies, session *locqa.CodeSession, repo *fs.Repo, term string) {
	const maxShown = 20

	var matched []string
	for _, entry := range session.Manifest() {
		content, err := repo.ReadFile(deps.Ctx, entry.Path)
		if err != nil {
			continue
		}
		if locqa.ContainsKeyword(content, term) {
			matched = append(matched, entry.Path)
		}
	}
	if len(matched) == 0 {
		fmt.Fprintf(deps.Stdout, "No files found containing %q\n", term)
		return
	}

	fmt.Fprintf(deps.Stdout, "\nFound %q in %d files:\n", term, len(matched))
	for _, p := range matched[:min(len(matched), maxShown)] {
		fmt.Fprintf(deps.Stdout, "  %s\n", p)
	}
	if len(matched) > maxShown {
		fmt.Fprintf(deps.Stdout, "  ... and %d more files\n", len(matched)-maxShown)
	}
	fmt.Fprintln(deps.Stdout, "")
}

// printTree shows a condensed directory structure.
func (c *CodeCmd) printTree(deps *Dependencies, session *locqa.CodeSession) {
	const (
		maxDirs        = 20
		maxFilesPerDir = 5
		maxRootFiles   = 10
	)

	tree := make(map[string][]string)
	for _, entry := range session.Manifest() {
		dir := path.Dir(entry.Path)
		if dir == "." {
			dir = ""
		}
		tree[dir] = append(tree[dir], path.Base(entry.Path))
	}

	fmt.Fprintln(deps.Stdout, "\nDirectory structure:")

	if root := tree[""]; len(root) > 0 {
		fmt.Fprintln(deps.Stdout, "  /")
		sort.Strings(root)
		for _, f := range root[:min(len(root), maxRootFiles)] {
			fmt.Fprintf(deps.Stdout, "    %s\n", f)
		}
	}

	dirs := make([]string, 0, len(tree))
	for dir := range tree {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)

	for _, dir := range dirs[:min(len(dirs), maxDirs)] {
		fmt.Fprintf(deps.Stdout, "  %s/\n", dir)
		files := tree[dir]
		sort.Strings(files)
		for _, f := range files[:min(len(files), maxFilesPerDir)] {
			fmt.Fprintf(deps.Stdout, "    %s\n", f)
		}
		if len(files) > maxFilesPerDir {
			fmt.Fprintf(deps.Stdout, "    ... and %d more files\n", len(files)-maxFilesPerDir)
		}
	}
	if len(dirs) > maxDirs {
		fmt.Fprintf(deps.Stdout, "  ... and %d more directories\n", len(dirs)-maxDirs)
	}
	fmt.Fprintln(deps.Stdout, "")
}
