package locqa

import (
	"regexp"
	"strings"
)

// Default chunking parameters.
const (
	DefaultChunkMaxChars = 1200
	DefaultChunkOverlap  = 150
)

// sentenceBoundaryRe splits on whitespace following sentence-ending
// punctuation. Go's regexp has no lookbehind, so the punctuation and the
// first rune of the next sentence are captured and re-attached.
var sentenceBoundaryRe = regexp.MustCompile(`([.!?])\s+([A-Z0-9])`)

// SplitChunks splits document text into overlapping chunks of at most
// maxChars characters, each prefixed with the document title so a chunk
// remains interpretable in isolation. Splits prefer sentence boundaries;
// overlap carries the tail of the previous chunk into the next one.
func SplitChunks(title, text string, maxChars, overlap int) []string {
	if maxChars <= 0 {
		maxChars = DefaultChunkMaxChars
	}
	if overlap < 0 {
		overlap = 0
	}

	sents := splitSentences(strings.TrimSpace(text))
	header := strings.TrimSpace(title)

	var out []string
	var buf string
	for _, s := range sents {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if buf != "" && len(buf)+1+len(s) > maxChars {
			out = append(out, header+"\n"+strings.TrimSpace(buf))
			if overlap > 0 && len(buf) > overlap {
				buf = buf[len(buf)-overlap:]
			} else if overlap == 0 {
				buf = ""
			}
		}
		if buf != "" {
			buf += " "
		}
		buf += s
	}
	if strings.TrimSpace(buf) != "" {
		out = append(out, header+"\n"+strings.TrimSpace(buf))
	}
	return out
}

// splitSentences splits text at sentence boundaries followed by a
// capital letter or digit.
func splitSentences(text string) []string {
	if text == "" {
		return nil
	}
	marked := sentenceBoundaryRe.ReplaceAllString(text, "$1\x00$2")
	return strings.Split(marked, "\x00")
}

// GuessTitle returns the first non-empty line of text, capped at 200
// characters. Returns "Untitled" if no such line exists.
func GuessTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			if len(line) > 200 {
				return line[:200]
			}
			return line
		}
	}
	return "Untitled"
}
