// Package trafilatura extracts main content from HTML pages using the
// go-trafilatura library.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/locqa"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements locqa.Extractor at compile time.
var _ locqa.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to strip navigation, footers and other
// boilerplate from documentation pages before chunking.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*locqa.ExtractResult, error) {
	if rawHTML == "" {
		return nil, locqa.Errorf(locqa.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &locqa.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
