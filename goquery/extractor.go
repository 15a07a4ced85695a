// Package goquery provides a CSS-selector based content extractor for
// local HTML dumps. It is the fallback for pages where trafilatura
// yields nothing, such as heavily templated intranet exports.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/locqa"
)

// Ensure Extractor implements locqa.Extractor at compile time.
var _ locqa.Extractor = (*Extractor)(nil)

// minContentChars is the minimum text length for a container element to
// be considered the main content area.
const minContentChars = 300

// noiseSelector matches elements removed before content selection.
const noiseSelector = "script, style, noscript, iframe, nav, footer, header, #breadcrumbs"

// Extractor selects the main content area of an HTML page using CSS
// selectors. Selection order: an explicit #main-content container, then
// the longest semantic container with enough text, then the body.
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

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, locqa.Errorf(locqa.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(noiseSelector).Remove()

	main := selectMainContent(doc)
	contentHTML, err := main.Html()
	if err != nil {
		return nil, err
	}

	return &locqa.ExtractResult{
		Title:       extractTitle(doc),
		ContentHTML: strings.TrimSpace(contentHTML),
	}, nil
}

// selectMainContent returns the most plausible content container.
func selectMainContent(doc *goquery.Document) *goquery.Selection {
	if mc := doc.Find("#main-content").First(); mc.Length() > 0 {
		return mc
	}

	var best *goquery.Selection
	bestLen := 0
	doc.Find("main, article, section, div").Each(func(_ int, sel *goquery.Selection) {
		n := len(strings.TrimSpace(sel.Text()))
		if n > minContentChars && n > bestLen {
			best = sel
			bestLen = n
		}
	})
	if best != nil {
		return best
	}

	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

// extractTitle prefers the og:title meta tag over the title element.
func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		return strings.TrimSpace(og)
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
