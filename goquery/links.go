package goquery

import (
	"path"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkMode selects the textual representation of internal links when a
// page is rewritten for the knowledge base.
type LinkMode string

const (
	// LinkModeWiki renders internal links as [[Page Title]].
	LinkModeWiki LinkMode = "wiki"

	// LinkModeTitle renders internal links as their target page title.
	LinkModeTitle LinkMode = "title"

	// LinkModeURL renders internal links as "Title (file.html)".
	LinkModeURL LinkMode = "url"

	// LinkModeStrip renders internal links as their anchor text only.
	LinkModeStrip LinkMode = "strip"
)

// internalLinkRe matches relative links into the same HTML dump,
// ignoring query strings and fragments.
var internalLinkRe = regexp.MustCompile(`(?i)^[./]*([^?#]+\.html)(?:[#?].*)?$`)

// LoadTitleMap parses an index page and returns a map from linked file
// name to anchor text. The map resolves internal link targets to human
// readable titles during rewriting.
func LoadTitleMap(indexHTML string) map[string]string {
	titleMap := make(map[string]string)
	if indexHTML == "" {
		return titleMap
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(indexHTML))
	if err != nil {
		return titleMap
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		m := internalLinkRe.FindStringSubmatch(href)
		if m == nil {
			return
		}
		fname := path.Base(m[1])
		if _, ok := titleMap[fname]; ok {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			text = fname
		}
		titleMap[fname] = text
	})
	return titleMap
}

// RewriteLinks replaces anchor elements in content HTML with a textual
// representation chosen by mode. Internal links resolve through the
// title map; external links keep their text and URL; everything else
// collapses to its anchor text.
func RewriteLinks(contentHTML string, titleMap map[string]string, mode LinkMode) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return "", err
	}

	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		sel.ReplaceWithHtml(linkText(sel, titleMap, mode))
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return out, nil
}

func linkText(sel *goquery.Selection, titleMap map[string]string, mode LinkMode) string {
	text := strings.TrimSpace(sel.Text())
	href, _ := sel.Attr("href")

	m := internalLinkRe.FindStringSubmatch(href)
	if m == nil {
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			if text != "" {
				return text + " (" + href + ")"
			}
			return href
		}
		return text
	}

	fname := path.Base(m[1])
	title, ok := titleMap[fname]
	if !ok {
		title = fname
	}

	switch mode {
	case LinkModeWiki:
		return "[[" + title + "]]"
	case LinkModeTitle:
		return title
	case LinkModeURL:
		return title + " (" + fname + ")"
	default:
		return text
	}
}
