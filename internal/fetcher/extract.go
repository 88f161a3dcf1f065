package fetcher

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"wikibot/internal/domain"
)

var errNoTitle = errors.New("page has no title")

// Extractor turns an HTML page into a Document.
type Extractor interface {
	Extract(r io.Reader, pageURL *url.URL) (domain.Document, error)
}

// NewExtractor returns the extractor registered under kind: "paragraphs" or "readability".
func NewExtractor(kind string) (Extractor, error) {
	switch kind {
	case "paragraphs", "":
		return ParagraphExtractor{}, nil
	case "readability":
		return ReadabilityExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown extractor: %s", kind)
	}
}

// ParagraphExtractor takes the first <h1> as the title and every <p> in
// document order as a paragraph. Empty paragraphs are kept so positions match
// the page.
type ParagraphExtractor struct{}

func (ParagraphExtractor) Extract(r io.Reader, _ *url.URL) (domain.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return domain.Document{}, fmt.Errorf("parse html: %w", err)
	}
	doc := domain.Document{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "h1":
				if doc.Title == "" {
					doc.Title = textContent(n)
				}
				return
			case "p":
				doc.Paragraphs = append(doc.Paragraphs, textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	if doc.Title == "" {
		return domain.Document{}, errNoTitle
	}
	return doc, nil
}

// textContent flattens inline markup into whitespace-normalized text, with
// text nodes joined by one space. Citation markers are skipped.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "br":
				buf.WriteByte(' ')
				return
			case "sup":
				if hasClass(n, "reference") {
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return collapseSpace(buf.String())
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var blankLineRe = regexp.MustCompile(`\n\s*\n`)

// ReadabilityExtractor keeps only the main article content, for pages that
// are not laid out like Wikipedia. Paragraphs are split on blank lines.
type ReadabilityExtractor struct{}

func (ReadabilityExtractor) Extract(r io.Reader, pageURL *url.URL) (domain.Document, error) {
	if pageURL == nil {
		pageURL = &url.URL{}
	}
	article, err := readability.FromReader(r, pageURL)
	if err != nil {
		return domain.Document{}, fmt.Errorf("readability: %w", err)
	}
	title := collapseSpace(article.Title)
	if title == "" {
		return domain.Document{}, errNoTitle
	}
	doc := domain.Document{Title: title}
	for _, p := range blankLineRe.Split(article.TextContent, -1) {
		if p = collapseSpace(p); p != "" {
			doc.Paragraphs = append(doc.Paragraphs, p)
		}
	}
	return doc, nil
}
