package scrape

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// blockTags are the elements whose text content forms one paragraph each.
var blockTags = map[string]bool{
	"p":  true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true,
	"td": true, "th": true,
	"blockquote": true,
	"figcaption": true,
}

// Paragraphs walks the selected node and collects the trimmed,
// whitespace-normalized text of every block-level element, in document order.
// Empty blocks are dropped; nested blocks (a list inside a table cell) yield
// their own paragraphs instead of being folded into the outer one.
func Paragraphs(node *html.Node) []string {
	var paragraphs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && blockTags[n.Data] && !containsBlock(n) {
			if text := normalizeText(n); text != "" {
				paragraphs = append(paragraphs, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return paragraphs
}

func containsBlock(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockTags[c.Data] {
			return true
		}
		if containsBlock(c) {
			return true
		}
	}
	return false
}

// normalizeText flattens the text content of a node into one line with
// single spaces between words.
func normalizeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// extractNodeBySelector finds a node in the HTML document using a CSS selector.
// Only the simple forms are supported: "#id", ".class" and a plain tag name.
func extractNodeBySelector(doc *html.Node, selector string) (*html.Node, error) {
	var match func(*html.Node) bool
	switch {
	case strings.HasPrefix(selector, "#"):
		id := strings.TrimPrefix(selector, "#")
		match = func(n *html.Node) bool {
			v, ok := attrValue(n, "id")
			return ok && v == id
		}
	case strings.HasPrefix(selector, "."):
		class := strings.TrimPrefix(selector, ".")
		match = func(n *html.Node) bool {
			v, ok := attrValue(n, "class")
			return ok && strings.Contains(v, class)
		}
	default:
		match = func(n *html.Node) bool {
			return n.Data == selector
		}
	}

	if found := findNode(doc, match); found != nil {
		return found, nil
	}
	return nil, fmt.Errorf("no element matches selector '%s'", selector)
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

// extractTitle extracts the title from the HTML document.
func extractTitle(doc *html.Node) string {
	title := findNode(doc, func(n *html.Node) bool { return n.Data == "title" })
	if title == nil || title.FirstChild == nil || title.FirstChild.Type != html.TextNode {
		return ""
	}
	return strings.TrimSpace(title.FirstChild.Data)
}

func findMetaContent(doc *html.Node, name string) string {
	meta := findNode(doc, func(n *html.Node) bool {
		if n.Data != "meta" {
			return false
		}
		v, ok := attrValue(n, "name")
		return ok && v == name
	})
	if meta == nil {
		return ""
	}
	content, _ := attrValue(meta, "content")
	return content
}

// extractMetaDescription extracts the meta description from the HTML document.
func extractMetaDescription(doc *html.Node) string {
	return findMetaContent(doc, "description")
}

// extractMetaKeywords extracts the meta keywords from the HTML document.
func extractMetaKeywords(doc *html.Node) []string {
	content := findMetaContent(doc, "keywords")
	if content == "" {
		return nil
	}
	var keywords []string
	for _, keyword := range strings.Split(content, ",") {
		if trimmed := strings.TrimSpace(keyword); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}
