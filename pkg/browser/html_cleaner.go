package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// CleanedHTML is a page snapshot with scripts, styles and other noise
// removed.
type CleanedHTML struct {
	HTML      string
	Title     string
	Truncated bool
}

// CleanOptions controls CleanHTML.
type CleanOptions struct {
	// MaxLength caps the emitted text and tag length.
	MaxLength int

	// Redact lists form control ids or names whose value attribute is
	// replaced by "***" (tax ids, for instance).
	Redact []string
}

// CleanHTML extracts and cleans HTML content, preserving the structure
// needed to diagnose a form: tables, labels, inputs, and message regions.
func CleanHTML(rawHTML string, maxLength int) (*CleanedHTML, error) {
	return CleanHTMLWithOptions(rawHTML, CleanOptions{MaxLength: maxLength})
}

// CleanHTMLWithOptions is CleanHTML with redaction.
func CleanHTMLWithOptions(rawHTML string, opts CleanOptions) (*CleanedHTML, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultSnapshotLength
	}

	c := &cleaner{
		maxLength: opts.MaxLength,
		redact:    make(map[string]bool, len(opts.Redact)),
	}
	for _, name := range opts.Redact {
		c.redact[name] = true
	}

	truncated := c.node(doc, 0)
	return &CleanedHTML{
		HTML:      c.builder.String(),
		Title:     extractTitle(doc),
		Truncated: truncated,
	}, nil
}

type cleaner struct {
	builder   strings.Builder
	length    int
	maxLength int
	redact    map[string]bool
}

// node writes n and its children; it returns true once output is truncated.
func (c *cleaner) node(n *html.Node, depth int) bool {
	if c.length >= c.maxLength {
		return true
	}

	switch n.Type {
	case html.CommentNode:
		return false
	case html.TextNode:
		return c.text(n)
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if isSkippedElement(tag) || isHiddenInput(n) {
			return false
		}
		return c.element(n, tag, depth)
	}
	return c.children(n, depth)
}

func (c *cleaner) text(n *html.Node) bool {
	text := strings.Join(strings.Fields(n.Data), " ")
	if text == "" {
		return false
	}

	if c.length+len(text) > c.maxLength {
		c.builder.WriteString(text[:c.maxLength-c.length])
		c.builder.WriteString("...")
		c.length = c.maxLength
		return true
	}

	c.builder.WriteString(text)
	c.length += len(text)
	return false
}

func (c *cleaner) element(n *html.Node, tag string, depth int) bool {
	if depth > 0 && isBlockElement(tag) {
		c.builder.WriteString("\n")
		c.builder.WriteString(strings.Repeat("  ", depth))
	}

	c.builder.WriteString("<")
	c.builder.WriteString(tag)
	redacted := c.redacted(n)
	for _, attr := range n.Attr {
		if !shouldPreserveAttribute(tag, attr.Key) {
			continue
		}
		val := attr.Val
		if redacted && strings.EqualFold(attr.Key, "value") {
			val = "***"
		}
		fmt.Fprintf(&c.builder, ` %s="%s"`, attr.Key, html.EscapeString(val))
	}
	c.builder.WriteString(">")
	c.length += len(tag) + 2

	truncated := c.children(n, depth+1)

	if !isVoidElement(tag) {
		if isBlockElement(tag) {
			c.builder.WriteString("\n")
			c.builder.WriteString(strings.Repeat("  ", depth))
		}
		c.builder.WriteString("</")
		c.builder.WriteString(tag)
		c.builder.WriteString(">")
		c.length += len(tag) + 3
	}

	return truncated
}

func (c *cleaner) children(n *html.Node, depth int) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if c.node(child, depth) {
			return true
		}
	}
	return false
}

func (c *cleaner) redacted(n *html.Node) bool {
	if len(c.redact) == 0 {
		return false
	}
	for _, attr := range n.Attr {
		if (attr.Key == "id" || attr.Key == "name") && c.redact[attr.Val] {
			return true
		}
	}
	return false
}

func isHiddenInput(n *html.Node) bool {
	if !strings.EqualFold(n.Data, "input") {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key == "type" && strings.EqualFold(attr.Val, "hidden") {
			return true
		}
	}
	return false
}

// isSkippedElement returns true for elements that should be completely removed
func isSkippedElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "iframe", "embed", "object", "svg", "link", "meta":
		return true
	}
	return false
}

// isBlockElement returns true for block-level elements (for formatting)
func isBlockElement(tagName string) bool {
	switch tagName {
	case "div", "p", "section", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "table", "tbody", "thead", "tr", "td", "th",
		"form", "fieldset", "label", "select":
		return true
	}
	return false
}

// isVoidElement returns true for self-closing elements
func isVoidElement(tagName string) bool {
	switch tagName {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// shouldPreserveAttribute keeps the attributes page locators depend on.
func shouldPreserveAttribute(tagName, attrName string) bool {
	attrName = strings.ToLower(attrName)

	switch attrName {
	case "id", "class", "name":
		return true
	}

	switch tagName {
	case "a":
		return attrName == "href"
	case "img":
		return attrName == "alt"
	case "input":
		return attrName == "type" || attrName == "value" || attrName == "checked"
	case "option":
		return attrName == "value" || attrName == "selected"
	case "label":
		return attrName == "for"
	case "textarea", "select", "button":
		return attrName == "type" || attrName == "disabled"
	}
	return false
}

// extractTitle extracts the page title from the document
func extractTitle(doc *html.Node) string {
	var title string
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil && title == ""; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return title
}
