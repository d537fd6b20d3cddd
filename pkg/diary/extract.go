package diary

import (
	"html"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"
)

// Marker is the hashtag a post must start with to be a diary entry
const Marker = "#Diary"

// separatorRun matches runs of spaces, commas and exclamation marks
var separatorRun = regexp.MustCompile(`[ ,!]+`)

// Extract returns the displayable diary text of a post's HTML content.
// ok is false when the content is empty or its text does not start with Marker.
func Extract(content string) (text string, ok bool) {
	if strings.TrimSpace(content) == "" {
		return "", false
	}

	body, err := bodyText(content)
	if err != nil || !strings.HasPrefix(body, Marker) {
		return "", false
	}

	for strings.HasPrefix(body, Marker) {
		body = body[len(Marker):]
	}
	body = strings.TrimSpace(body)
	body = separatorRun.ReplaceAllString(body, " ")
	body = strings.TrimSpace(body)

	// Entities left escaped in the text nodes, e.g. "&amp;amp;" in the source
	return norm.NFC.String(html.UnescapeString(body)), true
}

// bodyText parses an HTML fragment as a document and concatenates the text
// nodes inside <body>, ignoring all tags.
func bodyText(content string) (string, error) {
	doc, err := xhtml.Parse(strings.NewReader(content))
	if err != nil {
		return "", err
	}

	body := findBody(doc)
	if body == nil {
		return "", nil
	}

	var b strings.Builder
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(body)

	return b.String(), nil
}

func findBody(n *xhtml.Node) *xhtml.Node {
	if n.Type == xhtml.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}
