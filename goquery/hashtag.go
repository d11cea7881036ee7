package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	hashtagRE    = regexp.MustCompile(`#(\w+)`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// ExtractHashtags collects #word tokens from the visible text of sel.
// Returned tags are lowercase and deduplicated, in first-seen order;
// callers sort before emitting. When keep is false the tokens are removed
// from their text nodes in place, runs of whitespace collapsed to a single
// space and the result trimmed; the tree structure is otherwise unchanged.
// Text inside script and style elements is ignored.
func ExtractHashtags(sel *goquery.Selection, keep bool) []string {
	seen := make(map[string]bool)
	var tags []string

	for _, root := range sel.Nodes {
		walkTextNodes(root, func(n *html.Node) {
			matches := hashtagRE.FindAllStringSubmatch(n.Data, -1)
			for _, m := range matches {
				tag := strings.ToLower(m[1])
				if !seen[tag] {
					seen[tag] = true
					tags = append(tags, tag)
				}
			}
			if !keep && len(matches) > 0 {
				cleaned := hashtagRE.ReplaceAllString(n.Data, "")
				cleaned = whitespaceRE.ReplaceAllString(cleaned, " ")
				n.Data = strings.TrimSpace(cleaned)
			}
		})
	}

	return tags
}

// walkTextNodes visits every text node under n, skipping script and style
// subtrees.
func walkTextNodes(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		fn(n)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkTextNodes(c, fn)
	}
}
