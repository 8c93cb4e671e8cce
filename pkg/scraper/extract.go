package scraper

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	errs "pinpager/pkg/errors"
)

// gridClasses are the CSS classes Pinterest puts on its image grid cells.
// An <img> counts only when it sits under a <div> carrying all of them.
var gridClasses = []string{"XiG", "zI7", "iyn", "Hsu"}

// ExtractImageURLs parses a profile page and returns the src attribute of
// every grid image, in document order.
func ExtractImageURLs(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse HTML: %v", err),
		}
	}

	var urls []string
	var walk func(n *html.Node, inGrid bool)
	walk = func(n *html.Node, inGrid bool) {
		if n.Type == html.ElementNode {
			if n.Data == "div" && hasAllClasses(n, gridClasses) {
				inGrid = true
			}
			if inGrid && n.Data == "img" {
				if src := attrValue(n, "src"); src != "" {
					urls = append(urls, src)
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child, inGrid)
		}
	}
	walk(doc, false)

	return urls, nil
}

// hasAllClasses reports whether the node's class attribute contains every
// class in want
func hasAllClasses(n *html.Node, want []string) bool {
	classes := strings.Fields(attrValue(n, "class"))
	if len(classes) == 0 {
		return false
	}

	set := make(map[string]bool, len(classes))
	for _, c := range classes {
		set[c] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}

// attrValue returns the value of the named attribute, or "" when absent
func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
