package render

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewriteHeadings parses rendered HTML, assigns ids to headings that lack
// one (collision-avoided against ids already present), and, when
// stripEmbeds is set, removes iframe embeds.
func rewriteHeadings(input string, stripEmbeds bool) (string, error) {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return "", err
	}

	ids := newHeadingIDs()
	// Seed with ids already in the document so new ones cannot collide.
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := attr(n, "id"); id != "" {
				ids.Put([]byte(id))
			}
		}
	})

	var drop []*html.Node
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if stripEmbeds && n.DataAtom == atom.Iframe {
			drop = append(drop, n)
			return
		}
		if isHeading(n) && attr(n, "id") == "" {
			n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: ids.next(nodeText(n))})
		}
	})
	for _, n := range drop {
		n.Parent.RemoveChild(n)
	}

	return renderBody(doc)
}

// Headings returns the text of headings at the given level (2 for H2) in
// document order, skipping subtrees hidden with display:none. This is the
// renderer-side half of the synchronizer's heading contract: layouts may
// render the content twice for responsive breakpoints and only one copy is
// on screen.
func Headings(input string, level int) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return nil, err
	}

	tag := headingAtoms[level]
	var out []string
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if hidden(n) {
				return
			}
			if n.DataAtom == tag {
				out = append(out, strings.TrimSpace(nodeText(n)))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	return out, nil
}

var headingAtoms = map[int]atom.Atom{
	1: atom.H1, 2: atom.H2, 3: atom.H3, 4: atom.H4, 5: atom.H5, 6: atom.H6,
}

func isHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

func hidden(n *html.Node) bool {
	style := attr(n, "style")
	if style == "" {
		return false
	}
	style = strings.ReplaceAll(strings.ToLower(style), " ", "")
	return strings.Contains(style, "display:none")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var visit func(c *html.Node)
	visit = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			visit(gc)
		}
	}
	visit(n)
	return b.String()
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

// renderBody serializes the children of <body>, undoing the document
// wrapping html.Parse adds around fragments.
func renderBody(doc *html.Node) (string, error) {
	body := findBody(doc)
	if body == nil {
		return "", nil
	}
	var buf bytes.Buffer
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findBody(c); found != nil {
			return found
		}
	}
	return nil
}
