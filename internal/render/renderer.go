// Package render turns raw page content (Markdown or pre-rendered HTML)
// into presentation HTML with deterministic heading ids.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ucimeto/ucimeto/internal/textnorm"
)

// Mode selects the rendering variant.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeReader Mode = "reader"
	// ModePrint strips iframe embeds, which cannot print.
	ModePrint Mode = "print"
)

// htmlTagRe detects content that is already rendered HTML rather than
// Markdown. Authored documents start with a block-level tag early on.
var htmlTagRe = regexp.MustCompile(`(?i)<\s*(p|div|h[1-6]|table|ul|ol|img|figure|iframe|blockquote|section)[\s>/]`)

// LooksLikeHTML reports whether content should skip the Markdown pipeline.
func LooksLikeHTML(content string) bool {
	head := content
	if len(head) > 512 {
		head = head[:512]
	}
	return htmlTagRe.MatchString(head)
}

// Renderer converts page content to sanitized HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New creates a renderer with the standard extensions.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id", "class").Globally()
	policy.AllowAttrs("style").OnElements("div", "span", "p", "td", "th", "h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowElements("iframe", "video", "source", "figure", "figcaption")
	policy.AllowAttrs("src", "width", "height", "allowfullscreen", "frameborder").OnElements("iframe")
	policy.AllowAttrs("src", "controls", "poster", "autoplay", "loop", "muted").OnElements("video")
	policy.AllowAttrs("src", "type").OnElements("source")

	return &Renderer{md: md, policy: policy}
}

// Render converts raw content to sanitized HTML for the given mode, with
// collision-avoided ids assigned to every heading.
func (r *Renderer) Render(content string, mode Mode) (string, error) {
	var rendered string
	if LooksLikeHTML(content) {
		rendered = content
	} else {
		var buf bytes.Buffer
		ctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
		if err := r.md.Convert([]byte(content), &buf, parser.WithContext(ctx)); err != nil {
			return "", fmt.Errorf("rendering markdown: %w", err)
		}
		rendered = buf.String()
	}

	rendered = r.policy.Sanitize(rendered)

	out, err := rewriteHeadings(rendered, mode == ModePrint)
	if err != nil {
		return "", fmt.Errorf("rewriting headings: %w", err)
	}
	return out, nil
}

// headingIDs implements goldmark's parser.IDs with slugified, deduplicated
// heading ids.
type headingIDs struct {
	used map[string]bool
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{used: make(map[string]bool)}
}

func (h *headingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	return []byte(h.next(string(value)))
}

func (h *headingIDs) Put(value []byte) {
	h.used[string(value)] = true
}

// next returns the slug for text, suffixed "-2", "-3", ... on collision.
func (h *headingIDs) next(text string) string {
	base := textnorm.Slugify(strings.TrimSpace(text))
	if base == "" {
		base = "section"
	}
	id := base
	for n := 2; h.used[id]; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	h.used[id] = true
	return id
}
