package nav

import (
	"strings"

	"github.com/ucimeto/ucimeto/internal/catalog"
)

// boardScheme is the reserved URL scheme marking externally hosted board
// content. The literal forms "board://<id>" and the synthesized
// "board_<slug>" id are a wire contract with the board viewer and must be
// preserved exactly.
const boardScheme = "board://"

// BoardRoute addresses the separate board viewer.
type BoardRoute struct {
	ID string `json:"id"`
}

// boardDocTypes are the document sub-types rendered as boards.
var boardDocTypes = map[catalog.DocType]bool{
	catalog.DocTest:     true,
	catalog.DocExam:     true,
	catalog.DocPractice: true,
}

// BoardRouteForURL extracts the board route from a board:// URL, or
// returns nil for any other value.
func BoardRouteForURL(url string) *BoardRoute {
	if strings.HasPrefix(url, boardScheme) {
		return &BoardRoute{ID: strings.TrimPrefix(url, boardScheme)}
	}
	return nil
}

// boardRoute translates a board-typed node to its viewer route, or returns
// nil for regular in-tree content.
func boardRoute(n *catalog.Node) *BoardRoute {
	if n == nil {
		return nil
	}
	if route := BoardRouteForURL(n.ExternalURL); route != nil {
		return route
	}
	if n.NormalKind() == catalog.KindBoard || boardDocTypes[n.DocType] {
		return &BoardRoute{ID: BoardID(n)}
	}
	return nil
}

// BoardID synthesizes the conventional board id for a node without an
// explicit board:// URL: "board_<slug>", falling back to the catalog id
// when no slug is present.
func BoardID(n *catalog.Node) string {
	if n.Slug != "" {
		return "board_" + n.Slug
	}
	return "board_" + n.ID
}
