// Package browse keeps the state of the route viewer: which layers are
// visible and which route is traced.
package browse

import (
	"fmt"
	"slices"

	"github.com/hailam/knightroutes/internal/report"
	"github.com/hailam/knightroutes/internal/render"
	"github.com/hailam/knightroutes/internal/search"
)

// Browser steps through the layers and routes of one result.
type Browser struct {
	res    *search.Result
	routes []search.Route // listing order

	route    int // 0 = none, otherwise 1-based into routes
	shown    int // visible layers, at least 1
	explored bool
}

// New creates a browser showing every pruned layer and the first route.
func New(res *search.Result, sep string) *Browser {
	routes := slices.Clone(res.Routes)
	search.SortRoutes(routes, sep)

	b := &Browser{
		res:    res,
		routes: routes,
	}
	if len(routes) > 0 {
		b.route = 1
	}
	b.shown = len(b.layers())
	return b
}

func (b *Browser) layers() []search.Layer {
	if b.explored {
		return b.res.Explored
	}
	return b.res.Layers
}

// Result returns the browsed result.
func (b *Browser) Result() *search.Result {
	return b.res
}

// Route returns the traced route number, 0 when none is traced.
func (b *Browser) Route() int {
	return b.route
}

// Shown returns the number of visible layers.
func (b *Browser) Shown() int {
	return b.shown
}

// NextRoute traces the next route, cycling through "no route" after the last one.
func (b *Browser) NextRoute() bool {
	if len(b.routes) == 0 {
		return false
	}
	b.route = (b.route + 1) % (len(b.routes) + 1)
	return true
}

// PrevRoute traces the previous route.
func (b *Browser) PrevRoute() bool {
	if len(b.routes) == 0 {
		return false
	}
	n := len(b.routes) + 1
	b.route = (b.route - 1 + n) % n
	return true
}

// ShowMore reveals one more layer. It reports whether anything changed.
func (b *Browser) ShowMore() bool {
	if b.shown >= len(b.layers()) {
		return false
	}
	b.shown++
	return true
}

// ShowLess hides the deepest visible layer, keeping the start.
func (b *Browser) ShowLess() bool {
	if b.shown <= 1 {
		return false
	}
	b.shown--
	return true
}

// ToggleExplored switches between the pruned and the explored layers and
// shows all of them.
func (b *Browser) ToggleExplored() bool {
	b.explored = !b.explored
	b.shown = len(b.layers())
	return true
}

// Frame returns what to draw. The traced route is cut to the visible layers.
func (b *Browser) Frame() render.Frame {
	frame := render.Frame{
		Layers: report.Bitboards(b.layers()[:b.shown]),
		Target: b.res.Target,
	}
	if b.route > 0 {
		r := b.routes[b.route-1]
		frame.Route = r[:min(b.shown, len(r))]
	}
	return frame
}

// Caption describes the current view in one line.
func (b *Browser) Caption() string {
	kind := "pruned"
	if b.explored {
		kind = "explored"
	}
	route := "no route"
	if b.route > 0 {
		route = fmt.Sprintf("route %d/%d %s", b.route, len(b.routes), b.routes[b.route-1])
	}
	return fmt.Sprintf("%s  layers %d/%d %s  %s",
		report.Summary(b.res.Request(), b.res.Moves, len(b.routes)),
		b.shown, len(b.layers()), kind, route)
}
