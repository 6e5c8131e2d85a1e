package router

import (
	"context"
	"net/url"
	"strings"

	"github.com/storefront/core/internal/domain/shared"
	"go.uber.org/zap"
)

// Viewport is the surface handlers render into. The view layer implements
// it; the router only scrolls it back to the top after each dispatch.
type Viewport interface {
	Render(content string)
	ScrollToTop()
}

// CurrentRoute is the last computed dispatch target. Params holds the
// parsed query parameters; handlers receive the merged path+query map.
type CurrentRoute struct {
	Path   string
	Params Params
}

// Router translates a location fragment into a page-handler invocation.
// Each fragment change runs one parse, match, dispatch cycle.
type Router struct {
	table    *Table
	loc      *Location
	bus      shared.EventBus
	logger   *zap.Logger
	viewport Viewport
	current  *CurrentRoute
}

// New creates a router over the given location and compiled table.
// viewport may be nil when no scrollable surface exists.
func New(table *Table, loc *Location, bus shared.EventBus, logger *zap.Logger, viewport Viewport) *Router {
	return &Router{
		table:    table,
		loc:      loc,
		bus:      bus,
		logger:   logger,
		viewport: viewport,
	}
}

// Init subscribes to fragment changes and dispatches the current fragment
// once. Precondition: call it exactly once; a second call would subscribe
// a second listener.
func (r *Router) Init() {
	r.bus.Subscribe(&fragmentListener{router: r}, FragmentChangedType)
	r.HandleRoute()
}

// Navigate sets the fragment to path. With replace the current history
// entry is swapped in place instead of pushing a new one.
func (r *Router) Navigate(path string, replace bool) {
	if replace {
		r.loc.Replace(path)
		return
	}
	r.loc.Set(path)
}

// Back pops one history entry
func (r *Router) Back() {
	r.loc.Back()
}

// HandleRoute runs one dispatch cycle for the current fragment. Unmatched
// paths log a warning and fail open to the default page; there is no 404
// surface.
func (r *Router) HandleRoute() {
	fragment := r.loc.Fragment()
	if fragment == "" {
		fragment = "/"
	}

	pathPart, queryString, _ := strings.Cut(fragment, "?")
	path := pathPart
	if path == "" {
		path = "/"
	}

	queryParams := parseQueryString(queryString)
	r.current = &CurrentRoute{Path: path, Params: queryParams}

	handler, pathParams := r.table.Match(path)
	if handler != nil {
		// Query params survive a path match and win on key collision
		merged := make(Params, len(pathParams)+len(queryParams))
		for k, v := range pathParams {
			merged[k] = v
		}
		for k, v := range queryParams {
			merged[k] = v
		}
		handler(merged)
	} else {
		r.logger.Warn("no route found", zap.String("path", path))
		if path != "/" {
			r.Navigate("/", false)
		}
	}

	if r.viewport != nil {
		r.viewport.ScrollToTop()
	}
}

// CurrentRoute returns the last computed route, or nil before the first
// dispatch.
func (r *Router) CurrentRoute() *CurrentRoute {
	return r.current
}

// Param reads a single value from the last computed params
func (r *Router) Param(key string) (string, bool) {
	if r.current == nil {
		return "", false
	}
	v, ok := r.current.Params[key]
	return v, ok
}

// parseQueryString parses "a=1&b=2" into a flat map. The split is naive:
// pairs on '&', key from value on the first '='; a key without '=' maps to
// the empty string. Values are percent-decoded; keys are not.
func parseQueryString(queryString string) Params {
	params := Params{}
	if queryString == "" {
		return params
	}
	for _, pair := range strings.Split(queryString, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if key == "" {
			continue
		}
		if value != "" {
			if decoded, err := url.PathUnescape(value); err == nil {
				value = decoded
			}
		}
		params[key] = value
	}
	return params
}

// fragmentListener adapts the router to the event bus
type fragmentListener struct {
	router *Router
}

func (l *fragmentListener) Handle(_ context.Context, _ shared.DomainEvent) error {
	l.router.HandleRoute()
	return nil
}

func (l *fragmentListener) EventTypes() []string {
	return []string{FragmentChangedType}
}
