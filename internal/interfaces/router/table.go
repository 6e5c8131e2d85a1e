package router

import (
	"strings"

	"github.com/storefront/core/internal/domain/shared"
)

// Params is the merged path and query parameter map handed to handlers
type Params map[string]string

// Handler renders the page for a matched route
type Handler func(Params)

// Route declares one path pattern and its handler. Patterns are path
// templates where a ':name' token occupies exactly one '/'-delimited
// segment, e.g. "/product/:id".
type Route struct {
	Pattern string
	Handler Handler
}

// segment is one compiled pattern piece: either a literal to compare or a
// named parameter capturing one non-empty path segment.
type segment struct {
	literal string
	param   string
}

type compiledRoute struct {
	pattern  string
	segments []segment
	handler  Handler
}

// Table is the immutable route table, compiled once at construction.
// Exact pattern matches take precedence; otherwise candidates are tried in
// declaration order and the first full match wins.
type Table struct {
	routes []compiledRoute
	exact  map[string]Handler
}

// NewTable compiles the route declarations
func NewTable(routes []Route) (*Table, error) {
	t := &Table{
		routes: make([]compiledRoute, 0, len(routes)),
		exact:  make(map[string]Handler, len(routes)),
	}
	for _, r := range routes {
		if r.Pattern == "" || !strings.HasPrefix(r.Pattern, "/") {
			return nil, shared.NewDomainError("INVALID_PATTERN", "Route pattern must start with '/'")
		}
		if r.Handler == nil {
			return nil, shared.NewDomainError("INVALID_HANDLER", "Route handler cannot be nil")
		}
		if _, dup := t.exact[r.Pattern]; dup {
			return nil, shared.NewDomainError("DUPLICATE_PATTERN", "Route pattern declared twice")
		}

		cr := compiledRoute{pattern: r.Pattern, handler: r.Handler}
		for _, part := range strings.Split(r.Pattern, "/") {
			if name, ok := strings.CutPrefix(part, ":"); ok && name != "" {
				cr.segments = append(cr.segments, segment{param: name})
			} else {
				cr.segments = append(cr.segments, segment{literal: part})
			}
		}

		t.routes = append(t.routes, cr)
		t.exact[r.Pattern] = r.Handler
	}
	return t, nil
}

// Match resolves a path to a handler and its extracted path parameters.
// Returns a nil handler when nothing matches.
func (t *Table) Match(path string) (Handler, Params) {
	if h, ok := t.exact[path]; ok {
		return h, Params{}
	}

	parts := strings.Split(path, "/")
	for _, cr := range t.routes {
		if params, ok := cr.match(parts); ok {
			return cr.handler, params
		}
	}
	return nil, nil
}

// match compares the split path against the compiled segments, extracting
// named parameters in declaration order.
func (cr *compiledRoute) match(parts []string) (Params, bool) {
	if len(parts) != len(cr.segments) {
		return nil, false
	}
	params := Params{}
	for i, seg := range cr.segments {
		if seg.param != "" {
			// A parameter consumes one non-empty segment
			if parts[i] == "" {
				return nil, false
			}
			params[seg.param] = parts[i]
			continue
		}
		if parts[i] != seg.literal {
			return nil, false
		}
	}
	return params, true
}
