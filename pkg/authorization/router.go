package authorization

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoDefaultDelegate is returned when a Router is constructed without
// a default delegate.
var ErrNoDefaultDelegate = errors.New("scoped router requires a default delegate")

// Route binds a resource-name pattern to a delegate. Patterns may
// contain "*", which matches any run of characters; patterns without
// "*" are exact names.
type Route struct {
	Pattern  string
	Delegate Authorizer
}

type globRoute struct {
	pattern  string
	re       *regexp.Regexp
	delegate Authorizer
}

// Router dispatches authorization decisions to different delegates
// depending on which resource is being accessed, for deployments where
// resources are governed by different policy sources or trust domains.
//
// Resolution order: exact-name table, then glob patterns in registration
// order (first match wins — registration order is the tie-break, not
// specificity), then the default delegate. Identity is singular even
// when authorization is federated: CurrentPrincipal always comes from
// the default delegate.
//
// Routes are compiled once at construction; the Router is immutable and
// safe for concurrent use.
type Router struct {
	def   Authorizer
	exact map[string]Authorizer
	globs []globRoute
}

// NewRouter creates a Router with the mandatory default delegate and the
// given routes. A nil default, a nil route delegate, or a duplicate
// exact pattern is a configuration error.
func NewRouter(def Authorizer, routes ...Route) (*Router, error) {
	if def == nil {
		return nil, ErrNoDefaultDelegate
	}

	r := &Router{
		def:   def,
		exact: make(map[string]Authorizer, len(routes)),
	}

	for _, route := range routes {
		if route.Delegate == nil {
			return nil, fmt.Errorf("route %q has no delegate", route.Pattern)
		}
		if !strings.Contains(route.Pattern, "*") {
			if _, dup := r.exact[route.Pattern]; dup {
				return nil, fmt.Errorf("duplicate route for resource %q", route.Pattern)
			}
			r.exact[route.Pattern] = route.Delegate
			continue
		}
		re, err := compileGlob(route.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling route pattern %q: %w", route.Pattern, err)
		}
		r.globs = append(r.globs, globRoute{
			pattern:  route.Pattern,
			re:       re,
			delegate: route.Delegate,
		})
	}

	return r, nil
}

// compileGlob turns a resource-name pattern into an anchored regexp:
// every literal run is quoted, every "*" matches any run of characters.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return regexp.Compile("^" + strings.Join(parts, ".*") + "$")
}

// Resolve returns the delegate governing resource.
func (r *Router) Resolve(resource string) Authorizer {
	if delegate, ok := r.exact[resource]; ok {
		return delegate
	}
	for _, g := range r.globs {
		if g.re.MatchString(resource) {
			return g.delegate
		}
	}
	return r.def
}

// CanPerform implements Authorizer
func (r *Router) CanPerform(resource string, action string) bool {
	return r.Resolve(resource).CanPerform(resource, action)
}

// CanAccessRecord implements Authorizer
func (r *Router) CanAccessRecord(resource string, record interface{}) bool {
	return r.Resolve(resource).CanAccessRecord(resource, record)
}

// CurrentPrincipal implements Authorizer. Always the default delegate's
// principal: routing affects what is permitted, never who the caller is.
func (r *Router) CurrentPrincipal() *Principal {
	return r.def.CurrentPrincipal()
}

// IsGranted implements Authorizer. Attributes shaped like "resource:..."
// route to the delegate resolved for that resource; role requests and
// attributes not addressing a resource use the default delegate.
func (r *Router) IsGranted(attribute string, subject interface{}) bool {
	if _, ok := roleAttribute(attribute); ok {
		return r.def.IsGranted(attribute, subject)
	}
	resource := attribute[:strings.Index(attribute, ":")]
	return r.Resolve(resource).IsGranted(attribute, subject)
}

var _ Authorizer = (*Router)(nil)
