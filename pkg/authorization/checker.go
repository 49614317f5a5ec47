package authorization

import (
	"sort"

	"github.com/adminkit/guard/pkg/logging"
	"github.com/adminkit/guard/pkg/permissions"
	"github.com/adminkit/guard/pkg/policy"
	"github.com/adminkit/guard/pkg/roles"
)

// Checker is the central decision point. It holds no policy data of its
// own: the hierarchy and permission tables are read fresh from the
// source on every call, so a hot-swapped source takes effect without
// consumer changes. Safe for concurrent use.
type Checker struct {
	source    policy.Source
	principal PrincipalProvider
}

// NewChecker creates a Checker reading policy from source and resolving
// the current principal through provider.
func NewChecker(source policy.Source, provider PrincipalProvider) *Checker {
	return &Checker{
		source:    source,
		principal: provider,
	}
}

// CurrentPrincipal implements Authorizer
func (c *Checker) CurrentPrincipal() *Principal {
	return c.principal()
}

// IsGranted implements Authorizer. Without an authenticated principal it
// always denies. Unknown roles and empty permission sets deny rather
// than error.
func (c *Checker) IsGranted(attribute string, subject interface{}) bool {
	p := c.principal()
	if p == nil {
		logging.Audit.LogDecision("", attribute, "", false, "reason", "no principal")
		return false
	}

	var granted bool
	if role, ok := roleAttribute(attribute); ok {
		granted = c.graph().IsGranted(p.Roles, role)
	} else {
		granted = permissions.MatchAny(c.UserPermissions(p), attribute)
	}

	logging.Audit.LogDecision(p.ID, attribute, "", granted)
	return granted
}

// CanPerform implements Authorizer
func (c *Checker) CanPerform(resource string, action string) bool {
	return c.IsGranted(resource+permissions.Separator+action, nil)
}

// CanAccessRecord implements Authorizer. The record rides along as the
// subject so context-aware policies can pick it up later; the base
// algorithm gates on the resource's read permission.
func (c *Checker) CanAccessRecord(resource string, record interface{}) bool {
	return c.IsGranted(resource+permissions.Separator+"read", record)
}

// UserPermissions returns the principal's effective permission patterns:
// the union, over every role reachable from the principal's assigned
// roles, of that role's granted patterns, plus the principal's own
// overrides verbatim. Sorted for stable output.
func (c *Checker) UserPermissions(p *Principal) []string {
	graph := c.graph()
	set := make(map[string]struct{})

	for _, role := range p.Roles {
		for reached := range graph.ReachableRoles(role) {
			for _, pattern := range c.source.Permissions(reached) {
				set[pattern] = struct{}{}
			}
		}
	}
	for _, pattern := range p.Overrides {
		set[pattern] = struct{}{}
	}

	result := make([]string, 0, len(set))
	for pattern := range set {
		result = append(result, pattern)
	}
	sort.Strings(result)
	return result
}

// CanAssignRole reports whether the current principal may assign target
// to another principal. It requires both the role-assignment capability
// and holding target itself, so a principal can never hand out a role
// they do not hold.
func (c *Checker) CanAssignRole(target string) bool {
	p := c.principal()
	if p == nil {
		return false
	}
	if !permissions.MatchAny(c.UserPermissions(p), AssignRolesPermission) {
		return false
	}
	return c.graph().IsGranted(p.Roles, target)
}

// AssignableRoles returns the roles the current principal may assign:
// empty without the role-assignment capability, otherwise the union of
// reachable-role closures over the principal's own roles. Sorted.
func (c *Checker) AssignableRoles() []string {
	p := c.principal()
	if p == nil {
		return nil
	}
	if !permissions.MatchAny(c.UserPermissions(p), AssignRolesPermission) {
		return nil
	}

	graph := c.graph()
	set := make(map[string]struct{})
	for _, role := range p.Roles {
		for reached := range graph.ReachableRoles(role) {
			set[reached] = struct{}{}
		}
	}

	result := make([]string, 0, len(set))
	for role := range set {
		result = append(result, role)
	}
	sort.Strings(result)
	return result
}

// graph builds the inheritance graph from the source's current
// hierarchy. Built per call: the graph is cheap and the source may have
// been hot-swapped since the last decision.
func (c *Checker) graph() *roles.Graph {
	return roles.NewGraph(c.source.Hierarchy())
}

var _ Authorizer = (*Checker)(nil)
