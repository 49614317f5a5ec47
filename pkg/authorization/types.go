// Package authorization decides whether a principal is granted a
// requested attribute — a role name or a permission string — using role
// inheritance and wildcard permission matching over a policy source.
package authorization

import "strings"

// RolePrefix marks an attribute as an explicit role request
// ("role:editor"). Attributes without any separator are also treated as
// role requests; everything else is a permission pattern request.
const RolePrefix = "role:"

// AssignRolesPermission is the administrative capability required to
// assign roles to other principals.
const AssignRolesPermission = "roles:assign"

// Principal is the authenticated actor whose roles and permissions are
// being evaluated.
type Principal struct {
	// ID identifies the principal in audit logs.
	ID string
	// Roles are the principal's directly assigned roles.
	Roles []string
	// Overrides are permission patterns granted independent of role
	// membership, used for one-off exceptions. They bypass the role
	// system entirely and are never filtered.
	Overrides []string
}

// PrincipalProvider returns the current principal, or nil when there is
// no authenticated principal. Session handling lives outside the engine;
// the provider is injected at checker construction.
type PrincipalProvider func() *Principal

// Authorizer is the decision contract shared by Checker, Router and
// EntityAdapter. Callers branch on the booleans and never inspect the
// engine's internals.
type Authorizer interface {
	// IsGranted reports whether the current principal is granted
	// attribute. subject is an extension point for context-aware
	// policies; the base algorithm does not consult it.
	IsGranted(attribute string, subject interface{}) bool

	// CanPerform reports whether the current principal may perform
	// action on resource.
	CanPerform(resource string, action string) bool

	// CanAccessRecord reports whether the current principal may access
	// the given record of resource.
	CanAccessRecord(resource string, record interface{}) bool

	// CurrentPrincipal returns the current principal, or nil.
	CurrentPrincipal() *Principal
}

// roleAttribute reports whether attribute is a role request per the
// naming convention, and if so returns the role name.
func roleAttribute(attribute string) (string, bool) {
	if strings.HasPrefix(attribute, RolePrefix) {
		return strings.TrimPrefix(attribute, RolePrefix), true
	}
	if !strings.Contains(attribute, ":") {
		return attribute, true
	}
	return "", false
}
