package authorization

import "github.com/adminkit/guard/pkg/logging"

// EntityAdapter gates entity-level create/read/update/delete operations.
// With no checker configured it grants everything — an ease-of-bootstrap
// default so a panel works before any policy exists. Note the inversion:
// an unconfigured adapter fails open, while a configured checker with no
// authenticated principal fails closed. Both behaviors are deliberate
// and kept distinct; the construction-time warning makes the open
// default loud rather than silent.
type EntityAdapter struct {
	checker Authorizer
}

// NewEntityAdapter creates an adapter over checker. A nil checker is
// permitted and logs a warning, since every operation will be granted.
func NewEntityAdapter(checker Authorizer) *EntityAdapter {
	if checker == nil {
		logging.App.Warn("entity authorization adapter has no checker configured; every operation will be permitted")
	}
	return &EntityAdapter{checker: checker}
}

// Configured reports whether a checker is present.
func (a *EntityAdapter) Configured() bool {
	return a.checker != nil
}

// CanPerform implements Authorizer
func (a *EntityAdapter) CanPerform(resource string, action string) bool {
	if a.checker == nil {
		return true
	}
	return a.checker.CanPerform(resource, action)
}

// CanAccessRecord implements Authorizer
func (a *EntityAdapter) CanAccessRecord(resource string, record interface{}) bool {
	if a.checker == nil {
		return true
	}
	return a.checker.CanAccessRecord(resource, record)
}

// IsGranted implements Authorizer
func (a *EntityAdapter) IsGranted(attribute string, subject interface{}) bool {
	if a.checker == nil {
		return true
	}
	return a.checker.IsGranted(attribute, subject)
}

// CurrentPrincipal implements Authorizer
func (a *EntityAdapter) CurrentPrincipal() *Principal {
	if a.checker == nil {
		return nil
	}
	return a.checker.CurrentPrincipal()
}

var _ Authorizer = (*EntityAdapter)(nil)
