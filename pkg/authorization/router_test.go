package authorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDelegate records the last call it received and answers with canned
// values.
type stubDelegate struct {
	name      string
	granted   bool
	principal *Principal

	lastAttribute string
	lastResource  string
	lastAction    string
}

func (s *stubDelegate) IsGranted(attribute string, subject interface{}) bool {
	s.lastAttribute = attribute
	return s.granted
}

func (s *stubDelegate) CanPerform(resource string, action string) bool {
	s.lastResource, s.lastAction = resource, action
	return s.granted
}

func (s *stubDelegate) CanAccessRecord(resource string, record interface{}) bool {
	s.lastResource = resource
	return s.granted
}

func (s *stubDelegate) CurrentPrincipal() *Principal {
	return s.principal
}

func TestNewRouterConfigErrors(t *testing.T) {
	delegate := &stubDelegate{name: "a"}

	_, err := NewRouter(nil)
	assert.ErrorIs(t, err, ErrNoDefaultDelegate)

	_, err = NewRouter(delegate, Route{Pattern: "products", Delegate: nil})
	assert.Error(t, err)

	_, err = NewRouter(delegate,
		Route{Pattern: "products", Delegate: delegate},
		Route{Pattern: "products", Delegate: delegate},
	)
	assert.Error(t, err)
}

func TestResolvePrecedence(t *testing.T) {
	a := &stubDelegate{name: "a"}
	b := &stubDelegate{name: "b"}
	c := &stubDelegate{name: "c"}
	def := &stubDelegate{name: "default"}

	router, err := NewRouter(def,
		Route{Pattern: "products", Delegate: a},
		Route{Pattern: "prod*", Delegate: b},
		Route{Pattern: "external-*", Delegate: b},
		Route{Pattern: "*-orders", Delegate: c},
	)
	require.NoError(t, err)

	tests := []struct {
		resource string
		want     *stubDelegate
	}{
		// Exact match wins even when a glob would also match.
		{"products", a},
		{"production", b},
		// Registration order breaks glob ties, not specificity.
		{"external-orders", b},
		{"internal-orders", c},
		{"anything-else", def},
		{"", def},
	}

	for _, tt := range tests {
		got := router.Resolve(tt.resource)
		assert.Same(t, tt.want, got, "Resolve(%q)", tt.resource)
	}
}

func TestGlobQuotesRegexpMetacharacters(t *testing.T) {
	a := &stubDelegate{name: "a"}
	def := &stubDelegate{name: "default"}

	router, err := NewRouter(def, Route{Pattern: "ext.ra-*", Delegate: a})
	require.NoError(t, err)

	assert.Same(t, a, router.Resolve("ext.ra-orders"))
	// "." must stay literal, not become regexp any-char.
	assert.Same(t, def, router.Resolve("extxra-orders"))
}

func TestDelegationForwardsCalls(t *testing.T) {
	a := &stubDelegate{name: "a", granted: true}
	def := &stubDelegate{name: "default"}

	router, err := NewRouter(def, Route{Pattern: "products", Delegate: a})
	require.NoError(t, err)

	assert.True(t, router.CanPerform("products", "delete"))
	assert.Equal(t, "products", a.lastResource)
	assert.Equal(t, "delete", a.lastAction)

	assert.False(t, router.CanPerform("users", "delete"))
	assert.Equal(t, "users", def.lastResource)

	assert.True(t, router.CanAccessRecord("products", 42))
}

func TestCurrentPrincipalAlwaysFromDefault(t *testing.T) {
	routed := &stubDelegate{name: "a", granted: true, principal: &Principal{ID: "routed"}}
	def := &stubDelegate{name: "default", principal: &Principal{ID: "primary"}}

	router, err := NewRouter(def, Route{Pattern: "products", Delegate: routed})
	require.NoError(t, err)

	// A prior routed call must not affect identity resolution.
	router.CanPerform("products", "read")
	require.NotNil(t, router.CurrentPrincipal())
	assert.Equal(t, "primary", router.CurrentPrincipal().ID)
}

func TestIsGrantedRouting(t *testing.T) {
	a := &stubDelegate{name: "a", granted: true}
	def := &stubDelegate{name: "default"}

	router, err := NewRouter(def, Route{Pattern: "products", Delegate: a})
	require.NoError(t, err)

	// Resource-shaped attribute routes by its first segment.
	assert.True(t, router.IsGranted("products:read", nil))
	assert.Equal(t, "products:read", a.lastAttribute)

	// Unrouted resources fall back to the default delegate.
	assert.False(t, router.IsGranted("users:read", nil))
	assert.Equal(t, "users:read", def.lastAttribute)

	// Bare-role and role-prefixed attributes always use the default.
	router.IsGranted("products", nil)
	assert.Equal(t, "products", def.lastAttribute)
	router.IsGranted("role:products", nil)
	assert.Equal(t, "role:products", def.lastAttribute)
}
