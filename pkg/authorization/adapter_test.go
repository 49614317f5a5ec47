package authorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityAdapterUnconfiguredFailsOpen(t *testing.T) {
	adapter := NewEntityAdapter(nil)

	assert.False(t, adapter.Configured())
	assert.True(t, adapter.CanPerform("entity:books", "delete"))
	assert.True(t, adapter.CanAccessRecord("entity:books", 42))
	assert.True(t, adapter.IsGranted("anything:at:all", nil))
	assert.Nil(t, adapter.CurrentPrincipal())
}

func TestEntityAdapterConfiguredDelegates(t *testing.T) {
	checker := &stubDelegate{granted: false, principal: &Principal{ID: "u1"}}
	adapter := NewEntityAdapter(checker)

	assert.True(t, adapter.Configured())

	// A configured adapter inherits the checker's fail-closed posture;
	// nothing about the fail-open default leaks through.
	assert.False(t, adapter.CanPerform("entity:books", "delete"))
	assert.Equal(t, "entity:books", checker.lastResource)
	assert.False(t, adapter.CanAccessRecord("entity:books", 42))
	assert.False(t, adapter.IsGranted("entity:books:read", nil))

	assert.Equal(t, "u1", adapter.CurrentPrincipal().ID)
}

func TestEntityAdapterConfiguredGrants(t *testing.T) {
	checker := &stubDelegate{granted: true}
	adapter := NewEntityAdapter(checker)

	assert.True(t, adapter.CanPerform("entity:books", "read"))
	assert.True(t, adapter.IsGranted("entity:books:read", nil))
}
