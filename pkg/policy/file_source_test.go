package policy

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicy(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
}

func TestFileSourceLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePolicy(t, fs, "/etc/guard/policy.yaml", `
roles:
  admin:
    inherits: [editor]
    permissions:
      - "entity:**"
      - "roles:assign"
  editor:
    permissions:
      - "entity:*:read"
      - "entity:*:update"
  viewer: {}
`)

	source := NewFileSource(fs, "/etc/guard/policy.yaml")
	assert.Equal(t, "/etc/guard/policy.yaml", source.Name())

	snapshot, err := source.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"editor"}, snapshot.Hierarchy["admin"])
	assert.Empty(t, snapshot.Hierarchy["editor"])
	assert.Equal(t, []string{"entity:**", "roles:assign"}, snapshot.Permissions["admin"])
	assert.Equal(t, []string{"admin", "editor", "viewer"}, snapshot.RoleNames())
}

func TestFileSourceLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not yaml", "{{nope"},
		{
			"malformed pattern",
			"roles:\n  admin:\n    permissions: [\"entity:**:read\"]\n",
		},
		{
			"empty pattern segment",
			"roles:\n  admin:\n    permissions: [\"entity::read\"]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			writePolicy(t, fs, "/policy.yaml", tt.content)

			_, err := NewFileSource(fs, "/policy.yaml").Load()
			assert.Error(t, err)
		})
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(afero.NewMemMapFs(), "/missing.yaml").Load()
	assert.Error(t, err)
}

func TestFileSourceCyclicHierarchyStillLoads(t *testing.T) {
	fs := afero.NewMemMapFs()
	writePolicy(t, fs, "/policy.yaml", `
roles:
  a:
    inherits: [b]
  b:
    inherits: [a]
`)

	// Cycles are a validity problem, not a load failure; traversal
	// tolerates them.
	snapshot, err := NewFileSource(fs, "/policy.yaml").Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, snapshot.Hierarchy["a"])
}
