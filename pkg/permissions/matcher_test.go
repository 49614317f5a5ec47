package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		attribute string
		want      bool
	}{
		{"exact match", "entity:books:read", "entity:books:read", true},
		{"literal mismatch", "entity:books:read", "entity:books:write", false},
		{"case sensitive", "entity:Books:read", "entity:books:read", false},

		{"star matches one segment", "entity:*:read", "entity:books:read", true},
		{"star requires exact length", "entity:*:read", "entity:books:admin:read", false},
		{"star does not match zero segments", "entity:*:read", "entity:read", false},
		{"star mid-pattern mismatch after", "entity:*:read", "entity:books:delete", false},

		{"doublestar matches deep remainder", "entity:**", "entity:books:read", true},
		{"doublestar matches deeper remainder", "entity:**", "entity:books:admin:read", true},
		{"doublestar matches zero remainder", "entity:**", "entity", true},
		{"doublestar requires preceding segments", "entity:**", "users", false},
		{"doublestar after star", "entity:*:**", "entity:books:read", true},
		{"doublestar alone matches anything", "**", "entity:books:read", true},
		{"doublestar alone matches single segment", "**", "entity", true},

		{"doublestar not final matches nothing", "entity:**:read", "entity:books:read", false},

		{"pattern longer than attribute", "a:b:c", "a:b", false},
		{"attribute longer than pattern", "a:b", "a:b:c", false},
		{"single segment exact", "dashboard", "dashboard", true},
		{"single star", "*", "dashboard", true},
		{"single star wrong length", "*", "entity:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.pattern, tt.attribute)
			assert.Equal(t, tt.want, got, "Match(%q, %q)", tt.pattern, tt.attribute)
		})
	}
}

func TestMatchAny(t *testing.T) {
	patterns := []string{"entity:*:read", "entity:books:delete"}

	assert.True(t, MatchAny(patterns, "entity:books:delete"))
	assert.True(t, MatchAny(patterns, "entity:orders:read"))
	assert.False(t, MatchAny([]string{"entity:*:read"}, "entity:books:delete"))
	assert.False(t, MatchAny(nil, "entity:books:read"))
}

func TestValidatePattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"plain", "entity:books:read", false},
		{"star segment", "entity:*:read", false},
		{"trailing doublestar", "entity:**", false},
		{"bare doublestar", "**", false},
		{"empty pattern", "", true},
		{"empty segment", "entity::read", true},
		{"trailing separator", "entity:", true},
		{"doublestar mid-pattern", "entity:**:read", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePattern(tt.pattern)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
