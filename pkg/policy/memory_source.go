package policy

import (
	"fmt"
	"sync"

	"github.com/adminkit/guard/pkg/permissions"
)

// MemorySource is a mutable, mutex-guarded Source for administrative
// surfaces that edit policy at runtime. Reads return copies so callers
// never observe a concurrent edit mid-slice.
type MemorySource struct {
	mu          sync.RWMutex
	hierarchy   map[string][]string
	permissions map[string][]string
}

// NewMemorySource creates an empty editable source.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		hierarchy:   make(map[string][]string),
		permissions: make(map[string][]string),
	}
}

// SetRole defines or replaces a role with its direct parents and granted
// patterns. Malformed patterns are rejected before anything is stored.
func (s *MemorySource) SetRole(role string, parents []string, patterns []string) error {
	if role == "" {
		return fmt.Errorf("empty role name")
	}
	for _, pattern := range patterns {
		if err := permissions.ValidatePattern(pattern); err != nil {
			return fmt.Errorf("role %q: %w", role, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hierarchy[role] = append([]string(nil), parents...)
	s.permissions[role] = append([]string(nil), patterns...)
	return nil
}

// RemoveRole deletes a role's own entry. Other roles may still name it
// as a parent; traversal treats the dangling edge as a leaf.
func (s *MemorySource) RemoveRole(role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hierarchy, role)
	delete(s.permissions, role)
}

// Permissions implements Source
func (s *MemorySource) Permissions(role string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	patterns, ok := s.permissions[role]
	if !ok {
		return nil
	}
	return append([]string(nil), patterns...)
}

// Roles implements Source
func (s *MemorySource) Roles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Hierarchy: s.hierarchy, Permissions: s.permissions}
	return snap.RoleNames()
}

// Hierarchy implements Source
func (s *MemorySource) Hierarchy() map[string][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]string, len(s.hierarchy))
	for role, parents := range s.hierarchy {
		out[role] = append([]string(nil), parents...)
	}
	return out
}

// Editable implements Source
func (s *MemorySource) Editable() bool {
	return true
}
