// Package policy supplies role hierarchy and role-to-permission tables
// to the authorization engine through swappable sources.
package policy

import "sort"

// Snapshot is one immutable version of the policy tables. Sources hand
// out snapshots (or read through them) and replace them wholesale on
// reload; nothing mutates a snapshot after construction.
type Snapshot struct {
	// Hierarchy maps a role to the roles it directly inherits from.
	Hierarchy map[string][]string
	// Permissions maps a role to its granted permission patterns.
	Permissions map[string][]string
}

// RoleNames returns every role named by the snapshot, sorted.
func (s *Snapshot) RoleNames() []string {
	seen := make(map[string]struct{}, len(s.Permissions))
	for role := range s.Permissions {
		seen[role] = struct{}{}
	}
	for role := range s.Hierarchy {
		seen[role] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for role := range seen {
		names = append(names, role)
	}
	sort.Strings(names)
	return names
}

// Source supplies policy data to permission checkers. Consumers must
// re-read through the Source on every decision rather than caching its
// output, so that a hot-swapped source is observed without consumer
// changes.
type Source interface {
	// Permissions returns the permission patterns directly granted to
	// role. Unknown roles yield nil.
	Permissions(role string) []string

	// Roles returns every role the source knows about.
	Roles() []string

	// Hierarchy returns the role-inheritance map (role to direct parents).
	Hierarchy() map[string][]string

	// Editable reports whether the source can be modified at runtime.
	Editable() bool
}

// Loader produces a policy snapshot, typically by reading and parsing an
// external document. A ReloadingSource wraps a Loader to make the result
// hot-swappable.
type Loader interface {
	// Load reads and parses the policy document into a snapshot.
	Load() (*Snapshot, error)

	// Name identifies the loader in logs (e.g. the backing file path).
	Name() string
}
