package policy

// StaticSource serves a fixed snapshot compiled in at construction.
// Useful for configuration baked into the binary and for tests.
type StaticSource struct {
	snapshot *Snapshot
}

// NewStaticSource creates a Source over the given tables. The maps are
// adopted, not copied; callers must not mutate them afterwards.
func NewStaticSource(hierarchy map[string][]string, permissions map[string][]string) *StaticSource {
	return &StaticSource{snapshot: &Snapshot{
		Hierarchy:   hierarchy,
		Permissions: permissions,
	}}
}

// Permissions implements Source
func (s *StaticSource) Permissions(role string) []string {
	return s.snapshot.Permissions[role]
}

// Roles implements Source
func (s *StaticSource) Roles() []string {
	return s.snapshot.RoleNames()
}

// Hierarchy implements Source
func (s *StaticSource) Hierarchy() map[string][]string {
	return s.snapshot.Hierarchy
}

// Editable implements Source
func (s *StaticSource) Editable() bool {
	return false
}
