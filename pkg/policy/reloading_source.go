package policy

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/adminkit/guard/pkg/logging"
)

// ReloadingSource serves policy data from a snapshot that is replaced
// wholesale on reload. The snapshot sits behind an atomic pointer, so
// concurrent readers see either the old tables in full or the new ones
// in full — never a torn state. A failed reload keeps the previous
// snapshot live.
type ReloadingSource struct {
	loader   Loader
	snapshot atomic.Pointer[Snapshot]
}

// NewReloadingSource performs the initial load and returns a Source over
// the result. A failing initial load is a construction error: the engine
// must not start with empty (deny-everything) tables by accident.
func NewReloadingSource(loader Loader) (*ReloadingSource, error) {
	s := &ReloadingSource{loader: loader}
	snapshot, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("initial policy load: %w", err)
	}
	s.snapshot.Store(snapshot)
	return s, nil
}

// Reload loads a fresh snapshot and swaps it in atomically. On error the
// current snapshot stays in place and keeps serving decisions.
func (s *ReloadingSource) Reload() error {
	snapshot, err := s.loader.Load()
	if err != nil {
		logging.Audit.LogReload(s.loader.Name(), "error", "error", err)
		return fmt.Errorf("reloading policy: %w", err)
	}
	s.snapshot.Store(snapshot)
	logging.Audit.LogReload(s.loader.Name(), "success", "roles", len(snapshot.RoleNames()))
	return nil
}

// Run reloads the policy every interval until ctx is cancelled. Reload
// errors are logged and the previous snapshot keeps serving.
func (s *ReloadingSource) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.Reload(); err != nil {
				logging.App.Error("policy reload failed", "source", s.loader.Name(), "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Permissions implements Source
func (s *ReloadingSource) Permissions(role string) []string {
	return s.snapshot.Load().Permissions[role]
}

// Roles implements Source
func (s *ReloadingSource) Roles() []string {
	return s.snapshot.Load().RoleNames()
}

// Hierarchy implements Source
func (s *ReloadingSource) Hierarchy() map[string][]string {
	return s.snapshot.Load().Hierarchy
}

// Editable implements Source
func (s *ReloadingSource) Editable() bool {
	return false
}
