// Package roles computes role-inheritance closures over a hierarchy map.
package roles

import "sort"

// Graph is a directed role-inheritance graph. Edges point from a role to
// the roles it directly inherits from ("parents"). The graph is intended
// to be acyclic, but traversal tolerates cycles; use Validate to detect
// them at configuration-load time.
type Graph struct {
	hierarchy map[string][]string
}

// NewGraph creates a Graph over the given hierarchy map. The map is read,
// never mutated.
func NewGraph(hierarchy map[string][]string) *Graph {
	return &Graph{hierarchy: hierarchy}
}

// ReachableRoles returns start plus every role transitively reachable
// from it through parent edges. Visited roles are never re-queued, so
// the walk terminates even on a cyclic hierarchy.
func (g *Graph) ReachableRoles(start string) map[string]struct{} {
	reached := map[string]struct{}{start: {}}
	queue := []string{start}

	for len(queue) > 0 {
		role := queue[0]
		queue = queue[1:]

		for _, parent := range g.hierarchy[role] {
			if _, seen := reached[parent]; seen {
				continue
			}
			reached[parent] = struct{}{}
			queue = append(queue, parent)
		}
	}

	return reached
}

// IsGranted reports whether required is reachable from at least one of
// userRoles. A role always grants itself.
func (g *Graph) IsGranted(userRoles []string, required string) bool {
	for _, role := range userRoles {
		if _, ok := g.ReachableRoles(role)[required]; ok {
			return true
		}
	}
	return false
}

// RolesGranting returns every known role whose reachable set contains
// target, plus target itself. The result is sorted for stable output in
// administrative tooling.
func (g *Graph) RolesGranting(target string) []string {
	granting := map[string]struct{}{target: {}}
	for role := range g.hierarchy {
		if _, ok := g.ReachableRoles(role)[target]; ok {
			granting[role] = struct{}{}
		}
	}

	result := make([]string, 0, len(granting))
	for role := range granting {
		result = append(result, role)
	}
	sort.Strings(result)
	return result
}

// Validate reports whether the hierarchy is acyclic. It runs a
// three-color depth-first search and returns false on the first cycle
// found. Intended for configuration-load time; the decision path never
// calls it.
func (g *Graph) Validate() bool {
	const (
		unvisited = iota
		inProgress
		done
	)

	color := make(map[string]int, len(g.hierarchy))

	var visit func(role string) bool
	visit = func(role string) bool {
		switch color[role] {
		case inProgress:
			return false
		case done:
			return true
		}
		color[role] = inProgress
		for _, parent := range g.hierarchy[role] {
			if !visit(parent) {
				return false
			}
		}
		color[role] = done
		return true
	}

	for role := range g.hierarchy {
		if !visit(role) {
			return false
		}
	}
	return true
}
