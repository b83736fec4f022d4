package dataloader

import (
	"golang.org/x/exp/slices"
)

// DependencyGraph records which derived loaders must be cleared when a loader they depend on is
// cleared. Edges point from a derived loader to the loader it depends on and are stored reversed,
// since invalidation walks from a primary towards its dependents.
//
// DependencyGraph is not safe for concurrent use, the registry owning it serializes access.
type DependencyGraph struct {
	dependents map[LoaderName][]LoaderName
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		dependents: make(map[LoaderName][]LoaderName),
	}
}

// Declare adds the edges derived -> primary for every primary. Declaring an existing edge is a no-op.
func (g *DependencyGraph) Declare(derived LoaderName, primaries ...LoaderName) {
	for _, primary := range primaries {
		if slices.Contains(g.dependents[primary], derived) {
			continue
		}
		g.dependents[primary] = append(g.dependents[primary], derived)
	}
}

// Dependents returns the loaders that declared a direct dependency on primary, in declaration order.
func (g *DependencyGraph) Dependents(primary LoaderName) []LoaderName {
	return slices.Clone(g.dependents[primary])
}

// Closure returns the start names followed by every loader transitively depending on them,
// breadth first. Each name appears once, so a mistakenly declared cycle terminates.
func (g *DependencyGraph) Closure(start ...LoaderName) []LoaderName {
	visited := make(map[LoaderName]struct{}, len(start))
	closure := make([]LoaderName, 0, len(start))
	for _, name := range start {
		if _, ok := visited[name]; ok {
			continue
		}
		visited[name] = struct{}{}
		closure = append(closure, name)
	}

	for i := 0; i < len(closure); i++ {
		for _, dependent := range g.dependents[closure[i]] {
			if _, ok := visited[dependent]; ok {
				continue
			}
			visited[dependent] = struct{}{}
			closure = append(closure, dependent)
		}
	}
	return closure
}

// Len returns the number of distinct edges.
func (g *DependencyGraph) Len() (edges int) {
	for _, dependents := range g.dependents {
		edges += len(dependents)
	}
	return edges
}
