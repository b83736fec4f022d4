package dataloader

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Options configure the loaders constructed by one registry.
type Options struct {
	Wait     time.Duration
	MaxBatch int
	Observer Observer
}

// Registry holds the loaders of one request. Loaders are constructed on first use and live as long as
// the registry, together with the dependency edges they declared.
type Registry struct {
	state *registryState
	scope *constructionScope
}

type registryState struct {
	ctx     context.Context
	table   *Table
	options Options

	// serializes construction, nested constructions run inside the holder's scope
	buildMu sync.Mutex

	mu      sync.RWMutex
	loaders map[LoaderName]Instance
	graph   *DependencyGraph
}

// constructionScope is the chain of loaders being constructed, innermost last. It is handed to
// factories through their registry and stops being active once the factory returns, so batch
// functions capturing that registry construct like a top-level caller.
type constructionScope struct {
	path   []LoaderName
	active atomic.Bool
}

func (s *constructionScope) isActive() bool {
	return s != nil && s.active.Load()
}

func (s *constructionScope) enter(name LoaderName) *constructionScope {
	var path []LoaderName
	if s.isActive() {
		path = append(path, s.path...)
	}
	child := &constructionScope{path: append(path, name)}
	child.active.Store(true)
	return child
}

func (s *constructionScope) contains(name LoaderName) bool {
	for _, n := range s.path {
		if n == name {
			return true
		}
	}
	return false
}

func (s *constructionScope) String() string {
	names := make([]string, len(s.path))
	for i, name := range s.path {
		names[i] = string(name)
	}
	return strings.Join(names, " -> ")
}

func newRegistry(ctx context.Context, table *Table, options Options) *Registry {
	if options.Observer == nil {
		options.Observer = NopObserver{}
	}
	return &Registry{
		state: &registryState{
			ctx:     ctx,
			table:   table,
			options: options,
			loaders: make(map[LoaderName]Instance),
			graph:   NewDependencyGraph(),
		},
	}
}

// Get returns the loader of definition, constructing it on first use.
// It panics when definition is not part of the registry's table.
func Get[K comparable, V any](registry *Registry, definition *Definition[K, V]) *Loader[K, V] {
	instance := registry.resolve(definition)
	loader, ok := instance.(*Loader[K, V])
	if !ok {
		panic(fmt.Errorf("%w: %s is %T", ErrLoaderTypeMismatch, definition.Name(), instance))
	}
	return loader
}

// Instance returns the loader registered under name, constructing it on first use.
// It panics when name is not part of the registry's table.
func (r *Registry) Instance(name LoaderName) Instance {
	return r.resolve(r.state.table.mustLookup(name))
}

// Context returns the context batch functions run with.
func (r *Registry) Context() context.Context {
	return r.state.ctx
}

// Instantiated reports whether the loader for name was constructed by this registry.
func (r *Registry) Instantiated(name LoaderName) bool {
	_, ok := r.state.lookup(name)
	return ok
}

// Dependents returns the loaders that declared a direct dependency on name so far.
func (r *Registry) Dependents(name LoaderName) []LoaderName {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	return r.state.graph.Dependents(name)
}

// Edges returns the number of dependency edges declared so far.
func (r *Registry) Edges() int {
	r.state.mu.RLock()
	defer r.state.mu.RUnlock()
	return r.state.graph.Len()
}

// Invalidate clears every memoized entry of the named loaders and of every loader transitively
// depending on them. Loaders that were never constructed are skipped. It returns the cleared loaders.
func (r *Registry) Invalidate(names ...LoaderName) []LoaderName {
	s := r.state
	for _, name := range names {
		s.table.mustLookup(name)
	}

	s.mu.RLock()
	closure := s.graph.Closure(names...)
	var cleared []LoaderName
	var instances []Instance
	for _, name := range closure {
		if instance, ok := s.loaders[name]; ok {
			cleared = append(cleared, name)
			instances = append(instances, instance)
		}
	}
	s.mu.RUnlock()

	for _, instance := range instances {
		instance.ClearAll()
	}

	s.options.Observer.ObserveInvalidate(names, cleared)
	logrus.
		WithField("requested", names).
		WithField("cleared", cleared).
		Debug("invalidated loaders")

	return cleared
}

func (r *Registry) resolve(kind Kind) Instance {
	s := r.state
	name := kind.Name()
	if !s.table.has(kind) {
		panic(fmt.Errorf("%w: %s", ErrUnknownLoader, name))
	}

	if instance, ok := s.lookup(name); ok {
		return instance
	}

	if r.scope.isActive() {
		if r.scope.contains(name) {
			panic(fmt.Errorf("%w: %s -> %s", ErrCircularConstruction, r.scope, name))
		}
	} else {
		s.buildMu.Lock()
		defer s.buildMu.Unlock()

		if instance, ok := s.lookup(name); ok {
			return instance
		}
	}

	scope := r.scope.enter(name)
	defer scope.active.Store(false)

	dependsOn := func(primaries ...LoaderName) {
		s.declare(name, primaries)
	}
	instance := kind.instantiate(&Registry{state: s, scope: scope}, dependsOn)

	s.mu.Lock()
	s.loaders[name] = instance
	s.mu.Unlock()

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.
			WithField("loader", name).
			WithField("dependsOn", s.dependsOn(name)).
			Debug("constructed loader")
	}

	return instance
}

func (s *registryState) lookup(name LoaderName) (Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	instance, ok := s.loaders[name]
	return instance, ok
}

func (s *registryState) declare(derived LoaderName, primaries []LoaderName) {
	for _, primary := range primaries {
		if _, ok := s.table.Lookup(primary); !ok {
			panic(fmt.Errorf("%w: %s depends on %s", ErrUnknownDependency, derived, primary))
		}
	}

	s.mu.Lock()
	s.graph.Declare(derived, primaries...)
	s.mu.Unlock()
}

func (s *registryState) dependsOn(derived LoaderName) []LoaderName {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var primaries []LoaderName
	for _, name := range s.table.names {
		for _, dependent := range s.graph.dependents[name] {
			if dependent == derived {
				primaries = append(primaries, name)
			}
		}
	}
	return primaries
}
