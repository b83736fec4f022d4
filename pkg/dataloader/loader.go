package dataloader

import (
	"fmt"
	"sync"
	"time"

	dataloaden "github.com/UnAfraid/dataloaden/v2/dataloader"
)

var _ dataloaden.DataLoader[string, any] = (*Loader[string, any])(nil)

// Loader batches and caches requests for one loader kind within one registry.
type Loader[K comparable, V any] struct {
	name LoaderName

	// this method provides the data for the loader
	fetch func(keys []K) ([]V, []error)

	// how long to wait before sending a batch
	wait time.Duration

	// this will limit the maximum number of keys to send in one batch, 0 = no limit
	maxBatch int

	observer Observer

	// lazily created cache, holds pending and resolved entries
	cache map[K]*entry[V]

	// bumped by ClearAll
	generation uint64

	// the current batch. keys will continue to be collected until timeout is hit,
	// then everything will be sent to the fetch method and out to the listeners
	batch *loaderBatch[K, V]

	// mutex to prevent races
	mu sync.Mutex
}

type entry[V any] struct {
	done  chan struct{}
	value V
	err   error
}

func (e *entry[V]) wait() (V, error) {
	<-e.done
	return e.value, e.err
}

type loaderBatch[K comparable, V any] struct {
	keys    []K
	entries []*entry[V]
	index   map[K]int
	closing bool
}

// NewLoader creates a new Loader given a fetch, wait, and maxBatch
func NewLoader[K comparable, V any](name LoaderName, config dataloaden.Config[K, V], observer Observer) *Loader[K, V] {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Loader[K, V]{
		name:     name,
		fetch:    config.Fetch,
		wait:     config.Wait,
		maxBatch: config.MaxBatch,
		observer: observer,
	}
}

// Name returns the loader kind this instance was constructed for.
func (l *Loader[K, V]) Name() LoaderName {
	return l.name
}

// Load a value by key, batching and caching will be applied automatically
func (l *Loader[K, V]) Load(key K) (V, error) {
	return l.LoadThunk(key)()
}

// LoadThunk returns a function that when called will block waiting for a value.
// This method should be used if you want one goroutine to make requests to many
// different data loaders without blocking until the thunk is called.
func (l *Loader[K, V]) LoadThunk(key K) func() (V, error) {
	l.mu.Lock()
	e := l.unsafeEntry(key)
	l.mu.Unlock()

	return e.wait
}

// LoadAll fetches many keys at once. It will be broken into appropriate sized
// sub batches depending on how the loader is configured
func (l *Loader[K, V]) LoadAll(keys []K) ([]V, []error) {
	return l.LoadAllThunk(keys)()
}

// LoadAllThunk returns a function that when called will block waiting for the values.
// This method should be used if you want one goroutine to make requests to many
// different data loaders without blocking until the thunk is called.
func (l *Loader[K, V]) LoadAllThunk(keys []K) func() ([]V, []error) {
	entries := make([]*entry[V], len(keys))
	l.mu.Lock()
	for i, key := range keys {
		entries[i] = l.unsafeEntry(key)
	}
	l.mu.Unlock()

	return func() ([]V, []error) {
		values := make([]V, len(entries))
		errs := make([]error, len(entries))
		for i, e := range entries {
			values[i], errs[i] = e.wait()
		}
		return values, errs
	}
}

// Prime the cache with the provided key and value. If the key already exists, no change is made
// and false is returned.
// (To forcefully prime the cache, clear the key first with loader.Clear(key).Prime(key, value).)
func (l *Loader[K, V]) Prime(key K, value V) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.unsafePrime(key, value)
}

func (l *Loader[K, V]) unsafePrime(key K, value V) bool {
	if _, found := l.cache[key]; found {
		return false
	}

	e := &entry[V]{done: make(chan struct{}), value: value}
	close(e.done)
	l.unsafeSet(key, e)
	return true
}

// Clear the value at key from the cache, if it exists
func (l *Loader[K, V]) Clear(key K) {
	l.mu.Lock()
	delete(l.cache, key)
	l.mu.Unlock()
}

// ClearAll drops every memoized entry. A batch already handed to fetch keeps running and its
// waiters still receive the result.
func (l *Loader[K, V]) ClearAll() {
	l.mu.Lock()
	l.cache = nil
	l.generation++
	l.mu.Unlock()
}

// Generation changes every time the loader is cleared with ClearAll.
func (l *Loader[K, V]) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

// Len returns the number of memoized entries, pending ones included.
func (l *Loader[K, V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}

func (l *Loader[K, V]) unsafeSet(key K, e *entry[V]) {
	if l.cache == nil {
		l.cache = map[K]*entry[V]{}
	}
	l.cache[key] = e
}

// unsafeEntry returns the memoized entry for key or queues the key on the current batch.
// A key cleared while its batch is still collecting is re-attached to the queued entry,
// so a batch never carries the same key twice.
func (l *Loader[K, V]) unsafeEntry(key K) *entry[V] {
	if e, ok := l.cache[key]; ok {
		return e
	}

	if l.batch == nil {
		l.batch = &loaderBatch[K, V]{index: map[K]int{}}
	}

	if pos, ok := l.batch.index[key]; ok {
		e := l.batch.entries[pos]
		l.unsafeSet(key, e)
		return e
	}

	e := &entry[V]{done: make(chan struct{})}
	l.unsafeSet(key, e)
	l.batch.add(l, key, e)
	return e
}

func (b *loaderBatch[K, V]) add(l *Loader[K, V], key K, e *entry[V]) {
	pos := len(b.keys)
	b.keys = append(b.keys, key)
	b.entries = append(b.entries, e)
	b.index[key] = pos

	if pos == 0 {
		go b.startTimer(l)
	}

	if l.maxBatch != 0 && pos >= l.maxBatch-1 {
		if !b.closing {
			b.closing = true
			l.batch = nil
			go b.end(l)
		}
	}
}

func (b *loaderBatch[K, V]) startTimer(l *Loader[K, V]) {
	time.Sleep(l.wait)
	l.mu.Lock()

	// we must have hit a batch limit and are already finalizing this batch
	if b.closing {
		l.mu.Unlock()
		return
	}

	b.closing = true
	l.batch = nil
	l.mu.Unlock()

	b.end(l)
}

func (b *loaderBatch[K, V]) end(l *Loader[K, V]) {
	start := time.Now()
	values, errs := b.dispatch(l)
	l.observer.ObserveDispatch(l.name, len(b.keys), time.Since(start), batchError(errs))

	l.mu.Lock()
	for i, key := range b.keys {
		e := b.entries[i]
		if i < len(values) {
			e.value = values[i]
		}
		e.err = errorAt(errs, i)

		current, memoized := l.cache[key]
		switch {
		case e.err != nil:
			if memoized && current == e {
				delete(l.cache, key)
			}
		case !memoized:
			// cleared while in flight, the fresh result re-populates the cache
			l.unsafeSet(key, e)
		}
	}
	l.mu.Unlock()

	for _, e := range b.entries {
		close(e.done)
	}
}

func (b *loaderBatch[K, V]) dispatch(l *Loader[K, V]) (values []V, errs []error) {
	defer func() {
		if r := recover(); r != nil {
			values, errs = nil, []error{fmt.Errorf("%w: %s: %v", ErrFetchPanic, l.name, r)}
		}
	}()

	values, errs = l.fetch(b.keys)
	if batchError(errs) == nil && len(values) != len(b.keys) {
		return nil, []error{fmt.Errorf("%w: %s: %d keys, %d values", ErrFetchResultMismatch, l.name, len(b.keys), len(values))}
	}
	if len(errs) > 1 && len(errs) != len(b.keys) {
		return nil, []error{fmt.Errorf("%w: %s: %d keys, %d errors", ErrFetchResultMismatch, l.name, len(b.keys), len(errs))}
	}
	return values, errs
}

// errorAt follows the dataloaden convention: a single error applies to the whole batch,
// otherwise errors are positional.
func errorAt(errs []error, pos int) error {
	if len(errs) == 1 {
		return errs[0]
	}
	if pos < len(errs) {
		return errs[pos]
	}
	return nil
}

func batchError(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
