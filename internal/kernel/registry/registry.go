// Package registry holds the block kernels available to the accelerated
// strategy.
//
// Architecture packages register an Entry from init(). At runtime the
// highest-priority entry that both supports the detected CPU and provides the
// requested operation is selected. Several entries may coexist: a generic
// pure Go fallback at priority 0 and vector-backed entries above it.
package registry

import (
	"slices"
	"sync"

	"github.com/cwbudde/algo-bench/internal/cpu"
)

// BlockFunc computes dst[i] = f(src[i]) for every i, in increasing index
// order. Implementations panic if the slice lengths differ.
type BlockFunc func(dst, src []float64)

// Entry is one implementation variant.
type Entry struct {
	// Name identifies the variant, e.g. "generic" or "vecmath".
	Name string

	// SIMDLevel is the instruction set the variant requires.
	SIMDLevel cpu.SIMDLevel

	// Priority orders compatible variants; higher wins. Generic is 0.
	Priority int

	// Kernels maps a transform kernel name to its block implementation.
	// An entry need not implement every operation.
	Kernels map[string]BlockFunc
}

// Kernel returns the block function for op.
func (e *Entry) Kernel(op string) (BlockFunc, bool) {
	fn, ok := e.Kernels[op]
	return fn, ok && fn != nil
}

// Ops returns the operation names the entry implements, sorted.
func (e *Entry) Ops() []string {
	ops := make([]string, 0, len(e.Kernels))
	for op, fn := range e.Kernels {
		if fn != nil {
			ops = append(ops, op)
		}
	}
	slices.Sort(ops)
	return ops
}

// Registry manages registered entries.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	sorted  bool
}

// Global is the registry populated by the arch packages.
var Global = &Registry{}

// Register adds entry, replacing an existing entry with the same name.
func (r *Registry) Register(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.entries {
		if r.entries[i].Name == entry.Name {
			r.entries[i] = entry
			r.sorted = false
			return
		}
	}

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority entry compatible with features that
// implements op, or nil if there is none.
func (r *Registry) Lookup(features cpu.Features, op string) *Entry {
	r.ensureSorted()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if !cpu.Supports(features, entry.SIMDLevel) {
			continue
		}
		if _, ok := entry.Kernel(op); ok {
			clone := *entry
			return &clone
		}
	}

	return nil
}

// Best returns the highest-priority entry compatible with features.
func (r *Registry) Best(features cpu.Features) *Entry {
	r.ensureSorted()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if cpu.Supports(features, r.entries[i].SIMDLevel) {
			clone := r.entries[i]
			return &clone
		}
	}

	return nil
}

// Ops returns the union of all registered operation names, sorted.
func (r *Registry) Ops() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ops []string
	for i := range r.entries {
		for _, op := range r.entries[i].Ops() {
			if !slices.Contains(ops, op) {
				ops = append(ops, op)
			}
		}
	}
	slices.Sort(ops)
	return ops
}

func (r *Registry) ensureSorted() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sorted {
		return
	}
	// Stable so that equal priorities keep registration order.
	slices.SortStableFunc(r.entries, func(a, b Entry) int {
		return b.Priority - a.Priority
	})
	r.sorted = true
}

// ListEntries returns a copy of the entries sorted by descending priority.
func (r *Registry) ListEntries() []Entry {
	r.ensureSorted()

	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.entries)
}

// Reset removes all entries. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}
