package sorts

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownAlgorithm is returned by Registry.Get for unregistered names.
var ErrUnknownAlgorithm = errors.New("sorts: unknown algorithm")

type Registry struct {
	algorithms map[string]Algorithm
	aliases    map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		algorithms: make(map[string]Algorithm),
		aliases:    make(map[string]string),
	}

	r.algorithms["bubble"] = Bubble
	r.algorithms["quick"] = Quick

	r.aliases["bubblesort"] = "bubble"
	r.aliases["quicksort"] = "quick"

	return r
}

// Get resolves a name or alias.
func (r *Registry) Get(name string) (Algorithm, error) {
	if canonical, ok := r.aliases[name]; ok {
		name = canonical
	}
	fn, ok := r.algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownAlgorithm, name, r.Names())
	}
	return fn, nil
}

// Canonical returns the registered name for name or one of its aliases.
func (r *Registry) Canonical(name string) string {
	if canonical, ok := r.aliases[name]; ok {
		return canonical
	}
	return name
}

// Resolve maps names and aliases to canonical names, dropping repeats and
// keeping first-seen order. It fails on the first unknown name.
func (r *Registry) Resolve(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if _, err := r.Get(name); err != nil {
			return nil, err
		}
		canonical := r.Canonical(name)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	return out, nil
}

// Names lists registered algorithms in sorted order, without aliases.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.algorithms))
	for name := range r.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
