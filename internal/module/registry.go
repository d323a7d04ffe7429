package module

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrInvalidName is returned when a module name does not start with an ASCII letter.
	ErrInvalidName = errors.New("module name must start with an ASCII letter")
	// ErrDuplicateName is returned when two modules share the same name.
	ErrDuplicateName = errors.New("duplicate module name")
)

// Registry holds the known modules, bucketed by the first letter of their name.
type Registry struct {
	buckets [26][]Module
}

// NewRegistry returns a registry holding mods.
func NewRegistry(mods ...Module) (*Registry, error) {
	r := &Registry{}

	for _, m := range mods {
		idx, ok := bucket(m.Name())
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, m.Name())
		}
		for _, other := range r.buckets[idx] {
			if foldEqual(other.Name(), m.Name()) {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateName, m.Name())
			}
		}
		r.buckets[idx] = append(r.buckets[idx], m)
	}

	return r, nil
}

// Lookup returns the module named name, compared case-insensitively.
func (r *Registry) Lookup(name string) (Module, bool) {
	idx, ok := bucket(name)
	if !ok {
		return nil, false
	}

	for _, m := range r.buckets[idx] {
		if foldEqual(m.Name(), name) {
			return m, true
		}
	}
	return nil, false
}

// ParseOption gives a --<module>-<subkey> command line option to the modules whose name starts
// with the same letter. The first module handling it wins.
// It returns false if key is not in that form or no module handles it.
func (r *Registry) ParseOption(key, value string) (bool, error) {
	if len(key) < 3 || !strings.HasPrefix(key, "--") {
		return false, nil
	}
	idx, ok := bucket(key[2:])
	if !ok {
		return false, nil
	}

	for _, m := range r.buckets[idx] {
		handled, err := m.ParseOption(key, value)
		if handled {
			return true, err
		}
	}
	return false, nil
}

// Modules returns every module, sorted by name.
func (r *Registry) Modules() []Module {
	var mods []Module
	for _, b := range r.buckets {
		mods = append(mods, b...)
	}
	slices.SortFunc(mods, func(a, b Module) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return mods
}

// bucket returns the index of the bucket of name, from its first letter.
func bucket(name string) (int, bool) {
	if name == "" {
		return 0, false
	}

	c := name[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < 'A' || c > 'Z' {
		return 0, false
	}
	return int(c - 'A'), true
}

func foldEqual(a, b string) bool {
	f := cases.Fold()
	return f.String(a) == f.String(b)
}

// configType returns the name of a module as written in configuration documents.
func configType(name string) string {
	return cases.Lower(language.Und).String(name)
}
