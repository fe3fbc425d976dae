// Package registry maps reference ids (GUIDs) to objects that have already
// been parsed, so that an element carrying a known id resolves to the
// existing object instead of being parsed again.
//
// A Registry belongs to exactly one document load. It is not safe for
// concurrent use; independent loads each create their own.
package registry

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by Get for an id that was never set.
	ErrNotFound = errors.New("reference not found")
	// ErrDuplicate is returned by Set when an id is reintroduced for a
	// different object.
	ErrDuplicate = errors.New("duplicate reference id")
)

// Registry holds the reference id -> object entries of a single load.
type Registry struct {
	entries  map[string]any
	generate func() string
}

// New creates an empty registry that generates random UUIDs.
func New() *Registry {
	return NewWithGenerator(uuid.NewString)
}

// NewWithGenerator creates an empty registry whose Generate calls gen.
func NewWithGenerator(gen func() string) *Registry {
	return &Registry{
		entries:  make(map[string]any),
		generate: gen,
	}
}

// Exists reports whether id has been registered.
func (r *Registry) Exists(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// Get returns the object registered under id.
func (r *Registry) Get(id string) (any, error) {
	obj, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return obj, nil
}

// Set registers obj under id. Setting the same object again is a no-op;
// an id already bound to a different object is rejected with ErrDuplicate
// and the existing entry is kept.
func (r *Registry) Set(id string, obj any) error {
	if existing, ok := r.entries[id]; ok {
		if existing == obj {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrDuplicate, id)
	}
	r.entries[id] = obj
	return nil
}

// Generate returns a fresh id for an element that carries none.
func (r *Registry) Generate() string {
	return r.generate()
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// ScopeTransform derives the id under which a canvas-local reference id is
// registered, so that equal local ids in independently loaded documents do
// not collide. The result is a name-based (SHA-1) UUID in the namespace of
// rootID; a rootID that is not itself a UUID is first hashed into one.
func ScopeTransform(id, rootID string) string {
	return uuid.NewSHA1(namespace(rootID), []byte(id)).String()
}

func namespace(rootID string) uuid.UUID {
	if ns, err := uuid.Parse(rootID); err == nil {
		return ns
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(rootID))
}
