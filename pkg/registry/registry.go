// Package registry holds the static catalog of utility tools. It is
// populated once during startup and treated as read-only afterwards.
package registry

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"
)

var (
	ErrDuplicateID    = errors.New("duplicate tool id")
	ErrNotFound       = errors.New("tool not found")
	ErrRegistryFrozen = errors.New("registry is frozen")
	ErrInvalidTool    = errors.New("invalid tool descriptor")
)

// Category groups related tools for enumeration.
type Category string

const (
	CategoryEncoding   Category = "encoding"
	CategoryFormatting Category = "formatting"
	CategoryGenerators Category = "generators"
	CategoryText       Category = "text"
	CategoryTime       Category = "time"
)

// Options is the open, tool-specific configuration record. Shared
// infrastructure passes it through untouched; only the tool body
// validates it.
type Options map[string]string

// Func is the contract every tool body satisfies: a pure, deterministic
// transformation of input plus options. Implementations must be free of
// side effects; same input and options always produce the same result.
type Func func(input string, opts Options) (string, error)

// ToolError is returned by tool bodies for user-correctable failures.
// The suggestion, when present, is surfaced alongside the message.
type ToolError struct {
	Message    string
	Suggestion string
}

func (e *ToolError) Error() string {
	return e.Message
}

// Descriptor identifies one tool in the catalog.
type Descriptor struct {
	ID            string
	Category      Category
	DisplayName   string
	RequiresInput bool
	Run           Func
}

type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Descriptor
	order  []string
	frozen bool
}

func New() *Registry {
	return &Registry{
		byID: make(map[string]Descriptor),
	}
}

// Register adds a descriptor to the catalog. A duplicate id fails with
// ErrDuplicateID and leaves the existing entry untouched.
func (r *Registry) Register(d Descriptor) error {
	if strings.TrimSpace(d.ID) == "" || d.Run == nil {
		return fmt.Errorf("%w: id and run function are required", ErrInvalidTool)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("%w: cannot register %q", ErrRegistryFrozen, d.ID)
	}
	if _, exists := r.byID[d.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, d.ID)
	}

	r.byID[d.ID] = d
	r.order = append(r.order, d.ID)
	return nil
}

// Lookup returns the descriptor for id or ErrNotFound.
func (r *Registry) Lookup(id string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return d, nil
}

// List yields all descriptors in registration order. The sequence is
// restartable; each range walks a fresh snapshot.
func (r *Registry) List() iter.Seq[Descriptor] {
	return r.list(func(Descriptor) bool { return true })
}

// ListByCategory yields the descriptors of one category in registration
// order.
func (r *Registry) ListByCategory(cat Category) iter.Seq[Descriptor] {
	return r.list(func(d Descriptor) bool { return d.Category == cat })
}

func (r *Registry) list(match func(Descriptor) bool) iter.Seq[Descriptor] {
	return func(yield func(Descriptor) bool) {
		r.mu.RLock()
		snapshot := make([]Descriptor, 0, len(r.order))
		for _, id := range r.order {
			snapshot = append(snapshot, r.byID[id])
		}
		r.mu.RUnlock()

		for _, d := range snapshot {
			if !match(d) {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}
}

// Freeze marks the registry read-only. Registration after Freeze is a
// programmer error and fails with ErrRegistryFrozen.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
