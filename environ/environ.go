package environ

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var ErrDefined = errors.New("already defined")

// Env maps names to values and falls back to its parent for the names it
// does not define itself. An Env must not be modified once it is shared.
type Env[T any] struct {
	values map[string]T
	parent *Env[T]
}

func Empty[T any]() *Env[T] {
	return Enclosed[T](nil)
}

func Enclosed[T any](parent *Env[T]) *Env[T] {
	e := Env[T]{
		values: make(map[string]T),
		parent: parent,
	}
	return &e
}

// Define binds ident in e. Shadowing a name of a parent is allowed,
// redefining a name of e is not.
func (e *Env[T]) Define(ident string, value T) error {
	if _, ok := e.values[ident]; ok {
		return fmt.Errorf("%s: %w", ident, ErrDefined)
	}
	e.values[ident] = value
	return nil
}

func (e *Env[T]) Resolve(ident string) (T, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[ident]; ok {
			return v, true
		}
	}
	var t T
	return t, false
}

// Names returns the sorted names visible from e.
func (e *Env[T]) Names() []string {
	var list []string
	for env := e; env != nil; env = env.parent {
		list = append(list, slices.Collect(maps.Keys(env.values))...)
	}
	slices.Sort(list)
	return slices.Compact(list)
}

func (e *Env[T]) Len() int {
	return len(e.Names())
}

func (e *Env[T]) Parent() *Env[T] {
	return e.parent
}
