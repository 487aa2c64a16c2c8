package ecs

import (
	"fmt"

	"github.com/milk9111/brawler/ecs/component"
)

// Add stores value as e's component for handle, replacing any previous value.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value *T) error {
	if w == nil || !w.IsAlive(e) {
		return fmt.Errorf("add component to %s: %w", e, component.ErrEntityNotAlive)
	}
	if !handle.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("add component to %s: %w", e, component.ErrNilComponent)
	}
	w.store(handle.ID(), true).set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	s := w.store(handle.ID(), false)
	if s == nil {
		return false
	}
	return s.remove(e)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	if w == nil {
		return false
	}
	s := w.store(handle.ID(), false)
	return s != nil && s.has(e)
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (*T, bool) {
	if w == nil {
		return nil, false
	}
	s := w.store(handle.ID(), false)
	if s == nil {
		return nil, false
	}
	value, ok := s.get(e)
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	return cast, ok
}

// ForEach calls fn for every entity holding handle's component.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.store(handle.ID(), false)
	if s == nil {
		return
	}
	// copy so fn may add or remove components
	ents := append([]Entity(nil), s.denseEntities...)
	for _, e := range ents {
		if v, ok := Get(w, e, handle); ok {
			fn(e, v)
		}
	}
}

// First returns the first entity holding handle's component.
func First[T any](w *World, handle component.ComponentHandle[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(handle.ID(), false)
	if s == nil || s.len() == 0 {
		return 0, false
	}
	return s.denseEntities[0], true
}
