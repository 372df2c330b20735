package gekkoedit

import (
	"reflect"
)

// Queries visit matching entities archetype by archetype, in archetype creation order
// and then row order. Returning false from the callback stops the iteration.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }

func (q Query1[A]) Map(m func(EntityId, *A) bool) {
	id1 := identifyComponent[A](q.ecs)

	for _, arch := range q.ecs.archetypeOrder {
		data1, ok := arch.componentData[id1]
		if !ok {
			continue
		}
		comps1 := data1.([]A)

		for r, eid := range arch.rows {
			if eid == 0 {
				continue
			}
			if !m(eid, &comps1[r]) {
				return
			}
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool) {
	id1 := identifyComponent[A](q.ecs)
	id2 := identifyComponent[B](q.ecs)

	for _, arch := range q.ecs.archetypeOrder {
		data1, ok1 := arch.componentData[id1]
		data2, ok2 := arch.componentData[id2]
		if !ok1 || !ok2 {
			continue
		}
		comps1 := data1.([]A)
		comps2 := data2.([]B)

		for r, eid := range arch.rows {
			if eid == 0 {
				continue
			}
			if !m(eid, &comps1[r], &comps2[r]) {
				return
			}
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool) {
	id1 := identifyComponent[A](q.ecs)
	id2 := identifyComponent[B](q.ecs)
	id3 := identifyComponent[C](q.ecs)

	for _, arch := range q.ecs.archetypeOrder {
		data1, ok1 := arch.componentData[id1]
		data2, ok2 := arch.componentData[id2]
		data3, ok3 := arch.componentData[id3]
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		comps1 := data1.([]A)
		comps2 := data2.([]B)
		comps3 := data3.([]C)

		for r, eid := range arch.rows {
			if eid == 0 {
				continue
			}
			if !m(eid, &comps1[r], &comps2[r], &comps3[r]) {
				return
			}
		}
	}
}

// GetComponent returns a pointer to entity's component of type T, or nil when the entity
// does not exist or lacks it. The pointer is valid until the next command flush.
func GetComponent[T any](cmd *Commands, entity EntityId) *T {
	c := cmd.app.ecs.component(entity, reflect.TypeFor[T]())
	if c == nil {
		return nil
	}
	return c.(*T)
}

func identifyComponent[T any](ecs *Ecs) componentId {
	return ecs.getComponentId(reflect.TypeFor[T]())
}
