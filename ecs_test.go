package gekkoedit

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcs_MakeEcs(t *testing.T) {
	ecs := MakeEcs()

	assert.Empty(t, ecs.archetypes)
	assert.Empty(t, ecs.archetypeOrder)
	assert.Empty(t, ecs.entityIndex)
	assert.Equal(t, EntityId(0), ecs.entityIdCounter)
	assert.Equal(t, componentId(0), ecs.componentIdCounter)
}

func TestEcs_AddEntity(t *testing.T) {
	type TestComponent struct {
		x string
	}

	ecs := MakeEcs()
	entityId := ecs.addEntity()
	assert.True(t, ecs.hasEntity(entityId))

	entityId2 := ecs.addEntity(TestComponent{x: "test"})
	assert.True(t, ecs.hasEntity(entityId2))

	assert.NotEqual(t, ecs.entityIndex[entityId], ecs.entityIndex[entityId2],
		"entities with different components must not share an archetype")
}

func TestEcs_EntityIdsAreMonotonic(t *testing.T) {
	type Position struct{ X float32 }

	ecs := MakeEcs()
	a := ecs.addEntity(Position{})
	b := ecs.addEntity(Position{})
	ecs.removeEntity(a)
	c := ecs.addEntity(Position{})

	assert.Equal(t, EntityId(1), a)
	assert.Equal(t, EntityId(2), b)
	assert.Equal(t, EntityId(3), c, "ids are never reused")
	assert.False(t, ecs.hasEntity(a))
}

func TestEcs_AddComponents(t *testing.T) {
	type TestComponent0 struct{ a int }
	type TestComponent1 struct{ x string }
	type TestComponent2 struct{ y string }
	type TestComponent3 struct{ z string }

	ecs := MakeEcs()
	entityId := ecs.addEntity(TestComponent0{a: 1337})
	ecs.addComponents(entityId, TestComponent1{x: "test"}, TestComponent2{y: "hello"})
	// Pointers are stored by value.
	ecs.addComponents(entityId, &TestComponent3{z: "test-2"})

	arch := ecs.archetypes[ecs.entityIndex[entityId]]
	assert.Len(t, arch.componentData, 4)

	c0 := ecs.component(entityId, reflect.TypeFor[TestComponent0]()).(*TestComponent0)
	c3 := ecs.component(entityId, reflect.TypeFor[TestComponent3]()).(*TestComponent3)
	assert.Equal(t, 1337, c0.a)
	assert.Equal(t, "test-2", c3.z)
}

func TestEcs_AddComponentsOverwritesExisting(t *testing.T) {
	type Health struct{ HP int }

	ecs := MakeEcs()
	eid := ecs.addEntity(Health{HP: 1})
	archBefore := ecs.entityIndex[eid]
	ecs.addComponents(eid, Health{HP: 5})

	assert.Equal(t, archBefore, ecs.entityIndex[eid])
	assert.Equal(t, 5, ecs.component(eid, reflect.TypeFor[Health]()).(*Health).HP)
}

func TestEcs_RemoveComponents(t *testing.T) {
	type A struct{ V int }
	type B struct{ V int }

	ecs := MakeEcs()
	eid := ecs.addEntity(A{V: 1}, B{V: 2})
	ecs.removeComponents(eid, B{})

	assert.Nil(t, ecs.component(eid, reflect.TypeFor[B]()))
	assert.Equal(t, 1, ecs.component(eid, reflect.TypeFor[A]()).(*A).V)

	// Removing a component the entity lacks is a no-op.
	arch := ecs.entityIndex[eid]
	ecs.removeComponents(eid, B{})
	assert.Equal(t, arch, ecs.entityIndex[eid])
}

func TestEcs_AddInvalidComponentShouldPanic(t *testing.T) {
	ecs := MakeEcs()
	assert.Panics(t, func() { ecs.addEntity(123) })
	assert.Panics(t, func() { ecs.addEntity(nil) })
}

func TestEcs_ComponentRegistration(t *testing.T) {
	type Position struct{ x, y float64 }

	ecs := MakeEcs()
	id1 := ecs.getComponentId(reflect.TypeOf(Position{}))
	id2 := ecs.getComponentId(reflect.TypeOf(Position{}))

	assert.Equal(t, id1, id2)
	assert.Equal(t, reflect.TypeOf(Position{}), ecs.componentIdTypeMap[id1])
}

func TestEcs_ArchetypeKey(t *testing.T) {
	key := dedupAndSortArchetypeKey([]componentId{3, 1, 2, 1, 3})
	assert.Equal(t, archetypeKey{1, 2, 3}, key)

	assert.Equal(t, getArchetypeId(archetypeKey{1, 2, 3}), getArchetypeId(key))
	assert.NotEqual(t, getArchetypeId(archetypeKey{1, 2}), getArchetypeId(key))
}

func TestEcs_RemoveEntity(t *testing.T) {
	type Position struct{ X, Y float64 }

	ecs := MakeEcs()
	id := ecs.addEntity(Position{1, 2})
	ecs.removeEntity(id)
	assert.False(t, ecs.hasEntity(id))

	// Unknown ids are ignored.
	ecs.removeEntity(id)
	ecs.removeEntity(999)
}

func TestEcs_RecycledRowsAreReusedLowestFirst(t *testing.T) {
	type Position struct{ X float32 }

	ecs := MakeEcs()
	ids := []EntityId{
		ecs.addEntity(Position{X: 1}),
		ecs.addEntity(Position{X: 2}),
		ecs.addEntity(Position{X: 3}),
	}
	ecs.removeEntity(ids[2])
	ecs.removeEntity(ids[0])

	arch := ecs.archetypes[ecs.entityIndex[ids[1]]]
	assert.Equal(t, []EntityId{0, ids[1], 0}, arch.rows)

	fresh := ecs.addEntity(Position{X: 4})
	require.Equal(t, row(0), arch.entities[fresh])
	assert.Equal(t, []EntityId{fresh, ids[1], 0}, arch.rows)
}
