package gekkoedit

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"

	"github.com/gekko3d/gekko-editor/geom/core"
)

// TransformComponent is the entity's own transform; it is never shared between entities.
type TransformComponent struct {
	core.Transform
}

func NewTransformComponent(position mgl32.Vec3) TransformComponent {
	tr := core.NewTransform()
	tr.Position = position
	return TransformComponent{Transform: tr}
}

// GeometryComponent references shared geometry in the AssetServer.
type GeometryComponent struct {
	Asset AssetId
}

// Material is shared by pointer between linked clones.
type Material struct {
	Color mgl32.Vec3
}

type MaterialComponent struct {
	Material *Material
}

func NewMaterialComponent(color mgl32.Vec3) MaterialComponent {
	return MaterialComponent{Material: &Material{Color: color}}
}

// ColliderComponent opts an entity into collision detection. Colliding is rewritten
// every frame by the collision system.
type ColliderComponent struct {
	Colliding bool
}

// CloneEntity queues a copy of src and returns its id. The transform is deep-copied and
// the geometry is shared. With linkMaterial the clone shares src's material, otherwise it
// gets its own copy. The colliding flag starts cleared. Returns 0 when src does not exist.
func CloneEntity(cmd *Commands, src EntityId, linkMaterial bool) EntityId {
	if !cmd.HasEntity(src) {
		return 0
	}

	comps := cmd.GetAllComponents(src)
	clone := make([]any, 0, len(comps))
	for _, c := range comps {
		switch v := c.(type) {
		case TransformComponent:
			clone = append(clone, TransformComponent{Transform: v.Clone()})
		case MaterialComponent:
			if !linkMaterial && v.Material != nil {
				m := &Material{}
				if err := copier.CopyWithOption(m, v.Material, copier.Option{DeepCopy: true}); err != nil {
					cmd.Logger().Warnf("clone %d: copy material: %v", src, err)
					*m = *v.Material
				}
				v.Material = m
			}
			clone = append(clone, v)
		case ColliderComponent:
			clone = append(clone, ColliderComponent{})
		default:
			clone = append(clone, c)
		}
	}
	return cmd.AddEntity(clone...)
}

type NameComponent struct {
	Name string
}
