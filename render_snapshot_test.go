package gekkoedit

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSnapshot_Colors(t *testing.T) {
	f := newEditorFixture(t)
	out := Resource[RenderSnapshotContainer](f.app)
	assert.Nil(t, out.Get())

	f.app.Tick()
	snap := out.Get()
	require.NotNil(t, snap)
	require.Len(t, snap.Items, 2)
	assert.Empty(t, snap.Gizmo, "no arms without a selection")
	assert.Equal(t, defaultShapeColor, snap.Items[0].Color)
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, snap.Camera.Position)

	f.click(50, 50)
	snap = out.Get()
	assert.Equal(t, uint64(2), snap.Frame)
	assert.Equal(t, f.target, snap.Items[0].Entity)
	assert.Equal(t, SelectedColor, snap.Items[0].Color)
	assert.Equal(t, defaultShapeColor, snap.Items[1].Color)
	require.Len(t, snap.Gizmo, 3)
	for i, item := range snap.Gizmo {
		assert.Equal(t, GizmoAxisColors[i], item.Color)
		assert.Zero(t, item.Entity)
	}

	// Colliding wins over selected.
	GetComponent[TransformComponent](f.cmd, f.other).Position = mgl32.Vec3{0.5, 0, 0}
	f.app.Tick()
	snap = out.Get()
	assert.Equal(t, CollidingColor, snap.Items[0].Color)
	assert.Equal(t, CollidingColor, snap.Items[1].Color)
}

func TestRenderSnapshotContainer(t *testing.T) {
	var c RenderSnapshotContainer
	s := &RenderSnapshot{Frame: 7}
	c.Update(s)
	assert.Same(t, s, c.Get())
}
