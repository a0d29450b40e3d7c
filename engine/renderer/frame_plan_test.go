package renderer

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/camera"
	"github.com/Carmen-Shannon/mosaic-go/engine/geometry"
	"github.com/Carmen-Shannon/mosaic-go/engine/renderable"
	"github.com/Carmen-Shannon/mosaic-go/engine/scene"
)

const tol = 1e-5

func TestGroupByCullingModePartitionsSnapshot(t *testing.T) {
	tri1 := renderable.New(geometry.NewTriangle(1))
	tri2 := renderable.New(geometry.NewTriangle(2))
	quad := renderable.New(geometry.NewQuad(1, 1), renderable.WithCullingMode(common.CullingBackface))
	cube := renderable.New(geometry.NewCube(1))

	snapshot := scene.Renderables{
		Triangles: []renderable.Renderable{tri1, tri2},
		Quads:     []renderable.Renderable{quad},
		Cubes:     []renderable.Renderable{cube},
	}

	groups := groupByCullingMode(snapshot)

	assert.Len(t, groups, 2)
	assert.Equal(t, common.CullingNone, groups[0].mode)
	assert.Equal(t, []renderable.Renderable{tri1, tri2}, groups[0].objects)
	assert.Equal(t, common.CullingBackface, groups[1].mode)
	assert.Equal(t, []renderable.Renderable{quad, cube}, groups[1].objects)

	total := 0
	for _, g := range groups {
		total += len(g.objects)
	}
	assert.Equal(t, snapshot.Count(), total)
}

func TestGroupByCullingModeOrdersGroupsByFirstAppearance(t *testing.T) {
	// The triangle flattens first, so its overridden mode must lead even
	// though backface culling is rarer in a 2D-flavored snapshot.
	tri := renderable.New(geometry.NewTriangle(1), renderable.WithCullingMode(common.CullingBackface))
	quad := renderable.New(geometry.NewQuad(2, 2))
	sphere := renderable.New(geometry.NewSphere(1, 8, 8), renderable.WithCullingMode(common.CullingFrontface))

	snapshot := scene.Renderables{
		Triangles: []renderable.Renderable{tri},
		Quads:     []renderable.Renderable{quad},
		Spheres:   []renderable.Renderable{sphere},
	}

	groups := groupByCullingMode(snapshot)

	modes := make([]common.CullingMode, 0, len(groups))
	for _, g := range groups {
		modes = append(modes, g.mode)
	}
	assert.Equal(t, []common.CullingMode{common.CullingBackface, common.CullingNone, common.CullingFrontface}, modes)
}

func TestGroupByCullingModeEmptySnapshot(t *testing.T) {
	groups := groupByCullingMode(scene.Renderables{})
	assert.Empty(t, groups)
}

func TestCollectGroupMatricesComputesViewProjectionTimesModel(t *testing.T) {
	cam := camera.NewCamera(camera.WithAspect(1.5))
	vp := cam.ViewProjectionMatrix()

	tri := renderable.New(geometry.NewTriangle(1), renderable.WithPosition(math32.Vec3(1, 2, 3)))
	cube := renderable.New(geometry.NewCube(1),
		renderable.WithPosition(math32.Vec3(-2, 0, 1)),
		renderable.WithUniformScale(0.5),
	)

	snapshot := scene.Renderables{
		Triangles: []renderable.Renderable{tri},
		Cubes:     []renderable.Renderable{cube},
	}
	groups := groupByCullingMode(snapshot)

	objects, matrices := collectGroupMatrices(vp, groups)

	assert.Equal(t, []renderable.Renderable{tri, cube}, objects)
	assert.Len(t, matrices, 2)

	for i, obj := range objects {
		model := obj.CachedMatrix()
		var want math32.Matrix4
		want.MulMatrices(&vp, &model)
		for j := range want {
			assert.InDelta(t, want[j], matrices[i][j], tol, "object %d element %d", i, j)
		}
	}
}

func TestCollectGroupMatricesKeepsGroupFlattenOrder(t *testing.T) {
	objs := []renderable.Renderable{
		renderable.New(geometry.NewTriangle(1)),
		renderable.New(geometry.NewQuad(1, 1)),
		renderable.New(geometry.NewCube(1)),
		renderable.New(geometry.NewCone(1, 2, 8)),
	}

	snapshot := scene.Renderables{
		Triangles: objs[0:1],
		Quads:     objs[1:2],
		Cubes:     objs[2:3],
		Cones:     objs[3:4],
	}
	groups := groupByCullingMode(snapshot)

	// Two groups: None (triangle, quad) then Backface (cube, cone). The
	// flattened order must walk groups, not the snapshot.
	objects, matrices := collectGroupMatrices(math32.Matrix4{}, groups)
	assert.Equal(t, []renderable.Renderable{objs[0], objs[1], objs[2], objs[3]}, objects)
	assert.Len(t, matrices, 4)
}

func TestVertexProvidersAlignWithObjects(t *testing.T) {
	objects := []renderable.Renderable{
		renderable.New(geometry.NewTriangle(1)),
		renderable.New(geometry.NewCube(1)),
	}

	providers := vertexProviders(objects)

	assert.Len(t, providers, len(objects))
	for i := range objects {
		assert.Equal(t, objects[i].VertexCount(), providers[i].VertexCount())
		assert.Equal(t, objects[i].MeshHash(), providers[i].MeshHash())
	}
}

func TestTwoObjectFramePlan(t *testing.T) {
	s := scene.NewScene("frame plan")
	s.CreateTriangleAt(1, math32.Vec3(-0.5, 0, 0))
	s.CreateCube(0.75)

	snapshot := s.AllRenderables()
	assert.Equal(t, 2, snapshot.Count())

	groups := groupByCullingMode(snapshot)
	assert.Len(t, groups, 2)
	assert.Equal(t, common.CullingNone, groups[0].mode)
	assert.Equal(t, common.CullingBackface, groups[1].mode)
	assert.Len(t, groups[0].objects, 1)
	assert.Len(t, groups[1].objects, 1)

	cam := camera.NewCamera()
	objects, matrices := collectGroupMatrices(cam.ViewProjectionMatrix(), groups)
	assert.Len(t, objects, 2)
	assert.Len(t, matrices, 2)

	// Distinct geometry means distinct cache keys, so the plan requires two
	// separate vertex buffers.
	assert.NotEqual(t, objects[0].MeshHash(), objects[1].MeshHash())
}
