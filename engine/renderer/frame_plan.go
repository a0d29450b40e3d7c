package renderer

import (
	"cogentcore.org/core/math32"

	"github.com/Carmen-Shannon/mosaic-go/common"
	"github.com/Carmen-Shannon/mosaic-go/engine/renderable"
	"github.com/Carmen-Shannon/mosaic-go/engine/scene"
)

// cullingGroup is one batch of objects sharing a culling mode, drawn in a
// single render pass.
type cullingGroup struct {
	mode    common.CullingMode
	objects []renderable.Renderable
}

// groupByCullingMode partitions a snapshot into culling groups. Groups are
// ordered by first appearance in the flattened snapshot, and objects keep
// their snapshot order within each group, so a frame plan is deterministic
// for a given snapshot.
func groupByCullingMode(snapshot scene.Renderables) []cullingGroup {
	var groups []cullingGroup
	index := make(map[common.CullingMode]int)

	for _, obj := range snapshot.All() {
		mode := obj.CullingMode()
		i, ok := index[mode]
		if !ok {
			i = len(groups)
			index[mode] = i
			groups = append(groups, cullingGroup{mode: mode})
		}
		groups[i].objects = append(groups[i].objects, obj)
	}
	return groups
}

// collectGroupMatrices flattens the groups back into one object list and
// computes each object's final matrix (view-projection times model) in the
// same order, so index i addresses the same object in both slices.
func collectGroupMatrices(viewProjection math32.Matrix4, groups []cullingGroup) ([]renderable.Renderable, []math32.Matrix4) {
	total := 0
	for _, g := range groups {
		total += len(g.objects)
	}

	objects := make([]renderable.Renderable, 0, total)
	matrices := make([]math32.Matrix4, 0, total)
	for _, g := range groups {
		for _, obj := range g.objects {
			model := obj.CachedMatrix()
			var mvp math32.Matrix4
			mvp.MulMatrices(&viewProjection, &model)
			objects = append(objects, obj)
			matrices = append(matrices, mvp)
		}
	}
	return objects, matrices
}

// vertexProviders narrows a flattened object list to the capability the
// vertex buffer cache consumes.
func vertexProviders(objects []renderable.Renderable) []renderable.VertexProvider {
	providers := make([]renderable.VertexProvider, len(objects))
	for i, obj := range objects {
		providers[i] = obj
	}
	return providers
}
