package world

import (
	"sort"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial3d/internal/engine"
)

// visitStamp numbers traversals so entities in several leaves are reported
// once per traversal.
var visitStamp atomic.Uint64

// Options tunes Cull.
type Options struct {
	// BackToFront visits the far side of every split first, for drawing
	// transparent geometry.
	BackToFront bool

	// LowQuality selects fewer lights per leaf.
	LowQuality bool
}

// VisibleLeaf is a leaf that passed culling, with the lights to shade it
// with and the entities first seen in it.
type VisibleLeaf struct {
	Leaf     *Leaf
	Lights   []*engine.Light
	Entities []*engine.Entity
}

// CullResult lists visible leaves in drawing order.
type CullResult struct {
	Leaves []VisibleLeaf
}

// Entities returns every visible entity in drawing order.
func (r CullResult) Entities() []*engine.Entity {
	var entities []*engine.Entity
	for _, l := range r.Leaves {
		entities = append(entities, l.Entities...)
	}
	return entities
}

// Cull returns the leaves and entities inside the frustum. Leaves come front
// to back from the frustum position unless opts.BackToFront is set.
func (t *Tree) Cull(f Frustum, opts Options) CullResult {
	var res CullResult
	t.cull(0, &f, opts, visitStamp.Add(1), &res)
	culledLeaves.Observe(float64(len(res.Leaves)))
	return res
}

func (t *Tree) cull(n int32, f *Frustum, opts Options, stamp uint64, res *CullResult) {
	nd := &t.nodes[n]
	if !f.ContainsBox(nd.box) {
		return
	}

	if !nd.isLeaf() {
		near := nd.plane.Side(f.Position)
		first, second := near, 1-near
		if opts.BackToFront {
			first, second = second, first
		}
		t.cull(nd.children[first], f, opts, stamp, res)
		t.cull(nd.children[second], f, opts, stamp, res)
		return
	}

	leaf := t.leaves[nd.leaf]
	visible := VisibleLeaf{
		Leaf:   leaf,
		Lights: t.selectLights(leaf, opts.LowQuality),
	}
	for _, e := range leaf.entities {
		if e.Visit(stamp) && f.ContainsSphere(e.Pivot(), e.Radius()) {
			visible.Entities = append(visible.Entities, e)
		}
	}
	res.Leaves = append(res.Leaves, visible)
}

// Sweep returns the entities inside the frustum that are not hidden behind
// level geometry or other entities, seen from the frustum position.
func (t *Tree) Sweep(f Frustum) []*engine.Entity {
	stamp := visitStamp.Add(1)

	var visible []*engine.Entity
	queue := []int32{0}
	for len(queue) > 0 {
		nd := &t.nodes[queue[0]]
		queue = queue[1:]

		if !f.ContainsBox(nd.box) {
			continue
		}
		if !nd.isLeaf() {
			queue = append(queue, nd.children[0], nd.children[1])
			continue
		}

		for _, e := range t.leaves[nd.leaf].entities {
			if !e.Visit(stamp) || !f.ContainsSphere(e.Pivot(), e.Radius()) {
				continue
			}
			d := rl.Vector3Subtract(e.Pivot(), f.Position)
			hit, ok := t.RayCast(f.Position, d, 1)
			if !ok || hit.Entity == e {
				visible = append(visible, e)
			}
		}
	}
	return visible
}

// selectLights returns the best lights for a leaf: the ones whose reach
// extends furthest past the leaf center. The order is cached until the
// light membership of the leaf changes.
func (t *Tree) selectLights(leaf *Leaf, lowQuality bool) []*engine.Light {
	if !leaf.sorted {
		mid := leaf.Midpos()
		score := func(l *engine.Light) float32 {
			dist := rl.Vector3Distance(l.Position(), mid)
			return 1 - dist/(t.cfg.LightMaxDist*l.Brightness())
		}
		sort.SliceStable(leaf.lights, func(i, j int) bool {
			return score(leaf.lights[i]) > score(leaf.lights[j])
		})
		leaf.sorted = true
	}

	n := min(len(leaf.lights), t.cfg.MaxLights)
	if lowQuality {
		n = min(n, t.cfg.LowQualityLights)
	}
	if n == 0 {
		return nil
	}
	return append([]*engine.Light(nil), leaf.lights[:n]...)
}
