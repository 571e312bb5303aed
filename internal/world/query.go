package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial3d/internal/engine"
	"spatial3d/internal/physics"
)

// collisionMargin widens the traversal of FindCollisions past the sphere.
const collisionMargin = 0.1

// RayHit is the closest thing a ray hit. Exactly one of Face and Entity is
// set.
type RayHit struct {
	// Distance is in multiples of the ray direction.
	Distance float32
	Face     *physics.CollisionFace
	Entity   *engine.Entity
}

// RayCast finds the closest visible face or entity along origin + dir*t for
// 0 <= t < maxDist. Collision-only faces do not stop rays.
func (t *Tree) RayCast(origin, dir rl.Vector3, maxDist float32) (RayHit, bool) {
	hit := RayHit{Distance: maxDist}
	if rl.Vector3Length(dir) < 1e-6 {
		return hit, false
	}

	found := t.raycast(0, origin, dir, &hit)
	if found {
		raycasts.WithLabelValues("hit").Inc()
	} else {
		raycasts.WithLabelValues("miss").Inc()
	}
	return hit, found
}

func (t *Tree) raycast(n int32, origin, dir rl.Vector3, hit *RayHit) bool {
	nd := &t.nodes[n]
	if !physics.SegmentBounds(origin, dir, hit.Distance).Intersects(nd.box) {
		return false
	}

	if !nd.isLeaf() {
		// The half the ray starts in goes first so its hits prune the other.
		first := nd.plane.Side(origin)
		a := t.raycast(nd.children[first], origin, dir, hit)
		b := t.raycast(nd.children[1-first], origin, dir, hit)
		return a || b
	}

	found := false
	leaf := t.leaves[nd.leaf]
	if f := physics.RaycastFaces(leaf.model.Faces, origin, dir, &hit.Distance); f != nil {
		hit.Face = f
		hit.Entity = nil
		found = true
	}
	for _, e := range leaf.entities {
		if e.Raytrace(origin, dir, &hit.Distance) {
			hit.Face = nil
			hit.Entity = e
			found = true
		}
	}
	return found
}

// FindCollisions returns every static face, visible or collision-only, that
// touches the sphere and is not in ignore. Entities are not collided with.
func (t *Tree) FindCollisions(pos rl.Vector3, radius float32, ignore physics.FaceSet) []*physics.CollisionFace {
	if radius <= 0 {
		panic("world: finding collisions with a non-positive radius")
	}
	collisionQueries.Inc()

	var faces []*physics.CollisionFace
	collect := func(list []physics.CollisionFace) {
		for i := range list {
			f := &list[i]
			if ignore.Has(f) {
				continue
			}
			if _, ok := physics.HitTest(f, pos, radius); ok {
				faces = append(faces, f)
			}
		}
	}

	t.visitSphere(pos, radius+collisionMargin, func(l *Leaf) {
		collect(l.model.Faces)
		collect(l.model.CollisionFaces)
	})
	return faces
}
