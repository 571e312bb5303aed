package world

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial3d/internal/engine"
)

// visitSphere calls visit for every leaf a sphere can reach. A child is
// entered whenever the sphere reaches past the splitting plane into its
// half-space, so both children may be entered.
func (t *Tree) visitSphere(pos rl.Vector3, radius float32, visit func(*Leaf)) {
	stack := []int32{0}
	for len(stack) > 0 {
		n := &t.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if n.isLeaf() {
			visit(t.leaves[n.leaf])
			continue
		}

		d := rl.Vector3DotProduct(pos, n.plane.Normal)
		if d < n.plane.Offset+radius {
			stack = append(stack, n.children[0])
		}
		if d > n.plane.Offset-radius {
			stack = append(stack, n.children[1])
		}
	}
}

// RegisterEntity adds e to every leaf the sphere can reach. Registering an
// entity that is already there does not add it twice.
func (t *Tree) RegisterEntity(e *engine.Entity, pos rl.Vector3, radius float32) {
	if radius <= 0 {
		panic("world: registering an entity with a non-positive radius")
	}
	if e.Model() == nil {
		panic("world: registering an entity without a model")
	}

	t.visitSphere(pos, radius, func(l *Leaf) {
		if slices.Contains(l.entities, e) {
			return
		}
		l.entities = append(l.entities, e)
		memberships.WithLabelValues(entityKind).Inc()
	})
}

// UnregisterEntity removes e from every leaf the sphere can reach. The
// sphere must be the one e was registered with.
func (t *Tree) UnregisterEntity(e *engine.Entity, pos rl.Vector3, radius float32) {
	if radius <= 0 {
		panic("world: unregistering an entity with a non-positive radius")
	}

	t.visitSphere(pos, radius, func(l *Leaf) {
		i := slices.Index(l.entities, e)
		if i < 0 {
			panic("world: unregistering an entity that is not registered")
		}
		l.entities = slices.Delete(l.entities, i, i+1)
		memberships.WithLabelValues(entityKind).Dec()
	})
}

// lightRadius is the distance a light reaches.
func (t *Tree) lightRadius(l *engine.Light) float32 {
	return l.Brightness() * t.cfg.LightMaxDist
}

// RegisterLight adds l to every leaf within its reach.
func (t *Tree) RegisterLight(l *engine.Light) {
	radius := t.lightRadius(l)
	if radius <= 0 {
		panic("world: registering a light without brightness")
	}

	t.visitSphere(l.Position(), radius, func(leaf *Leaf) {
		if slices.Contains(leaf.lights, l) {
			return
		}
		leaf.lights = append(leaf.lights, l)
		leaf.sorted = false
		memberships.WithLabelValues(lightKind).Inc()
	})
}

// UnregisterLight removes l from every leaf within its reach.
func (t *Tree) UnregisterLight(l *engine.Light) {
	radius := t.lightRadius(l)
	if radius <= 0 {
		panic("world: unregistering a light without brightness")
	}

	t.visitSphere(l.Position(), radius, func(leaf *Leaf) {
		i := slices.Index(leaf.lights, l)
		if i < 0 {
			panic("world: unregistering a light that is not registered")
		}
		leaf.lights = slices.Delete(leaf.lights, i, i+1)
		memberships.WithLabelValues(lightKind).Dec()
	})
}

// RegisterLevelLights puts a light at every emissive material group of the
// level geometry. It returns the number of lights added.
func (t *Tree) RegisterLevelLights() int {
	added := 0
	for _, leaf := range t.leaves {
		for _, anchor := range leaf.model.Lights() {
			l := engine.NewLight()
			l.SetColor(anchor.Material.LightColor)
			l.SetBrightness(anchor.Material.Brightness)
			l.Move(anchor.Pos)
			l.SetWorld(t)
			t.levelLights = append(t.levelLights, l)
			added++
		}
	}
	return added
}

// LevelLights returns the lights added by RegisterLevelLights.
func (t *Tree) LevelLights() []*engine.Light {
	return t.levelLights
}

// RemoveLevelLights unregisters the lights added by RegisterLevelLights.
func (t *Tree) RemoveLevelLights() {
	for _, l := range t.levelLights {
		l.SetWorld(nil)
	}
	t.levelLights = nil
}

// RemoveAllEntities takes every registered entity out of the tree by
// setting its world to nil. It returns the number of entities removed.
func (t *Tree) RemoveAllEntities() int {
	removed := 0
	for _, leaf := range t.leaves {
		for len(leaf.entities) > 0 {
			e := leaf.entities[0]
			if e.World() != engine.WorldAccess(t) {
				panic("world: entity registered in a tree it does not belong to")
			}
			e.SetWorld(nil)
			removed++
		}
	}
	return removed
}
