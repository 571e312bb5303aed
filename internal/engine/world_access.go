package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial3d/internal/physics"
)

// WorldAccess is the part of the spatial index entities and lights talk to.
// Defined here to avoid circular imports with the world package.
type WorldAccess interface {
	// RegisterEntity adds e to every leaf its sphere can reach.
	RegisterEntity(e *Entity, pos rl.Vector3, radius float32)

	// UnregisterEntity undoes RegisterEntity. pos and radius must be the
	// values the entity was registered with.
	UnregisterEntity(e *Entity, pos rl.Vector3, radius float32)

	RegisterLight(l *Light)
	UnregisterLight(l *Light)

	// FindCollisions returns the static faces touching the sphere, except
	// the ones in ignore.
	FindCollisions(pos rl.Vector3, radius float32, ignore physics.FaceSet) []*physics.CollisionFace
}
