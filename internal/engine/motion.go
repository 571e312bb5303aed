package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial3d/internal/physics"
)

const (
	// maxAdvanceSteps bounds the resolution loop of one Advance. Whatever
	// penetration is left after it is accepted.
	maxAdvanceSteps = 50

	minMove        = 1e-6
	frictionRate   = 5
	bounceFactor   = 1.1
	pushStiffness  = 100
	groundNormalY  = 0.2
	restingEpsilon = 1e-4
)

// Advance moves the entity by velocity*dt as a sphere of the given radius,
// sliding along the static geometry it hits. Contacts damp and bounce the
// velocity and set the grounded flag.
func (e *Entity) Advance(dt, radius float32) {
	if e.world == nil {
		panic("engine: advancing an entity without a world")
	}
	if radius <= 0 {
		panic("engine: advancing an entity with a non-positive radius")
	}

	wasGrounded := e.grounded
	var steps int
	e.Update(func() {
		steps = e.resolve(dt, radius)
	})
	advanceSteps.Observe(float64(steps))

	if e.grounded && !wasGrounded {
		landings.Inc()
		e.Landed.Invoke(e)
	}
}

func (e *Entity) resolve(dt, radius float32) int {
	collided := physics.FaceSet{}
	move := rl.Vector3Scale(e.velocity, dt)
	e.grounded = false

	friction := false
	steps := 0
	for rl.Vector3Length(move) > minMove && steps < maxAdvanceSteps {
		// Never step further than one unit at a time.
		left := float32(0)
		right := 1 / rl.Vector3Length(move)
		if right > 1 {
			right = 1
		}

		pos := rl.Vector3Add(e.position, rl.Vector3Scale(move, right))
		if faces := e.world.FindCollisions(pos, radius, collided); len(faces) > 0 {
			// Bisect for the time of contact. right always collides.
			res := right * 0.001
			for right-left > res {
				t := (left + right) * 0.5
				pos = rl.Vector3Add(e.position, rl.Vector3Scale(move, t))
				if collidesAny(faces, pos, radius) {
					right = t
				} else {
					left = t
				}
			}
		}
		e.position = rl.Vector3Add(e.position, rl.Vector3Scale(move, right))
		move = rl.Vector3Subtract(move, rl.Vector3Scale(move, right))

		for _, f := range e.world.FindCollisions(e.position, radius, collided) {
			contact, ok := physics.HitTest(f, e.position, radius)
			if !ok {
				panic("engine: collision face lost its contact")
			}
			collided.Add(f)

			l := rl.Vector3Length(contact)
			n := f.Normal
			if l > minMove {
				n = rl.Vector3Scale(contact, 1/l)
			}

			// Slide along the surface.
			if d := rl.Vector3DotProduct(move, n); d < 0 {
				move = rl.Vector3Subtract(move, rl.Vector3Scale(n, d))
			}
			if rl.Vector3DotProduct(e.velocity, n) < restingEpsilon {
				if !friction {
					e.velocity = rl.Vector3Subtract(e.velocity, rl.Vector3Scale(e.velocity, dt*frictionRate))
				}
				friction = true
			}
			if d := rl.Vector3DotProduct(e.velocity, n); d < 0 {
				e.velocity = rl.Vector3Subtract(e.velocity, rl.Vector3Scale(n, d*bounceFactor))
			}
			e.velocity = rl.Vector3Add(e.velocity, rl.Vector3Scale(n, (radius-l)*pushStiffness*dt))
			if n.Y > groundNormalY {
				e.grounded = true
			}
		}
		steps++
	}
	return steps
}

func collidesAny(faces []*physics.CollisionFace, pos rl.Vector3, radius float32) bool {
	for _, f := range faces {
		if _, ok := physics.HitTest(f, pos, radius); ok {
			return true
		}
	}
	return false
}
