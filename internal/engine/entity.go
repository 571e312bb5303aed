package engine

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"spatial3d/internal/assets"
)

// Entity is a model placed in a world. While it has both a world and a
// model it is registered in every leaf its bounding sphere can reach.
type Entity struct {
	ID   uuid.UUID
	Name string

	// Dynamic entities fall and collide when their scene is stepped.
	Dynamic bool

	// CollisionRadius is the sphere used for collisions. Zero means the
	// model radius.
	CollisionRadius float32

	// Landed fires when Advance makes the entity grounded.
	Landed Event[*Entity]

	position rl.Vector3
	velocity rl.Vector3
	rotation rl.Vector3 // Euler angles in degrees
	offset   rl.Vector3
	model    *assets.Model
	world    WorldAccess
	grounded bool
	visited  uint64
	pivot    rl.Vector3
	lights   []*Light
	lightsOn bool
}

func NewEntity(name string) *Entity {
	return &Entity{
		ID:       uuid.New(),
		Name:     name,
		lightsOn: true,
	}
}

func (e *Entity) Position() rl.Vector3 {
	return e.position
}

func (e *Entity) Velocity() rl.Vector3 {
	return e.velocity
}

func (e *Entity) Rotation() rl.Vector3 {
	return e.rotation
}

func (e *Entity) Offset() rl.Vector3 {
	return e.offset
}

func (e *Entity) Model() *assets.Model {
	return e.model
}

func (e *Entity) World() WorldAccess {
	return e.world
}

// Grounded reports whether the last Advance ended standing on something.
func (e *Entity) Grounded() bool {
	return e.grounded
}

// Pivot is the world position of the model's mid point. It is the center of
// the sphere the entity is registered with.
func (e *Entity) Pivot() rl.Vector3 {
	return e.pivot
}

// Radius is the radius of the registered sphere.
func (e *Entity) Radius() float32 {
	if e.model == nil {
		return 0
	}
	return e.model.Radius()
}

// Lights returns the lights cast by the emissive parts of the model.
func (e *Entity) Lights() []*Light {
	return e.lights
}

// Update runs mutate with the entity taken out of its world and registers
// it again afterwards, even when mutate panics. Every change to the state
// registration depends on goes through here.
func (e *Entity) Update(mutate func()) {
	e.detach()
	defer e.attach()
	mutate()
}

func (e *Entity) attached() bool {
	return e.world != nil && e.model != nil
}

func (e *Entity) detach() {
	if e.attached() {
		e.world.UnregisterEntity(e, e.pivot, e.model.Radius())
	}
}

func (e *Entity) attach() {
	if e.attached() {
		e.pivot = e.transform(e.model.Midpos())
		e.world.RegisterEntity(e, e.pivot, e.model.Radius())
	}
	e.updateLights()
}

// SetWorld moves the entity to another world. Setting it to nil unregisters
// the entity and its lights, which must happen before it is dropped.
func (e *Entity) SetWorld(w WorldAccess) {
	if w == e.world {
		return
	}
	e.Update(func() { e.world = w })
}

// SetModel replaces the model. offset is added to the position when placing
// the model.
func (e *Entity) SetModel(m *assets.Model, offset rl.Vector3) {
	e.Update(func() {
		e.model = m
		e.offset = offset
	})
}

// Move teleports the entity and stops it.
func (e *Entity) Move(p rl.Vector3) {
	e.velocity = rl.Vector3{}
	if p == e.position {
		return
	}
	e.Update(func() { e.position = p })
}

// SetRotation sets the Euler angles, in degrees.
func (e *Entity) SetRotation(r rl.Vector3) {
	if r == e.rotation {
		return
	}
	e.Update(func() { e.rotation = r })
}

// Thrust adds to the velocity.
func (e *Entity) Thrust(accel rl.Vector3) {
	e.velocity = rl.Vector3Add(e.velocity, accel)
}

// SetVelocity replaces the velocity without moving the entity.
func (e *Entity) SetVelocity(v rl.Vector3) {
	e.velocity = v
}

// SetLightsOn switches the lights of the model.
func (e *Entity) SetLightsOn(on bool) {
	e.lightsOn = on
	if e.world != nil {
		e.updateLights()
	}
}

// Visit marks the entity as seen by the traversal with the given stamp. It
// returns false when the entity was already seen.
func (e *Entity) Visit(stamp uint64) bool {
	if e.visited == stamp {
		return false
	}
	e.visited = stamp
	return true
}

// Raytrace tests the ray origin + dir*t against the model and shrinks *dist
// on a closer hit.
func (e *Entity) Raytrace(origin, dir rl.Vector3, dist *float32) bool {
	if e.model == nil {
		return false
	}

	// Quick check against the bounding sphere.
	t := rl.Vector3DotProduct(rl.Vector3Subtract(e.pivot, origin), dir) / rl.Vector3DotProduct(dir, dir)
	if t > *dist {
		t = *dist
	}
	closest := rl.Vector3Add(origin, rl.Vector3Scale(dir, t))
	if t < 0 || rl.Vector3Distance(e.pivot, closest) > e.model.Radius() {
		return false
	}

	inverse := rl.MatrixTranspose(e.rotationMatrix())
	local := rl.Vector3Subtract(origin, rl.Vector3Add(e.position, e.offset))
	return e.model.Raytrace(
		rl.Vector3Transform(local, inverse),
		rl.Vector3Transform(dir, inverse),
		dist,
	)
}

// rotationMatrix applies X then Y then Z rotations.
func (e *Entity) rotationMatrix() rl.Matrix {
	rx := float64(e.rotation.X) * math.Pi / 180
	ry := float64(e.rotation.Y) * math.Pi / 180
	rz := float64(e.rotation.Z) * math.Pi / 180
	rotX := rl.MatrixRotateX(float32(rx))
	rotY := rl.MatrixRotateY(float32(ry))
	rotZ := rl.MatrixRotateZ(float32(rz))
	return rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
}

// transform maps a point of the model to world space.
func (e *Entity) transform(p rl.Vector3) rl.Vector3 {
	rotated := rl.Vector3Transform(p, e.rotationMatrix())
	return rl.Vector3Add(rl.Vector3Add(e.position, e.offset), rotated)
}

func (e *Entity) updateLights() {
	var anchors []assets.LightAnchor
	if e.attached() && e.lightsOn {
		anchors = e.model.Lights()
	}

	for i, a := range anchors {
		if i == len(e.lights) {
			e.lights = append(e.lights, NewLight())
		}
		l := e.lights[i]
		l.SetColor(a.Material.LightColor)
		l.Move(e.transform(a.Pos))
		l.SetBrightness(a.Material.Brightness)
		l.SetWorld(e.world)
	}

	for _, l := range e.lights[len(anchors):] {
		l.SetWorld(nil)
	}
	e.lights = e.lights[:len(anchors)]
}
