package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OrbitCamera circles a point at a fixed distance and height, always
// looking at it.
type OrbitCamera struct {
	Center   rl.Vector3
	Distance float32
	Height   float32 // above Center
	Yaw      float32 // degrees
	Speed    float32 // degrees per second
	Fovy     float32
}

func New(center rl.Vector3, distance, height float32) *OrbitCamera {
	return &OrbitCamera{
		Center:   center,
		Distance: distance,
		Height:   height,
		Yaw:      -135.0,
		Speed:    10.0,
		Fovy:     45,
	}
}

// Update advances the orbit.
func (c *OrbitCamera) Update(deltaTime float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+c.Speed*deltaTime), 360))
	if c.Yaw < 0 {
		c.Yaw += 360
	}
}

func (c *OrbitCamera) Position() rl.Vector3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	return rl.Vector3{
		X: c.Center.X + c.Distance*float32(math.Cos(yawRad)),
		Y: c.Center.Y + c.Height,
		Z: c.Center.Z + c.Distance*float32(math.Sin(yawRad)),
	}
}

func (c *OrbitCamera) GetRaylibCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Center,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}
