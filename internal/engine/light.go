package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Light is a point light. While it has a world it is registered in every
// leaf within its reach, which grows with its brightness.
type Light struct {
	pos        rl.Vector3
	brightness float32
	color      rl.Color
	world      WorldAccess
}

func NewLight() *Light {
	return &Light{color: rl.White}
}

func (l *Light) Position() rl.Vector3 {
	return l.pos
}

func (l *Light) Brightness() float32 {
	return l.brightness
}

func (l *Light) Color() rl.Color {
	return l.color
}

func (l *Light) World() WorldAccess {
	return l.world
}

// Update runs mutate with the light taken out of its world and registers it
// again afterwards, even when mutate panics.
func (l *Light) Update(mutate func()) {
	if l.world != nil {
		l.world.UnregisterLight(l)
	}
	defer func() {
		if l.world != nil {
			l.world.RegisterLight(l)
		}
	}()
	mutate()
}

func (l *Light) Move(p rl.Vector3) {
	if p == l.pos {
		return
	}
	l.Update(func() { l.pos = p })
}

func (l *Light) SetBrightness(v float32) {
	if v == l.brightness {
		return
	}
	l.Update(func() { l.brightness = v })
}

// SetColor changes the color. Registration does not depend on it.
func (l *Light) SetColor(c rl.Color) {
	l.color = c
}

// SetWorld moves the light to another world. Setting it to nil unregisters
// the light, which must happen before it is dropped.
func (l *Light) SetWorld(w WorldAccess) {
	if w == l.world {
		return
	}
	l.Update(func() { l.world = w })
}
