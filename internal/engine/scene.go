package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// Scene is the ordered set of entities a world steps every tick.
type Scene struct {
	Name     string
	Entities []*Entity
	byID     map[uuid.UUID]*Entity
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:     name,
		Entities: make([]*Entity, 0),
		byID:     make(map[uuid.UUID]*Entity),
	}
}

func (s *Scene) Add(e *Entity) {
	if _, exists := s.byID[e.ID]; exists {
		return
	}
	s.Entities = append(s.Entities, e)
	s.byID[e.ID] = e
}

// Remove drops e from the scene. It does not take e out of its world.
func (s *Scene) Remove(e *Entity) {
	for i, obj := range s.Entities {
		if obj == e {
			s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
			delete(s.byID, e.ID)
			return
		}
	}
}

func (s *Scene) FindByID(id uuid.UUID) *Entity {
	return s.byID[id]
}

func (s *Scene) FindByName(name string) *Entity {
	for _, e := range s.Entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Step accelerates every dynamic entity by gravity and advances the ones
// that are in a world. It returns the number of entities advanced.
func (s *Scene) Step(dt float32, gravity rl.Vector3) int {
	advanced := 0
	for _, e := range s.Entities {
		if !e.Dynamic || e.World() == nil {
			continue
		}

		radius := e.CollisionRadius
		if radius <= 0 {
			radius = e.Radius()
		}
		if radius <= 0 {
			continue
		}

		e.Thrust(rl.Vector3Scale(gravity, dt))
		e.Advance(dt, radius)
		advanced++
	}
	return advanced
}
