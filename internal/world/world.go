package world

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial3d/internal/assets"
	"spatial3d/internal/engine"
)

// World ties a level tree to the scene of entities moving through it.
type World struct {
	Name    string
	Tree    *Tree
	Scene   *engine.Scene
	Library *assets.Library
	Gravity rl.Vector3
	Ambient rl.Color

	ticks uint64
}

func New(name string, lib *assets.Library, tree *Tree) *World {
	return &World{
		Name:    name,
		Tree:    tree,
		Scene:   engine.NewScene(name),
		Library: lib,
		Gravity: DefaultGravity,
		Ambient: rl.NewColor(26, 26, 26, 255),
	}
}

// NewFromLevel builds the tree of a level, registers its lights and spawns
// its entities.
func NewFromLevel(level *Level, cfg Config) (*World, error) {
	tree := Build(level.Library, level.Triangles, cfg)
	w := New(level.Name, level.Library, tree)
	w.Gravity = level.Gravity
	w.Ambient = level.Ambient

	lights := tree.RegisterLevelLights()

	for _, ed := range level.Entities {
		model := level.Library.Model(ed.Model)
		if model == nil {
			w.Unload()
			return nil, errors.New("entity uses an unknown model").
				WithType(ErrTypeLevelInvalid).
				WithTag("entity", ed.Name).
				WithTag("model", ed.Model)
		}

		e := engine.NewEntity(ed.Name)
		e.Dynamic = ed.Dynamic
		e.CollisionRadius = ed.Radius
		e.SetModel(model, vec3(ed.Offset))
		e.SetRotation(vec3(ed.Rotation))
		e.Move(vec3(ed.Position))
		e.SetVelocity(vec3(ed.Velocity))
		w.Spawn(e)
	}

	logs.WithTag("level", level.Name).
		WithTag("lights", lights).
		WithTag("entities", len(w.Scene.Entities)).
		Info("world loaded")
	return w, nil
}

// Spawn adds e to the scene and registers it in the tree.
func (w *World) Spawn(e *engine.Entity) {
	w.Scene.Add(e)
	e.SetWorld(w.Tree)
	logs.WithTag("world", w.Name).
		WithTag("entity_id", e.ID).
		WithTag("entity", e.Name).
		Debug("entity spawned")
}

// Destroy unregisters e and drops it from the scene.
func (w *World) Destroy(e *engine.Entity) {
	e.SetWorld(nil)
	w.Scene.Remove(e)
	logs.WithTag("world", w.Name).
		WithTag("entity_id", e.ID).
		Debug("entity destroyed")
}

// Update steps the scene by deltaTime. It returns the number of entities
// that moved.
func (w *World) Update(deltaTime float32) int {
	w.ticks++
	return w.Scene.Step(deltaTime, w.Gravity)
}

// Ticks is the number of Update calls so far.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// Unload takes every entity and light out of the tree.
func (w *World) Unload() {
	removed := w.Tree.RemoveAllEntities()
	w.Tree.RemoveLevelLights()
	logs.WithTag("world", w.Name).
		WithTag("entities", removed).
		Debug("world unloaded")
}
