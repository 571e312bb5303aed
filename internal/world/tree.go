package world

import (
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/logs"
	rl "github.com/gen2brain/raylib-go/raylib"

	"spatial3d/internal/assets"
	"spatial3d/internal/engine"
	"spatial3d/internal/physics"
)

// Config holds the tunables of a tree.
type Config struct {
	// MaxDepth is the depth of every leaf. A tree has 2^MaxDepth leaves.
	MaxDepth int

	// MaxLights is the number of lights selected for a visible leaf.
	MaxLights int

	// LowQualityLights caps MaxLights when culling in low quality.
	LowQualityLights int

	// LightMaxDist is the reach of a light of brightness 1.
	LightMaxDist float32
}

func DefaultConfig() Config {
	return Config{
		MaxDepth:         10,
		MaxLights:        20,
		LowQualityLights: 8,
		LightMaxDist:     250,
	}
}

// splitAxes is the cycle of splitting plane normals, indexed by depth.
var splitAxes = [...]rl.Vector3{
	{X: 1},
	{Z: 1},
	{Y: 1},
	{X: 1},
	{Z: 1},
}

const noChild = -1

// node is an entry of the tree arena. Internal nodes have two children and
// leaves have none.
type node struct {
	box      physics.AABB
	plane    physics.Plane
	children [2]int32
	leaf     int32
}

func (n *node) isLeaf() bool {
	return n.leaf != noChild
}

// Tree is an axis-aligned BSP over static level geometry. Its structure is
// fixed once built; only the entity and light membership of the leaves
// changes afterwards. Tree is not safe for concurrent use.
type Tree struct {
	cfg         Config
	nodes       []node
	leaves      []*Leaf
	levelLights []*engine.Light
}

type buildStep struct {
	node  int32
	tris  []assets.Triangle
	depth int
}

// Build partitions tris into a tree. Triangles without a material get the
// default material of lib.
func Build(lib *assets.Library, tris []assets.Triangle, cfg Config) *Tree {
	t := &Tree{cfg: cfg}

	box := physics.EmptyAABB()
	soup := make([]assets.Triangle, len(tris))
	for i, tri := range tris {
		if tri.Material == nil {
			tri.Material = lib.Default()
		}
		soup[i] = tri
		for _, v := range tri.Verts {
			box = box.Extend(v.Pos)
		}
	}

	maxDepth := cfg.MaxDepth
	if len(soup) == 0 {
		maxDepth = 0
	}

	t.nodes = append(t.nodes, node{box: box, leaf: noChild})
	queue := []buildStep{{node: 0, tris: soup}}
	for len(queue) > 0 {
		step := queue[0]
		queue = queue[1:]

		if step.depth >= maxDepth {
			t.makeLeaf(step.node, step.tris)
			continue
		}

		n := &t.nodes[step.node]
		axis := splitAxes[step.depth%len(splitAxes)]
		n.plane = physics.Plane{
			Normal: axis,
			Offset: rl.Vector3DotProduct(rl.Vector3Add(n.box.Min, n.box.Max), axis) * 0.5,
		}

		below, above := n.box.Split(n.plane)
		plane := n.plane
		for side, childBox := range [2]physics.AABB{below, above} {
			child := int32(len(t.nodes))
			t.nodes[step.node].children[side] = child
			t.nodes = append(t.nodes, node{box: childBox, leaf: noChild})
			queue = append(queue, buildStep{
				node:  child,
				tris:  splitTriangles(step.tris, plane, side),
				depth: step.depth + 1,
			})
		}
	}

	faces, blocking := 0, 0
	for _, l := range t.leaves {
		faces += len(l.model.Faces)
		blocking += len(l.model.CollisionFaces)
	}
	leafCount.Set(float64(len(t.leaves)))

	logs.WithTag("depth", maxDepth).
		WithTag("leaves", len(t.leaves)).
		WithTag("faces", faces).
		WithTag("collision_only_faces", blocking).
		Info("spatial tree built")
	return t
}

func (t *Tree) makeLeaf(n int32, tris []assets.Triangle) {
	index := len(t.leaves)
	t.nodes[n].leaf = int32(index)
	t.nodes[n].children = [2]int32{noChild, noChild}
	t.leaves = append(t.leaves, &Leaf{
		Index: index,
		Box:   t.nodes[n].box,
		model: assets.NewModel(fmt.Sprintf("leaf_%d", index), tris),
	})
}

func (t *Tree) Config() Config {
	return t.cfg
}

// Bounds is the box around all level geometry.
func (t *Tree) Bounds() physics.AABB {
	return t.nodes[0].box
}

func (t *Tree) Leaves() []*Leaf {
	return t.leaves
}

// PayloadKind tells the two kinds of baked leaf geometry apart.
type PayloadKind int

const (
	// PayloadRender faces are drawn, ray cast and collided with.
	PayloadRender PayloadKind = iota

	// PayloadCollisionOnly faces come from fully transparent materials.
	// They only block movement.
	PayloadCollisionOnly
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadRender:
		return "render"
	case PayloadCollisionOnly:
		return "collision_only"
	default:
		return fmt.Sprintf("payload(%d)", int(k))
	}
}

// Payload is one kind of baked static geometry of a leaf.
type Payload struct {
	Kind  PayloadKind
	Faces []physics.CollisionFace
}

// Leaf is a terminal cell of the tree. It owns the static geometry clipped
// to its box and lists the entities and lights that can reach it.
type Leaf struct {
	Index int
	Box   physics.AABB

	model    *assets.Model
	entities []*engine.Entity
	lights   []*engine.Light
	sorted   bool
}

// Payloads returns the non-empty baked geometry of the leaf.
func (l *Leaf) Payloads() []Payload {
	var payloads []Payload
	if len(l.model.Faces) > 0 {
		payloads = append(payloads, Payload{Kind: PayloadRender, Faces: l.model.Faces})
	}
	if len(l.model.CollisionFaces) > 0 {
		payloads = append(payloads, Payload{Kind: PayloadCollisionOnly, Faces: l.model.CollisionFaces})
	}
	return payloads
}

// Groups returns the visible geometry grouped by material.
func (l *Leaf) Groups() []assets.Group {
	return l.model.Groups
}

// Midpos is the middle of the visible geometry of the leaf, or the center
// of its box when it has nothing to draw.
func (l *Leaf) Midpos() rl.Vector3 {
	if !l.model.Loaded() {
		return l.Box.Center()
	}
	return l.model.Midpos()
}

func (l *Leaf) Radius() float32 {
	return l.model.Radius()
}

// Entities returns the entities registered in the leaf. The slice must not
// be modified.
func (l *Leaf) Entities() []*engine.Entity {
	return l.entities
}

// Lights returns the lights registered in the leaf. The slice must not be
// modified.
func (l *Leaf) Lights() []*engine.Light {
	return l.lights
}
