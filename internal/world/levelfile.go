package world

import (
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/segmentio/encoding/json"

	"spatial3d/internal/assets"
)

const (
	// ErrTypeLevelInvalid is the error type of level files that decode
	// but describe impossible geometry.
	ErrTypeLevelInvalid = "level_invalid"

	// ErrTypeLevelDecode is the error type of level files that do not
	// decode.
	ErrTypeLevelDecode = "level_decode"

	// InvisibleWallMaterial names the material of blocking volumes. Faces
	// using it are always collision-only.
	InvisibleWallMaterial = "invisiblewall"
)

// --- JSON types ---

type LevelFile struct {
	Name      string            `json:"name"`
	Ambient   string            `json:"ambient,omitempty"`
	Gravity   *[3]float32       `json:"gravity,omitempty"`
	Materials []json.RawMessage `json:"materials"`
	Faces     []FaceDef         `json:"faces"`
	Models    []ModelDef        `json:"models,omitempty"`
	Entities  []EntityDef       `json:"entities,omitempty"`
}

// FaceDef is a convex polygon. It is fanned into triangles.
type FaceDef struct {
	Material string       `json:"material"`
	Verts    [][3]float32 `json:"verts"`
}

type ModelDef struct {
	Name  string    `json:"name"`
	Faces []FaceDef `json:"faces"`
}

type EntityDef struct {
	Name     string     `json:"name"`
	Model    string     `json:"model"`
	Position [3]float32 `json:"position"`
	Rotation [3]float32 `json:"rotation,omitempty"`
	Offset   [3]float32 `json:"offset,omitempty"`
	Velocity [3]float32 `json:"velocity,omitempty"`
	Dynamic  bool       `json:"dynamic,omitempty"`
	Radius   float32    `json:"radius,omitempty"`
}

// Level is a decoded level: triangles for the tree, with models and
// materials resolved through a library.
type Level struct {
	Name      string
	Triangles []assets.Triangle
	Entities  []EntityDef
	Gravity   rl.Vector3
	Ambient   rl.Color
	Library   *assets.Library
}

// DefaultGravity is the gravity of levels that do not set one.
var DefaultGravity = rl.Vector3{Y: -9.81}

// --- Loading ---

// LoadLevel reads and decodes a level file.
func LoadLevel(path string, lib *assets.Library) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading level failed").
			WithTag("path", path).
			Wrap(err)
	}

	level, err := ParseLevel(data, lib)
	if err != nil {
		return nil, errors.New("loading level failed").
			WithType(errors.Type(err)).
			WithTag("path", path).
			Wrap(err)
	}
	return level, nil
}

// ParseLevel decodes a level. Its materials and models are added to lib.
func ParseLevel(data []byte, lib *assets.Library) (*Level, error) {
	var lf LevelFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, errors.New("decoding level failed").
			WithType(ErrTypeLevelDecode).
			Wrap(err)
	}

	for i, raw := range lf.Materials {
		m, err := assets.ParseMaterial(raw)
		if err != nil {
			return nil, errors.New("invalid material").
				WithType(ErrTypeLevelInvalid).
				WithTag("index", i).
				Wrap(err)
		}
		if m.Name == InvisibleWallMaterial {
			m.Color.A = 0
		}
		lib.AddMaterial(m)
	}
	if !lib.HasMaterial(InvisibleWallMaterial) {
		lib.AddMaterial(&assets.Material{Name: InvisibleWallMaterial, Color: rl.Blank})
	}

	level := &Level{
		Name:     lf.Name,
		Entities: lf.Entities,
		Gravity:  DefaultGravity,
		Ambient:  rl.NewColor(26, 26, 26, 255),
		Library:  lib,
	}
	if lf.Gravity != nil {
		level.Gravity = vec3(*lf.Gravity)
	}
	if lf.Ambient != "" {
		level.Ambient = assets.LookupColor(lf.Ambient)
	}

	tris, err := triangulate(lf.Faces, lib)
	if err != nil {
		return nil, errors.New("invalid level geometry").
			WithType(ErrTypeLevelInvalid).
			WithTag("level", lf.Name).
			Wrap(err)
	}
	level.Triangles = tris

	for _, md := range lf.Models {
		tris, err := triangulate(md.Faces, lib)
		if err != nil {
			return nil, errors.New("invalid model geometry").
				WithType(ErrTypeLevelInvalid).
				WithTag("model", md.Name).
				Wrap(err)
		}
		lib.AddModel(md.Name, tris)
	}

	for _, ed := range lf.Entities {
		if lib.Model(ed.Model) == nil {
			return nil, errors.New("entity uses an unknown model").
				WithType(ErrTypeLevelInvalid).
				WithTag("entity", ed.Name).
				WithTag("model", ed.Model)
		}
	}
	return level, nil
}

func triangulate(faces []FaceDef, lib *assets.Library) ([]assets.Triangle, error) {
	var tris []assets.Triangle
	for i, fd := range faces {
		if len(fd.Verts) < 3 {
			return nil, errors.New("face has fewer than 3 vertices").
				WithTag("face", i).
				WithTag("vertices", len(fd.Verts))
		}
		if !lib.HasMaterial(fd.Material) {
			logs.WithTag("face", i).
				WithTag("material", fd.Material).
				Debug("unknown material, using default")
		}
		mat := lib.Material(fd.Material)

		for j := 2; j < len(fd.Verts); j++ {
			tris = append(tris, assets.Triangle{
				Verts: [3]assets.Vertex{
					{Pos: vec3(fd.Verts[0])},
					{Pos: vec3(fd.Verts[j-1])},
					{Pos: vec3(fd.Verts[j])},
				},
				Material: mat,
			})
		}
	}
	return tris, nil
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}
