package assets

import (
	"os"

	"github.com/aukilabs/go-tooling/pkg/errors"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/segmentio/encoding/json"
)

// Material defines the surface properties the world needs from a mesh
// material. Color.A is the opacity; a fully transparent material marks
// geometry that only blocks movement.
type Material struct {
	Name       string
	Color      rl.Color
	Brightness float32
	LightColor rl.Color
}

// Invisible reports whether faces using the material are collision-only.
func (m *Material) Invisible() bool {
	return m.Color.A == 0
}

// Emissive reports whether the material casts light.
func (m *Material) Emissive() bool {
	return m.Brightness > 0
}

// materialDef is the JSON format for material files
type materialDef struct {
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Opacity    *uint8  `json:"opacity,omitempty"`
	Brightness float32 `json:"brightness"`
	LightColor string  `json:"lightColor"`
}

// Color name mapping for materials
var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Gold":      rl.Gold,
	"White":     rl.White,
	"Gray":      rl.Gray,
	"LightGray": rl.LightGray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Pink":      rl.Pink,
	"Maroon":    rl.Maroon,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"SkyBlue":   rl.SkyBlue,
	"DarkBlue":  rl.DarkBlue,
	"Lime":      rl.Lime,
	"DarkGreen": rl.DarkGreen,
	"Blank":     rl.Blank,
}

// LookupColor returns a raylib color from a name string
func LookupColor(name string) rl.Color {
	if c, ok := colorByName[name]; ok {
		return c
	}
	return rl.White
}

// ParseMaterial decodes a material definition. The light color defaults to
// the surface color.
func ParseMaterial(data []byte) (*Material, error) {
	var def materialDef
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, errors.New("decoding material failed").Wrap(err)
	}
	if def.Name == "" {
		return nil, errors.New("material has no name")
	}
	return def.material(), nil
}

func (def materialDef) material() *Material {
	m := &Material{
		Name:       def.Name,
		Color:      LookupColor(def.Color),
		Brightness: def.Brightness,
	}
	if def.Opacity != nil {
		m.Color.A = *def.Opacity
	}
	m.LightColor = m.Color
	if def.LightColor != "" {
		m.LightColor = LookupColor(def.LightColor)
	}
	return m
}

// LoadMaterial reads a material definition file.
func LoadMaterial(path string) (*Material, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("reading material failed").
			WithTag("path", path).
			Wrap(err)
	}
	m, err := ParseMaterial(data)
	if err != nil {
		return nil, errors.New("loading material failed").
			WithTag("path", path).
			Wrap(err)
	}
	return m, nil
}
