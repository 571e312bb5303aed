package assets

import (
	"path/filepath"
	"sort"
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultMaterialName is the material given to faces whose material is
// unknown.
const DefaultMaterialName = "default"

// Library caches materials and models by name. It is passed explicitly to
// whatever needs to resolve assets.
type Library struct {
	mutex     sync.RWMutex
	materials map[string]*Material
	models    map[string]*Model
}

func NewLibrary() *Library {
	return &Library{
		materials: map[string]*Material{
			DefaultMaterialName: {Name: DefaultMaterialName, Color: rl.White},
		},
		models: make(map[string]*Model),
	}
}

// AddMaterial stores m under its name, replacing any previous entry.
func (l *Library) AddMaterial(m *Material) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.materials[m.Name] = m
}

// Material returns the named material, or the default material when the name
// is unknown.
func (l *Library) Material(name string) *Material {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	if m, ok := l.materials[name]; ok {
		return m
	}
	return l.materials[DefaultMaterialName]
}

// HasMaterial reports whether a material with that name was added.
func (l *Library) HasMaterial(name string) bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	_, ok := l.materials[name]
	return ok
}

func (l *Library) Default() *Material {
	return l.Material(DefaultMaterialName)
}

// MaterialNames returns the names of every stored material, sorted.
func (l *Library) MaterialNames() []string {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	names := make([]string, 0, len(l.materials))
	for name := range l.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadMaterials adds every *.json material file in dir.
func (l *Library) LoadMaterials(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return errors.New("listing materials failed").
			WithTag("dir", dir).
			Wrap(err)
	}
	for _, path := range paths {
		m, err := LoadMaterial(path)
		if err != nil {
			return err
		}
		l.AddMaterial(m)
	}
	return nil
}

// AddModel bakes tris into a model and stores it under name.
func (l *Library) AddModel(name string, tris []Triangle) *Model {
	m := NewModel(name, tris)

	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.models[name] = m
	return m
}

// Model returns the named model, or nil.
func (l *Library) Model(name string) *Model {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.models[name]
}
