package mesh

import (
	"errors"
	"fmt"
	"sort"
)

// Registry errors.
var (
	ErrDuplicateName = errors.New("mesh: name already registered")
	ErrReleasedMesh  = errors.New("mesh: mesh already released")
)

// Registry looks meshes up by name. It holds one reference to every mesh it
// contains until Close.
type Registry struct {
	meshes map[string]*Mesh
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{meshes: make(map[string]*Mesh)}
}

// Create builds a mesh and registers it. The registry owns the initial
// reference.
func (r *Registry) Create(dev Device, name string, vertices []Vertex, indices []uint32) (*Mesh, error) {
	if _, ok := r.meshes[name]; ok {
		return nil, fmt.Errorf("%q: %w", name, ErrDuplicateName)
	}
	m, err := New(dev, name, vertices, indices)
	if err != nil {
		return nil, err
	}
	r.meshes[name] = m
	return m, nil
}

// Add registers m under its name and retains it.
func (r *Registry) Add(m *Mesh) error {
	if m.RefCount() <= 0 {
		return fmt.Errorf("%q: %w", m.Name(), ErrReleasedMesh)
	}
	if _, ok := r.meshes[m.Name()]; ok {
		return fmt.Errorf("%q: %w", m.Name(), ErrDuplicateName)
	}
	r.meshes[m.Name()] = m.Retain()
	return nil
}

// Get returns the mesh registered under name. The caller must Retain it to
// keep it beyond the registry's lifetime.
func (r *Registry) Get(name string) (*Mesh, bool) {
	m, ok := r.meshes[name]
	return m, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.meshes))
	for name := range r.meshes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered meshes.
func (r *Registry) Len() int {
	return len(r.meshes)
}

// Close drops the registry's references. Meshes still retained elsewhere
// stay alive.
func (r *Registry) Close() {
	for name, m := range r.meshes {
		m.Release()
		delete(r.meshes, name)
	}
}
