// Package registry provides the collaborators at the engine's boundary: the
// declaration registry (lookupDecl), the capability registry
// (lookupCapability) and the instance registry that receives synthesized
// operations.
//
// All registries are read-mostly lookup tables; registration happens at
// process setup or right after a derivation request completes.
//
// Thread-safe: all methods can be called concurrently.
package registry

import (
	"sync"

	"martianoff/derive/adt"
	"martianoff/derive/effect"
	"martianoff/derive/internal/decl"
)

// MapFunc is a pure leaf-to-leaf transform over runtime values.
type MapFunc func(adt.Value) (adt.Value, error)

// TravFunc is an effectful leaf transform; the returned value lives inside
// the applicative the traversal runs under.
type TravFunc func(adt.Value) (any, error)

// Capability is the {map, traverse} pair a type must expose to participate
// as an outer type in a nested classification.
type Capability struct {
	TypeName string
	Map      func(t MapFunc, v adt.Value) (adt.Value, error)
	Traverse func(ap effect.Applicative, t TravFunc, v adt.Value) (any, error)

	// LawsChecked records that the capability's own laws were established
	// (builtins ship with it set; derived capabilities earn it from the law
	// checker). Law derivation for a type using this capability as an outer
	// requires it.
	LawsChecked bool
}

// CapabilityKind names one of the two synthesized operations in the
// instance registry.
type CapabilityKind string

const (
	KindMap      CapabilityKind = "map"
	KindTraverse CapabilityKind = "traverse"
)

// Registry bundles the three lookup tables a derivation request consults.
type Registry struct {
	mu sync.RWMutex

	decls     map[string]decl.TypeDecl
	declOrder []string
	caps      map[string]*Capability
	instances map[string]map[CapabilityKind]any
}

// NewRegistry creates an empty registry. Use Default for one preloaded with
// the builtin container capabilities and prelude declarations.
func NewRegistry() *Registry {
	return &Registry{
		decls:     make(map[string]decl.TypeDecl),
		caps:      make(map[string]*Capability),
		instances: make(map[string]map[CapabilityKind]any),
	}
}

// RegisterDecl validates and stores a declaration. Re-registering a name
// replaces the previous declaration.
func (r *Registry) RegisterDecl(d decl.TypeDecl) error {
	if err := d.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.decls[d.Name]; !ok {
		r.declOrder = append(r.declOrder, d.Name)
	}
	r.decls[d.Name] = d
	return nil
}

// LookupDecl returns the declaration registered under name.
func (r *Registry) LookupDecl(name string) (decl.TypeDecl, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decls[name]
	return d, ok
}

// DeclNames returns registered declaration names in registration order.
func (r *Registry) DeclNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.declOrder))
	copy(out, r.declOrder)
	return out
}

// RegisterCapability stores a capability under its type name.
func (r *Registry) RegisterCapability(c Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cc := c // store a copy
	r.caps[c.TypeName] = &cc
}

// LookupCapability returns the capability registered for a type name.
// Absence is terminal for the requesting derivation.
func (r *Registry) LookupCapability(name string) (*Capability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.caps[name]
	return c, ok
}

// MarkLawsChecked flags a capability as law-checked. Returns false when no
// such capability is registered.
func (r *Registry) MarkLawsChecked(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.caps[name]
	if !ok {
		return false
	}
	c.LawsChecked = true
	return true
}

// RegisterInstance installs a synthesized operation for a type.
func (r *Registry) RegisterInstance(typeName string, kind CapabilityKind, impl any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.instances[typeName] == nil {
		r.instances[typeName] = make(map[CapabilityKind]any)
	}
	r.instances[typeName][kind] = impl
}

// LookupInstance returns a previously installed operation.
func (r *Registry) LookupInstance(typeName string, kind CapabilityKind) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	impl, ok := r.instances[typeName][kind]
	return impl, ok
}
