// Package engine implements the derivation core: given a registered type
// declaration, it synthesizes the structural map and traverse operations,
// their per-constructor unfolding equations, and the law obligations the
// pair must satisfy.
//
// A derivation request is a pure function of the declaration and the
// capability table: it performs no I/O, holds no mutable state beyond a
// request-scoped fresh-name generator, and either returns the two complete
// operations or fails as a whole.
package engine

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"martianoff/derive/deriveerr"
	"martianoff/derive/internal/decl"
	"martianoff/derive/internal/registry"
)

// SynthesizedOp is one generated operation together with the equations it
// satisfies. Exactly one of MapFn/TraverseFn is set, matching Kind.
type SynthesizedOp struct {
	Name       string
	Kind       registry.CapabilityKind
	Equations  []Equation
	MapFn      MapOp
	TraverseFn TraverseOp
}

// Derived is the result of one derivation request.
type Derived struct {
	Decl      decl.TypeDecl
	RequestID string
	Map       *SynthesizedOp
	Traverse  *SynthesizedOp
	Laws      []Obligation
}

// Engine derives structural operations against a registry. Engines are
// stateless between requests; concurrent derivations for different types
// are independent.
type Engine struct {
	reg *registry.Registry
	log *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New creates an Engine over the given registry.
func New(reg *registry.Registry, opts ...Option) *Engine {
	e := &Engine{reg: reg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Derive synthesizes map and traverse for the named declaration. Any
// classification, capability, or law-precondition failure aborts the whole
// request; the engine never returns a partial result.
func (e *Engine) Derive(typeName string) (*Derived, error) {
	requestID := uuid.NewString()
	log := e.log.With(zap.String("request_id", requestID), zap.String("type", typeName))

	d, ok := e.reg.LookupDecl(typeName)
	if !ok {
		return nil, deriveerr.NewDeclarationError(typeName, "declaration not registered")
	}
	log.Debug("derivation started", zap.Int("constructors", len(d.Ctors)))

	synths := make([]*ctorSynth, len(d.Ctors))
	for i, c := range d.Ctors {
		s, err := e.synthesizeCtor(d, c)
		if err != nil {
			log.Debug("derivation failed", zap.Error(err))
			return nil, err
		}
		synths[i] = s
	}

	names := newNameGen("a")
	mapOp := &SynthesizedOp{
		Name:  mapOpName(d.Name),
		Kind:  registry.KindMap,
		MapFn: makeMapOp(d, synths),
	}
	travOp := &SynthesizedOp{
		Name:       travOpName(d.Name),
		Kind:       registry.KindTraverse,
		TraverseFn: makeTraverseOp(d, synths),
	}
	for _, s := range synths {
		mapOp.Equations = append(mapOp.Equations, mapEquation(d, s, names))
	}
	for _, s := range synths {
		travOp.Equations = append(travOp.Equations, travEquation(d, s, names))
	}

	laws, err := e.lawObligations(d, synths)
	if err != nil {
		log.Debug("law derivation blocked", zap.Error(err))
		return nil, err
	}

	log.Debug("derivation finished",
		zap.Int("equations", len(mapOp.Equations)+len(travOp.Equations)),
		zap.Int("laws", len(laws)))
	return &Derived{
		Decl:      d,
		RequestID: requestID,
		Map:       mapOp,
		Traverse:  travOp,
		Laws:      laws,
	}, nil
}

// Install registers the derived operations with the instance registry and
// exposes the type as a capability for later derivations. The capability
// starts with unestablished laws; run the law checker and mark it to let
// law derivation of dependent types go through.
func (e *Engine) Install(d *Derived) {
	e.reg.RegisterInstance(d.Decl.Name, registry.KindMap, d.Map)
	e.reg.RegisterInstance(d.Decl.Name, registry.KindTraverse, d.Traverse)
	e.reg.RegisterCapability(registry.Capability{
		TypeName: d.Decl.Name,
		Map:      d.Map.MapFn,
		Traverse: d.Traverse.TraverseFn,
	})
}

// Bootstrap derives and installs the prelude container declarations so they
// are usable as outer types. Their capabilities are marked law-checked: the
// law checker's own tests pin the prelude laws.
func Bootstrap(reg *registry.Registry) error {
	e := New(reg)
	for _, d := range registry.PreludeDecls() {
		derived, err := e.Derive(d.Name)
		if err != nil {
			return err
		}
		e.Install(derived)
		reg.MarkLawsChecked(d.Name)
	}
	return nil
}
