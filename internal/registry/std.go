package registry

import (
	"fmt"

	"martianoff/derive/adt"
	"martianoff/derive/effect"
	"martianoff/derive/internal/decl"
)

// valueShapeError reports a capability applied to a value of the wrong
// runtime shape; an internal invariant violation, never a user error.
func valueShapeError(capName string, v adt.Value) error {
	return fmt.Errorf("internal: %q capability applied to %T value", capName, v)
}

// SliceTypeName is the capability key for builtin []T fields.
const SliceTypeName = "[]"

// SliceCapability returns the builtin capability for slice containers.
// It is the one capability that cannot be derived from a declaration.
func SliceCapability() Capability {
	return Capability{
		TypeName: SliceTypeName,
		Map: func(t MapFunc, v adt.Value) (adt.Value, error) {
			l, ok := v.(adt.List)
			if !ok {
				return nil, valueShapeError(SliceTypeName, v)
			}
			items := make([]adt.Value, len(l.Items))
			for i, it := range l.Items {
				mapped, err := t(it)
				if err != nil {
					return nil, err
				}
				items[i] = mapped
			}
			return adt.List{Items: items}, nil
		},
		Traverse: func(ap effect.Applicative, t TravFunc, v adt.Value) (any, error) {
			l, ok := v.(adt.List)
			if !ok {
				return nil, valueShapeError(SliceTypeName, v)
			}
			// Left-to-right: each element's effect is sequenced after the
			// accumulated ones.
			acc := ap.Pure(adt.List{})
			for _, it := range l.Items {
				eff, err := t(it)
				if err != nil {
					return nil, err
				}
				appender := ap.Map(func(sofar any) any {
					xs := sofar.(adt.List)
					return func(x any) any {
						items := make([]adt.Value, 0, len(xs.Items)+1)
						items = append(items, xs.Items...)
						items = append(items, x.(adt.Value))
						return adt.List{Items: items}
					}
				}, acc)
				acc = ap.Ap(appender, eff)
			}
			return acc, nil
		},
		LawsChecked: true,
	}
}

// PreludeDecls returns the container declarations every registry starts
// with. Both are ordinary single-variable declarations, so their
// capabilities are produced by the engine itself at bootstrap.
func PreludeDecls() []decl.TypeDecl {
	return []decl.TypeDecl{
		decl.New("Option", "a",
			decl.CtorSpec{Name: "none"},
			decl.CtorSpec{Name: "some", Fields: []string{"a"}},
		),
		decl.New("Either", "a",
			decl.CtorSpec{Name: "left", Fields: []string{"E"}},
			decl.CtorSpec{Name: "right", Fields: []string{"a"}},
		),
	}
}

// Default returns a registry pre-configured with the builtin slice
// capability and the prelude declarations. Capabilities for the prelude
// containers are installed by engine bootstrap, which derives them.
func Default() *Registry {
	r := NewRegistry()
	r.RegisterCapability(SliceCapability())
	for _, d := range PreludeDecls() {
		// Prelude decls are statically well-formed.
		_ = r.RegisterDecl(d)
	}
	return r
}
