package effect

// MaybeVal is a value inside the Maybe effect.
type MaybeVal struct {
	Val     any
	Defined bool
}

// Just wraps a present value.
func Just(v any) MaybeVal {
	return MaybeVal{Val: v, Defined: true}
}

// Nothing is the absent value.
func Nothing() MaybeVal {
	return MaybeVal{}
}

// Maybe is the option effect: sequencing short-circuits on absence.
type Maybe struct{}

func (Maybe) Name() string { return "Maybe" }

func (Maybe) Pure(x any) any { return Just(x) }

func (Maybe) Map(f func(any) any, fx any) any {
	m := fx.(MaybeVal)
	if !m.Defined {
		return Nothing()
	}
	return Just(f(m.Val))
}

func (Maybe) Ap(ff any, fx any) any {
	mf := ff.(MaybeVal)
	mx := fx.(MaybeVal)
	if !mf.Defined || !mx.Defined {
		return Nothing()
	}
	return Just(mf.Val.(func(any) any)(mx.Val))
}

var _ Applicative = Maybe{}
