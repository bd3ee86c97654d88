package effect

// Logged is a value inside the Trace effect: an ordered log of entries plus
// the carried value.
type Logged struct {
	Log []string
	Val any
}

// Trace is a writer effect with an ordered log. It is deliberately
// non-commutative, which makes the left-to-right field sequencing of a
// synthesized traverse observable in the log.
type Trace struct{}

func (Trace) Name() string { return "Trace" }

func (Trace) Pure(x any) any { return Logged{Val: x} }

func (Trace) Map(f func(any) any, fx any) any {
	l := fx.(Logged)
	return Logged{Log: l.Log, Val: f(l.Val)}
}

func (Trace) Ap(ff any, fx any) any {
	lf := ff.(Logged)
	lx := fx.(Logged)
	log := make([]string, 0, len(lf.Log)+len(lx.Log))
	log = append(log, lf.Log...)
	log = append(log, lx.Log...)
	return Logged{Log: log, Val: lf.Val.(func(any) any)(lx.Val)}
}

// Tell builds a Logged value carrying one log entry.
func Tell(entry string, v any) Logged {
	return Logged{Log: []string{entry}, Val: v}
}

var _ Applicative = Trace{}
