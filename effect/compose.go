package effect

// Compose is the composition of two applicatives: an effectful value of
// Compose{F, G} is an F-value containing a G-value. It backs the naturality
// property relating a traverse under composed effects to two traversals.
type Compose struct {
	Outer Applicative
	Inner Applicative
}

func (c Compose) Name() string {
	return "Compose[" + c.Outer.Name() + ", " + c.Inner.Name() + "]"
}

func (c Compose) Pure(x any) any {
	return c.Outer.Pure(c.Inner.Pure(x))
}

func (c Compose) Map(f func(any) any, fx any) any {
	return c.Outer.Map(func(gx any) any {
		return c.Inner.Map(f, gx)
	}, fx)
}

func (c Compose) Ap(ff any, fx any) any {
	lifted := c.Outer.Map(func(gf any) any {
		return func(gx any) any {
			return c.Inner.Ap(gf, gx)
		}
	}, ff)
	return c.Outer.Ap(lifted, fx)
}

var _ Applicative = Compose{}
