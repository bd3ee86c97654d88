package engine

import "fmt"

// nameGen is a monotonic fresh-name generator for locally introduced
// binders. One instance lives per derivation request; it is single-writer
// and needs no locking.
type nameGen struct {
	prefix string
	n      int
}

func newNameGen(prefix string) *nameGen {
	return &nameGen{prefix: prefix}
}

// Next returns the next fresh name: a1, a2, ...
func (g *nameGen) Next() string {
	g.n++
	return fmt.Sprintf("%s%d", g.prefix, g.n)
}
