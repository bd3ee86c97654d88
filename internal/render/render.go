// Package render turns a derivation result into the text form shown by the
// CLI and pinned by golden tests.
package render

import (
	"fmt"
	"strings"

	"martianoff/derive/internal/engine"
)

// Derived renders the full derivation: header, both operations with their
// unfolding equations, and the law obligations.
func Derived(d *engine.Derived) string {
	var sb strings.Builder

	plural := "constructors"
	if len(d.Decl.Ctors) == 1 {
		plural = "constructor"
	}
	fmt.Fprintf(&sb, "derived %s (var %s, %d %s)\n", d.Decl.Name, d.Decl.Var, len(d.Decl.Ctors), plural)

	sb.WriteString("\n")
	writeOp(&sb, "map", d.Map)
	sb.WriteString("\n")
	writeOp(&sb, "traverse", d.Traverse)

	sb.WriteString("\nlaws:\n")
	for _, o := range d.Laws {
		fmt.Fprintf(&sb, "  %s\n", o)
	}
	return sb.String()
}

func writeOp(sb *strings.Builder, kind string, op *engine.SynthesizedOp) {
	fmt.Fprintf(sb, "%s %s:\n", kind, op.Name)
	for _, eq := range op.Equations {
		fmt.Fprintf(sb, "  %s\n", eq)
	}
}
