package decl

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"martianoff/derive/internal/typeexpr"
)

// File format:
//
//	types:
//	  - name: Pair
//	    var: a
//	    constructors:
//	      - name: mk
//	        fields: [a, a]
type fileDoc struct {
	Types []typeDoc `yaml:"types"`
}

type typeDoc struct {
	Name         string    `yaml:"name"`
	Var          string    `yaml:"var"`
	Constructors []ctorDoc `yaml:"constructors"`
}

type ctorDoc struct {
	Name   string   `yaml:"name"`
	Fields []string `yaml:"fields"`
}

// Load reads type declarations from YAML. Every declaration is validated;
// the first invalid one aborts the load.
func Load(r io.Reader) ([]TypeDecl, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read declarations: %w", err)
	}

	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse declarations: %w", err)
	}

	decls := make([]TypeDecl, 0, len(doc.Types))
	for _, td := range doc.Types {
		d := TypeDecl{Name: td.Name, Var: td.Var}
		for _, cd := range td.Constructors {
			ctor := Constructor{Name: cd.Name}
			for i, ft := range cd.Fields {
				ctor.Fields = append(ctor.Fields, Field{Index: i, Type: typeexpr.Parse(ft)})
			}
			d.Ctors = append(d.Ctors, ctor)
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

// LoadFile reads type declarations from a YAML file on disk.
func LoadFile(path string) ([]TypeDecl, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open declarations: %w", err)
	}
	defer f.Close()
	return Load(f)
}
