// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/openaurora/gffkit/pkg/gff"
)

// Table prints the labels, types and values as a compact table.
type Table struct {
	W      *tabwriter.Writer
	indent int

	// name is the label printed for the next struct row: the owning
	// field's label, a list index, or "(root)".
	name string
}

// Run wraps Visit and performs some setup and teardown tasks.
func (v *Table) Run(d *gff.Document) error {
	if v.W == nil {
		v.W = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer v.W.Flush()
	}
	fmt.Fprintf(v.W, "Label\tType\tValue\n")
	return d.Root.Apply(v)
}

// Visit applies the Table visitor to any node.
func (v *Table) Visit(n gff.Node) error {
	switch n := n.(type) {
	case *gff.Struct:
		name := v.name
		if name == "" {
			name = "(root)"
		}
		if err := v.printRow(name, fmt.Sprintf("Struct{%#x}", n.Type), fmt.Sprintf("%d fields", n.NumFields())); err != nil {
			return err
		}
		v2 := *v
		v2.indent++
		return n.ApplyChildren(&v2)

	case *gff.Field:
		switch n.Type {
		case gff.StructField:
			v2 := *v
			v2.name = n.Label
			return n.ApplyChildren(&v2)
		case gff.ListField:
			elems, err := n.AsList()
			if err != nil {
				return err
			}
			if err := v.printRow(n.Label, "List", fmt.Sprintf("%d elements", len(elems))); err != nil {
				return err
			}
			for i, s := range elems {
				v2 := *v
				v2.indent++
				v2.name = fmt.Sprintf("[%d]", i)
				if err := s.Apply(&v2); err != nil {
					return err
				}
			}
			return nil
		default:
			return v.printRow(n.Label, n.Type.String(), n.String())
		}
	}
	return nil
}

func indent(n int) string {
	return strings.Repeat(" ", n)
}

func (v *Table) printRow(label, typez, value string) error {
	_, err := fmt.Fprintf(v.W, "%s%s\t%s\t%s\n", indent(v.indent), label, typez, value)
	return err
}

func init() {
	RegisterCLI("table", "print out document contents in a compact table", 0, func(args []string) (gff.Visitor, error) {
		return &Table{}, nil
	})
}
