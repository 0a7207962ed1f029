// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/openaurora/gffkit/pkg/gff"
	"github.com/openaurora/gffkit/pkg/resref"
)

// Validate performs extra checks on the document: policy limits the
// parser tolerates in lenient mode and constraints a hand-built tree
// can violate.
type Validate struct {
	// An optional Writer for printing findings when validation is
	// complete.
	W io.Writer

	// Findings aggregated over the whole tree.
	Errors *multierror.Error
}

// Run wraps Visit and performs some setup and teardown tasks.
func (v *Validate) Run(d *gff.Document) error {
	if len(d.FileType) > 4 {
		v.Errors = multierror.Append(v.Errors, fmt.Errorf("file type %q is longer than 4 characters", d.FileType))
	}
	if d.Root == nil {
		v.Errors = multierror.Append(v.Errors, fmt.Errorf("document has no root struct"))
		return v.finish()
	}
	if d.Root.Type != gff.RootStructType {
		v.Errors = multierror.Append(v.Errors, fmt.Errorf("root struct type is %#x, want %#x", d.Root.Type, gff.RootStructType))
	}
	if err := d.Root.Apply(v); err != nil {
		return err
	}
	return v.finish()
}

func (v *Validate) finish() error {
	if v.W != nil && v.Errors.ErrorOrNil() != nil {
		for _, e := range v.Errors.Errors {
			fmt.Fprintln(v.W, e)
		}
	}
	return v.Errors.ErrorOrNil()
}

// Visit applies the Validate visitor to any node.
func (v *Validate) Visit(n gff.Node) error {
	switch n := n.(type) {
	case *gff.Struct:
		seen := map[string]bool{}
		for _, f := range n.Fields() {
			if seen[f.Label] {
				v.Errors = multierror.Append(v.Errors, fmt.Errorf("struct has two fields labeled %q", f.Label))
			}
			seen[f.Label] = true
		}
		return n.ApplyChildren(v)

	case *gff.Field:
		if len(n.Label) > gff.MaxLabelLen {
			v.Errors = multierror.Append(v.Errors, fmt.Errorf("label %q is %d bytes, limit is %d", n.Label, len(n.Label), gff.MaxLabelLen))
		}
		if !n.Type.Valid() {
			v.Errors = multierror.Append(v.Errors, fmt.Errorf("field %q has unknown type %d", n.Label, n.Type))
			return nil
		}
		switch n.Type {
		case gff.StringField:
			s, _ := n.AsString()
			if len(s) > gff.StringSoftLimit {
				v.Errors = multierror.Append(v.Errors, fmt.Errorf("string %q is %d bytes, limit is %d", n.Label, len(s), gff.StringSoftLimit))
			}
		case gff.ResRefField:
			r, _ := n.AsResRef()
			if len(r) > resref.MaxLen || !r.Valid() {
				v.Errors = multierror.Append(v.Errors, fmt.Errorf("field %q holds invalid resref %q", n.Label, string(r)))
			}
		case gff.LocStringField:
			ls, _ := n.AsLocString()
			for _, sub := range ls.Substrings {
				if !sub.Language.Known() {
					v.Errors = multierror.Append(v.Errors, fmt.Errorf("field %q has a substring in unknown language %d", n.Label, sub.Language))
				}
				if len(sub.Text) > gff.StringSoftLimit {
					v.Errors = multierror.Append(v.Errors, fmt.Errorf("field %q has a %s substring of %d bytes, limit is %d", n.Label, sub.Language, len(sub.Text), gff.StringSoftLimit))
				}
			}
		case gff.StructField:
			child, _ := n.AsStruct()
			if child == nil {
				v.Errors = multierror.Append(v.Errors, fmt.Errorf("field %q has no child struct", n.Label))
				return nil
			}
		case gff.ListField:
			elems, _ := n.AsList()
			for i, s := range elems {
				if s == nil {
					v.Errors = multierror.Append(v.Errors, fmt.Errorf("field %q has a nil element at index %d", n.Label, i))
					return nil
				}
			}
		}
		return n.ApplyChildren(v)
	}
	return nil
}

func init() {
	RegisterCLI("validate", "check the document against format limits", 0, func(args []string) (gff.Visitor, error) {
		return &Validate{W: os.Stderr}, nil
	})
}
