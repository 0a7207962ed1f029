// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/openaurora/gffkit/pkg/gff"
)

// FindPredicate is used to filter matches in the Find visitor.
type FindPredicate = func(f *gff.Field) bool

// Match is one field matched by Find, with the path that reaches it.
type Match struct {
	Path  string
	Field *gff.Field
}

// MarshalJSON emits the path alongside the field's own JSON form.
func (m Match) MarshalJSON() ([]byte, error) {
	field, err := json.Marshal(m.Field)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Path  string          `json:"path"`
		Field json.RawMessage `json:"field"`
	}{m.Path, field})
}

// Find locates fields whose label satisfies a predicate.
type Find struct {
	// Input
	// Only when this function returns true will the field appear in
	// the `Matches` slice.
	Predicate FindPredicate

	// Output
	Matches []Match

	// JSON is written to this writer.
	W io.Writer

	// Private
	prefix string
}

// Run wraps Visit and performs some setup and teardown tasks.
func (v *Find) Run(d *gff.Document) error {
	if err := d.Root.Apply(v); err != nil {
		return err
	}
	if v.W != nil {
		b, err := json.MarshalIndent(v.Matches, "", "\t")
		if err != nil {
			return err
		}
		fmt.Fprintln(v.W, string(b))
	}
	return nil
}

// Visit applies the Find visitor to any node.
func (v *Find) Visit(n gff.Node) error {
	switch n := n.(type) {
	case *gff.Struct:
		return n.ApplyChildren(v)

	case *gff.Field:
		path := n.Label
		if v.prefix != "" {
			path = v.prefix + "." + n.Label
		}
		if v.Predicate(n) {
			v.Matches = append(v.Matches, Match{Path: path, Field: n})
		}

		switch n.Type {
		case gff.StructField:
			// Clone the visitor so the prefix is passed only to
			// descendents.
			v2 := *v
			v2.prefix = path
			v2.Matches = nil
			err := n.ApplyChildren(&v2)
			v.Matches = append(v.Matches, v2.Matches...) // Merge together
			return err
		case gff.ListField:
			elems, err := n.AsList()
			if err != nil {
				return err
			}
			for i, s := range elems {
				v2 := *v
				v2.prefix = fmt.Sprintf("%s[%d]", path, i)
				v2.Matches = nil
				if err := s.Apply(&v2); err != nil {
					return err
				}
				v.Matches = append(v.Matches, v2.Matches...)
			}
		}
		return nil
	}
	return nil
}

// FindLabelPredicate is a generic predicate matching field labels
// against an anchored regular expression.
func FindLabelPredicate(expr string) (FindPredicate, error) {
	searchRE, err := regexp.Compile("^(" + expr + ")$")
	if err != nil {
		return nil, err
	}
	return func(f *gff.Field) bool {
		return searchRE.MatchString(f.Label)
	}, nil
}

// FindTypePredicate matches fields of one type.
func FindTypePredicate(t gff.FieldType) FindPredicate {
	return func(f *gff.Field) bool {
		return f.Type == t
	}
}

func init() {
	RegisterCLI("find", "find fields by label regex, print matches as JSON", 1, func(args []string) (gff.Visitor, error) {
		pred, err := FindLabelPredicate(args[0])
		if err != nil {
			return nil, err
		}
		return &Find{
			Predicate: pred,
			W:         os.Stdout,
		}, nil
	})
}
