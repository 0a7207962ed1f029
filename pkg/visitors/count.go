// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/openaurora/gffkit/pkg/gff"
)

// Count tallies structs, fields and field types over the whole tree.
type Count struct {
	// Optionally write result as JSON.
	W io.Writer `json:"-"`

	// Output
	StructCount    int
	FieldCount     int
	FieldTypeCount map[string]int
	PayloadSize    string

	payloadBytes uint64
}

// Run wraps Visit and performs some setup and teardown tasks.
func (v *Count) Run(d *gff.Document) error {
	v.StructCount = 0
	v.FieldCount = 0
	v.FieldTypeCount = map[string]int{}
	v.payloadBytes = 0

	if err := d.Root.Apply(v); err != nil {
		return err
	}
	v.PayloadSize = humanize.IBytes(v.payloadBytes)

	if v.W != nil {
		b, err := json.MarshalIndent(v, "", "\t")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(v.W, string(b))
		return err
	}
	return nil
}

// Visit applies the Count visitor to any node.
func (v *Count) Visit(n gff.Node) error {
	switch n := n.(type) {
	case *gff.Struct:
		v.StructCount++
	case *gff.Field:
		v.FieldCount++
		v.FieldTypeCount[n.Type.String()]++

		// Track the bytes the variable-size payloads take on disk.
		switch n.Type {
		case gff.StringField:
			s, _ := n.AsString()
			v.payloadBytes += uint64(len(s))
		case gff.VoidField:
			b, _ := n.AsVoid()
			v.payloadBytes += uint64(len(b))
		case gff.LocStringField:
			ls, _ := n.AsLocString()
			for _, sub := range ls.Substrings {
				v.payloadBytes += uint64(len(sub.Text))
			}
		}
	}
	return n.ApplyChildren(v)
}

func init() {
	RegisterCLI("count", "count structs and fields by type", 0, func(args []string) (gff.Visitor, error) {
		return &Count{W: os.Stdout}, nil
	})
}
