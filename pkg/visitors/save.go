// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"os"

	"github.com/openaurora/gffkit/pkg/gff"
)

// Save serializes the document and writes it to a file.
type Save struct {
	DirPath string

	// Options carry the serialize policy; the CLI fills these in from
	// its flags.
	Options gff.Options
}

// Run serializes the whole document and writes the result out. A
// document always serializes from the root, so there is nothing for
// Visit to do per node.
func (v *Save) Run(d *gff.Document) error {
	b, err := d.SerializeWithOptions(v.Options)
	if err != nil {
		return err
	}
	return os.WriteFile(v.DirPath, b, 0666)
}

// Visit is a no-op.
func (v *Save) Visit(n gff.Node) error {
	return nil
}

func init() {
	RegisterCLI("save", "write the document to a file: save PATH", 1, func(args []string) (gff.Visitor, error) {
		return &Save{
			DirPath: args[0],
			Options: gff.DefaultOptions(),
		}, nil
	})
}
