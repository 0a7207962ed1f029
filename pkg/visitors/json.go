// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/openaurora/gffkit/pkg/gff"
)

// JSON prints the document (or any node) as JSON.
type JSON struct {
	// JSON is written to this writer, os.Stdout when nil.
	W io.Writer
}

// Run prints the whole document, type tag included.
func (v *JSON) Run(d *gff.Document) error {
	return v.print(d)
}

// Visit applies the JSON visitor to a single node.
func (v *JSON) Visit(n gff.Node) error {
	return v.print(n)
}

func (v *JSON) print(x interface{}) error {
	b, err := json.MarshalIndent(x, "", "\t")
	if err != nil {
		return err
	}
	w := v.W
	if w == nil {
		w = os.Stdout
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func init() {
	RegisterCLI("json", "print the document as JSON", 0, func(args []string) (gff.Visitor, error) {
		return &JSON{}, nil
	})
}
