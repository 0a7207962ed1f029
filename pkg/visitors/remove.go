// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"fmt"

	"github.com/openaurora/gffkit/pkg/gff"
)

// Remove deletes the field at a path.
type Remove struct {
	Path string
}

// Run resolves the parent struct and removes the field.
func (v *Remove) Run(d *gff.Document) error {
	parent, label, err := splitParent(v.Path)
	if err != nil {
		return err
	}
	target, err := d.ResolveStruct(parent)
	if err != nil {
		return err
	}
	if !target.Remove(label) {
		return fmt.Errorf("remove %s: %w", v.Path, &gff.ErrFieldNotFound{Label: label})
	}
	return nil
}

// Visit is a no-op; Remove works on the resolved path only.
func (v *Remove) Visit(n gff.Node) error {
	return nil
}

func init() {
	RegisterCLI("remove", "remove the field at a path", 1, func(args []string) (gff.Visitor, error) {
		return &Remove{
			Path: args[0],
		}, nil
	})
}
