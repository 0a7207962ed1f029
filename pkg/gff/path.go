// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gff

import (
	"fmt"
	"strconv"
	"strings"
)

// A field path names a field by walking labels from the root, with
// list elements selected by index:
//
//	Tag                   field of the root struct
//	Geometry.PointX       field inside a struct-typed field
//	ItemList[2].Tag       field of the third element of a list
//
// Labels cannot contain '.', '[' or ']' on disk that anyone has ever
// seen, so the grammar does no escaping.

// Resolve walks a field path from the root and returns the field it
// names. It fails with ErrFieldNotFound for a missing label,
// ErrTypeMismatch for a step through a non-container field, and a
// plain error for a bad index or syntax.
func (d *Document) Resolve(path string) (*Field, error) {
	steps, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("empty field path")
	}

	cur := d.Root
	for i, step := range steps {
		f := cur.Field(step.label)
		if f == nil {
			return nil, &ErrFieldNotFound{Label: step.label}
		}
		if step.index >= 0 {
			elems, err := f.AsList()
			if err != nil {
				return nil, err
			}
			if step.index >= len(elems) {
				return nil, fmt.Errorf("%s: index %d out of range, list has %d elements", step.label, step.index, len(elems))
			}
			if i == len(steps)-1 {
				// A list element is a struct, not a field; use
				// ResolveStruct for paths ending in an index.
				return nil, fmt.Errorf("field path %q names a list element, not a field", path)
			}
			cur = elems[step.index]
			continue
		}
		if i == len(steps)-1 {
			return f, nil
		}
		child, err := f.AsStruct()
		if err != nil {
			return nil, err
		}
		cur = child
	}
	return nil, fmt.Errorf("unreachable")
}

// ResolveStruct walks a field path and returns the struct it names:
// the root for "", the child struct of a struct-typed field, or a list
// element for a path ending in an index.
func (d *Document) ResolveStruct(path string) (*Struct, error) {
	if path == "" {
		return d.Root, nil
	}
	steps, err := splitPath(path)
	if err != nil {
		return nil, err
	}

	cur := d.Root
	for _, step := range steps {
		f := cur.Field(step.label)
		if f == nil {
			return nil, &ErrFieldNotFound{Label: step.label}
		}
		if step.index >= 0 {
			elems, err := f.AsList()
			if err != nil {
				return nil, err
			}
			if step.index >= len(elems) {
				return nil, fmt.Errorf("%s: index %d out of range, list has %d elements", step.label, step.index, len(elems))
			}
			cur = elems[step.index]
			continue
		}
		child, err := f.AsStruct()
		if err != nil {
			return nil, err
		}
		cur = child
	}
	return cur, nil
}

// pathStep is one label, with an optional list index (-1 for none).
type pathStep struct {
	label string
	index int
}

func splitPath(path string) ([]pathStep, error) {
	var steps []pathStep
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, fmt.Errorf("field path %q has an empty component", path)
		}
		step := pathStep{label: part, index: -1}
		if i := strings.IndexByte(part, '['); i >= 0 {
			if !strings.HasSuffix(part, "]") {
				return nil, fmt.Errorf("field path component %q has an unterminated index", part)
			}
			idx, err := strconv.Atoi(part[i+1 : len(part)-1])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("field path component %q has a bad index", part)
			}
			step.label = part[:i]
			step.index = idx
		}
		steps = append(steps, step)
	}
	return steps, nil
}
