// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/openaurora/gffkit/pkg/gff"
	"github.com/openaurora/gffkit/pkg/language"
	"github.com/openaurora/gffkit/pkg/resref"
)

// Set adds or replaces a field at a path. The parent of the path must
// resolve to a struct; the final component names the field to set.
type Set struct {
	Path  string
	Field *gff.Field
}

// Run resolves the parent struct and sets the field.
func (v *Set) Run(d *gff.Document) error {
	parent, label, err := splitParent(v.Path)
	if err != nil {
		return err
	}
	target, err := d.ResolveStruct(parent)
	if err != nil {
		return err
	}
	f := *v.Field
	f.Label = label
	return target.Set(&f)
}

// Visit is a no-op; Set works on the resolved path only.
func (v *Set) Visit(n gff.Node) error {
	return nil
}

// splitParent splits a field path into the parent struct path and the
// final label.
func splitParent(path string) (parent, label string, err error) {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		parent, label = "", path
	} else {
		parent, label = path[:i], path[i+1:]
	}
	if label == "" || strings.HasSuffix(label, "]") {
		return "", "", fmt.Errorf("path %q must end in a field label", path)
	}
	return parent, label, nil
}

// parseFieldValue builds a field from a type name and its string
// rendering, using the same type names as the JSON codec.
func parseFieldValue(typeName, value string) (*gff.Field, error) {
	switch typeName {
	case "byte":
		n, err := strconv.ParseUint(value, 0, 8)
		if err != nil {
			return nil, err
		}
		return gff.NewByte("", uint8(n)), nil
	case "char":
		n, err := strconv.ParseInt(value, 0, 8)
		if err != nil {
			return nil, err
		}
		return gff.NewChar("", int8(n)), nil
	case "word":
		n, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return nil, err
		}
		return gff.NewWord("", uint16(n)), nil
	case "short":
		n, err := strconv.ParseInt(value, 0, 16)
		if err != nil {
			return nil, err
		}
		return gff.NewShort("", int16(n)), nil
	case "dword":
		n, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return nil, err
		}
		return gff.NewDword("", uint32(n)), nil
	case "int":
		n, err := strconv.ParseInt(value, 0, 32)
		if err != nil {
			return nil, err
		}
		return gff.NewInt("", int32(n)), nil
	case "dword64":
		n, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return nil, err
		}
		return gff.NewDword64("", n), nil
	case "int64":
		n, err := strconv.ParseInt(value, 0, 64)
		if err != nil {
			return nil, err
		}
		return gff.NewInt64("", n), nil
	case "float":
		f, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return nil, err
		}
		return gff.NewFloat("", float32(f)), nil
	case "double":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, err
		}
		return gff.NewDouble("", f), nil
	case "cexostring":
		raw, err := language.English.Encode(value)
		if err != nil {
			return nil, err
		}
		return gff.NewString("", string(raw)), nil
	case "resref":
		r, err := resref.Parse(value)
		if err != nil {
			return nil, err
		}
		return gff.NewResRef("", r), nil
	case "cexolocstring":
		// A bare number is a talk table reference, anything else is
		// embedded English text.
		if n, err := strconv.ParseInt(value, 0, 32); err == nil {
			return gff.NewLocString("", &gff.LocString{StrRef: int32(n)}), nil
		}
		raw, err := language.English.Encode(value)
		if err != nil {
			return nil, err
		}
		ls := &gff.LocString{StrRef: gff.NoStrRef}
		ls.SetText(language.English, language.Masculine, string(raw))
		return gff.NewLocString("", ls), nil
	case "void":
		b, err := hex.DecodeString(value)
		if err != nil {
			return nil, err
		}
		return gff.NewVoid("", b), nil
	case "struct", "list":
		return nil, fmt.Errorf("set cannot build %s values; edit the JSON dump instead", typeName)
	}
	return nil, fmt.Errorf("unknown field type %q", typeName)
}

func init() {
	RegisterCLI("set", "set a field: set PATH TYPE VALUE", 3, func(args []string) (gff.Visitor, error) {
		f, err := parseFieldValue(args[1], args[2])
		if err != nil {
			return nil, err
		}
		return &Set{
			Path:  args[0],
			Field: f,
		}, nil
	})
}
