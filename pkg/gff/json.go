// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gff

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/openaurora/gffkit/pkg/language"
	"github.com/openaurora/gffkit/pkg/resref"
)

// The JSON form of a document is meant for dumping, hand-editing and
// rebuilding. Fields carry a lowercase type name so the unmarshaller
// can restore the exact on-disk type; field order is preserved by
// keeping fields in an array rather than an object. Text is transcoded
// to UTF-8 on the way out and back to its codepage on the way in, so
// the JSON round-trip is value-exact rather than byte-exact.

// jsonTypeNames maps field types to the names used in JSON dumps.
var jsonTypeNames = [...]string{
	"byte", "char", "word", "short", "dword", "int",
	"dword64", "int64", "float", "double", "cexostring", "resref",
	"cexolocstring", "void", "struct", "list",
}

var jsonTypeByName = func() map[string]FieldType {
	m := make(map[string]FieldType, len(jsonTypeNames))
	for i, name := range jsonTypeNames {
		m[name] = FieldType(i)
	}
	return m
}()

// jsonStruct is the wire form of a Struct.
type jsonStruct struct {
	Type   uint32            `json:"type"`
	Fields []json.RawMessage `json:"fields"`
}

// jsonField is the wire form of a Field, minus the value.
type jsonField struct {
	Label string          `json:"label"`
	Type  string          `json:"field_type"`
	Value json.RawMessage `json:"value"`
}

// jsonSubstring is the wire form of a localized substring.
type jsonSubstring struct {
	Language language.Language `json:"language"`
	Gender   language.Gender   `json:"gender"`
	Text     string            `json:"text"`
}

// jsonLocString is the wire form of a LocString.
type jsonLocString struct {
	StrRef     int32           `json:"strref"`
	Substrings []jsonSubstring `json:"substrings,omitempty"`
}

// MarshalJSON implements the marshaller interface.
func (d *Document) MarshalJSON() ([]byte, error) {
	root, err := json.Marshal(d.Root)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		FileType string          `json:"file_type"`
		Root     json.RawMessage `json:"root"`
	}{FileType: strings.TrimRight(d.FileType, " "), Root: root})
}

// UnmarshalJSON implements the unmarshaller interface.
func (d *Document) UnmarshalJSON(b []byte) error {
	var wire struct {
		FileType string          `json:"file_type"`
		Root     json.RawMessage `json:"root"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	root := &Struct{}
	if err := json.Unmarshal(wire.Root, root); err != nil {
		return err
	}
	d.FileType = padFileType(wire.FileType)
	d.Root = root
	return nil
}

// MarshalJSON implements the marshaller interface.
func (s *Struct) MarshalJSON() ([]byte, error) {
	wire := jsonStruct{Type: s.Type, Fields: make([]json.RawMessage, 0, len(s.fields))}
	for _, f := range s.fields {
		b, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		wire.Fields = append(wire.Fields, b)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON implements the unmarshaller interface. Label
// uniqueness is enforced the same way it is on binary input.
func (s *Struct) UnmarshalJSON(b []byte) error {
	var wire jsonStruct
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	s.Type = wire.Type
	s.fields = nil
	for _, raw := range wire.Fields {
		f := &Field{}
		if err := json.Unmarshal(raw, f); err != nil {
			return err
		}
		if err := s.Add(f); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON implements the marshaller interface.
func (f *Field) MarshalJSON() ([]byte, error) {
	value, err := f.marshalValue()
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", f.Label, err)
	}
	return json.Marshal(jsonField{Label: f.Label, Type: jsonTypeNames[f.Type], Value: value})
}

func (f *Field) marshalValue() (json.RawMessage, error) {
	switch f.Type {
	case FloatField:
		return marshalFloat(float64(math.Float32frombits(uint32(f.bits))))
	case DoubleField:
		return marshalFloat(math.Float64frombits(f.bits))
	case StringField:
		text, err := language.English.Decode([]byte(f.str))
		if err != nil {
			return nil, err
		}
		return json.Marshal(text)
	case ResRefField:
		return json.Marshal(f.str)
	case LocStringField:
		wire := jsonLocString{StrRef: f.loc.StrRef}
		for _, sub := range f.loc.Substrings {
			text, err := sub.Decoded()
			if err != nil {
				return nil, err
			}
			wire.Substrings = append(wire.Substrings, jsonSubstring{
				Language: sub.Language, Gender: sub.Gender, Text: text,
			})
		}
		return json.Marshal(wire)
	case VoidField:
		// encoding/json encodes []byte as base64.
		return json.Marshal(f.blob)
	case StructField:
		return json.Marshal(f.child)
	case ListField:
		elems := make([]json.RawMessage, 0, len(f.list))
		for _, s := range f.list {
			b, err := json.Marshal(s)
			if err != nil {
				return nil, err
			}
			elems = append(elems, b)
		}
		return json.Marshal(elems)
	}
	return json.Marshal(f.Value())
}

// marshalFloat writes non-finite values as quoted tokens, which plain
// JSON numbers cannot carry.
func marshalFloat(v float64) (json.RawMessage, error) {
	switch {
	case math.IsNaN(v):
		return json.Marshal("NaN")
	case math.IsInf(v, 1):
		return json.Marshal("+Inf")
	case math.IsInf(v, -1):
		return json.Marshal("-Inf")
	}
	return json.Marshal(v)
}

func unmarshalFloat(raw json.RawMessage) (float64, error) {
	var token string
	if err := json.Unmarshal(raw, &token); err == nil {
		switch token {
		case "NaN":
			return math.NaN(), nil
		case "+Inf":
			return math.Inf(1), nil
		case "-Inf":
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("unknown float token %q", token)
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}

// UnmarshalJSON implements the unmarshaller interface.
func (f *Field) UnmarshalJSON(b []byte) error {
	var wire jsonField
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	t, ok := jsonTypeByName[wire.Type]
	if !ok {
		return fmt.Errorf("field %q: unknown field type name %q", wire.Label, wire.Type)
	}
	f.Label = wire.Label
	f.Type = t
	if err := f.unmarshalValue(wire.Value); err != nil {
		return fmt.Errorf("field %q: %w", wire.Label, err)
	}
	return nil
}

func (f *Field) unmarshalValue(raw json.RawMessage) error {
	switch f.Type {
	case ByteField, WordField, DwordField:
		var v uint32
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if err := checkUnsignedRange(uint64(v), f.Type); err != nil {
			return err
		}
		f.bits = uint64(v)
	case CharField, ShortField, IntField:
		var v int64
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		if err := checkSignedRange(v, f.Type); err != nil {
			return err
		}
		switch f.Type {
		case CharField:
			f.bits = uint64(uint8(int8(v)))
		case ShortField:
			f.bits = uint64(uint16(int16(v)))
		default:
			f.bits = uint64(uint32(int32(v)))
		}
	case Dword64Field:
		var v uint64
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		f.bits = v
	case Int64Field:
		var v int64
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		f.bits = uint64(v)
	case FloatField:
		v, err := unmarshalFloat(raw)
		if err != nil {
			return err
		}
		f.bits = uint64(math.Float32bits(float32(v)))
	case DoubleField:
		v, err := unmarshalFloat(raw)
		if err != nil {
			return err
		}
		f.bits = math.Float64bits(v)
	case StringField:
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return err
		}
		enc, err := language.English.Encode(text)
		if err != nil {
			return err
		}
		f.str = string(enc)
	case ResRefField:
		var r resref.ResRef
		if err := json.Unmarshal(raw, &r); err != nil {
			return err
		}
		f.str = string(r)
	case LocStringField:
		var wire jsonLocString
		if err := json.Unmarshal(raw, &wire); err != nil {
			return err
		}
		ls := &LocString{StrRef: wire.StrRef}
		for _, sub := range wire.Substrings {
			enc, err := sub.Language.Encode(sub.Text)
			if err != nil {
				return err
			}
			ls.Substrings = append(ls.Substrings, Substring{
				Language: sub.Language, Gender: sub.Gender, Text: string(enc),
			})
		}
		f.loc = ls
	case VoidField:
		var blob []byte
		if err := json.Unmarshal(raw, &blob); err != nil {
			return err
		}
		f.blob = blob
	case StructField:
		child := &Struct{}
		if err := json.Unmarshal(raw, child); err != nil {
			return err
		}
		f.child = child
	case ListField:
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return err
		}
		f.list = make([]*Struct, 0, len(elems))
		for _, e := range elems {
			s := &Struct{}
			if err := json.Unmarshal(e, s); err != nil {
				return err
			}
			f.list = append(f.list, s)
		}
	}
	return nil
}

func checkUnsignedRange(v uint64, t FieldType) error {
	var max uint64
	switch t {
	case ByteField:
		max = math.MaxUint8
	case WordField:
		max = math.MaxUint16
	case DwordField:
		max = math.MaxUint32
	default:
		return nil
	}
	if v > max {
		return fmt.Errorf("value %s does not fit a %s", strconv.FormatUint(v, 10), t)
	}
	return nil
}

func checkSignedRange(v int64, t FieldType) error {
	var min, max int64
	switch t {
	case CharField:
		min, max = math.MinInt8, math.MaxInt8
	case ShortField:
		min, max = math.MinInt16, math.MaxInt16
	case IntField:
		min, max = math.MinInt32, math.MaxInt32
	default:
		return nil
	}
	if v < min || v > max {
		return fmt.Errorf("value %s does not fit a %s", strconv.FormatInt(v, 10), t)
	}
	return nil
}
