// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gff

import (
	"fmt"
	"math"

	"github.com/openaurora/gffkit/pkg/language"
	"github.com/openaurora/gffkit/pkg/resref"
)

// Field is one labeled, typed value inside a struct. Construct fields
// with the New* functions and read them through the As* accessors; the
// accessors return ErrTypeMismatch instead of reinterpreting bits.
type Field struct {
	Label string
	Type  FieldType

	// The value lives in whichever slot matches Type.
	bits  uint64
	str   string
	blob  []byte
	loc   *LocString
	child *Struct
	list  []*Struct
}

// NewByte creates a Byte field.
func NewByte(label string, v uint8) *Field {
	return &Field{Label: label, Type: ByteField, bits: uint64(v)}
}

// NewChar creates a Char field.
func NewChar(label string, v int8) *Field {
	return &Field{Label: label, Type: CharField, bits: uint64(uint8(v))}
}

// NewWord creates a Word field.
func NewWord(label string, v uint16) *Field {
	return &Field{Label: label, Type: WordField, bits: uint64(v)}
}

// NewShort creates a Short field.
func NewShort(label string, v int16) *Field {
	return &Field{Label: label, Type: ShortField, bits: uint64(uint16(v))}
}

// NewDword creates a Dword field.
func NewDword(label string, v uint32) *Field {
	return &Field{Label: label, Type: DwordField, bits: uint64(v)}
}

// NewInt creates an Int field.
func NewInt(label string, v int32) *Field {
	return &Field{Label: label, Type: IntField, bits: uint64(uint32(v))}
}

// NewDword64 creates a Dword64 field.
func NewDword64(label string, v uint64) *Field {
	return &Field{Label: label, Type: Dword64Field, bits: v}
}

// NewInt64 creates an Int64 field.
func NewInt64(label string, v int64) *Field {
	return &Field{Label: label, Type: Int64Field, bits: uint64(v)}
}

// NewFloat creates a Float field.
func NewFloat(label string, v float32) *Field {
	return &Field{Label: label, Type: FloatField, bits: uint64(math.Float32bits(v))}
}

// NewDouble creates a Double field.
func NewDouble(label string, v float64) *Field {
	return &Field{Label: label, Type: DoubleField, bits: math.Float64bits(v)}
}

// NewString creates a CExoString field. The value is stored as given;
// non-ASCII text must already be in the target codepage.
func NewString(label, v string) *Field {
	return &Field{Label: label, Type: StringField, str: v}
}

// NewResRef creates a ResRef field.
func NewResRef(label string, v resref.ResRef) *Field {
	return &Field{Label: label, Type: ResRefField, str: string(v)}
}

// NewLocString creates a CExoLocString field. A nil value makes an
// empty localized string with no talk table reference.
func NewLocString(label string, v *LocString) *Field {
	if v == nil {
		v = &LocString{StrRef: NoStrRef}
	}
	return &Field{Label: label, Type: LocStringField, loc: v}
}

// NewVoid creates a Void (raw blob) field.
func NewVoid(label string, v []byte) *Field {
	return &Field{Label: label, Type: VoidField, blob: v}
}

// NewStructField creates a field holding a single child struct.
func NewStructField(label string, v *Struct) *Field {
	if v == nil {
		v = NewStruct(0)
	}
	return &Field{Label: label, Type: StructField, child: v}
}

// NewListField creates a field holding a list of structs.
func NewListField(label string, elems ...*Struct) *Field {
	return &Field{Label: label, Type: ListField, list: elems}
}

func (f *Field) typeErr(want FieldType) error {
	return &ErrTypeMismatch{Label: f.Label, Want: want, Got: f.Type}
}

// AsByte returns the Byte value.
func (f *Field) AsByte() (uint8, error) {
	if f.Type != ByteField {
		return 0, f.typeErr(ByteField)
	}
	return uint8(f.bits), nil
}

// AsChar returns the Char value.
func (f *Field) AsChar() (int8, error) {
	if f.Type != CharField {
		return 0, f.typeErr(CharField)
	}
	return int8(uint8(f.bits)), nil
}

// AsWord returns the Word value.
func (f *Field) AsWord() (uint16, error) {
	if f.Type != WordField {
		return 0, f.typeErr(WordField)
	}
	return uint16(f.bits), nil
}

// AsShort returns the Short value.
func (f *Field) AsShort() (int16, error) {
	if f.Type != ShortField {
		return 0, f.typeErr(ShortField)
	}
	return int16(uint16(f.bits)), nil
}

// AsDword returns the Dword value.
func (f *Field) AsDword() (uint32, error) {
	if f.Type != DwordField {
		return 0, f.typeErr(DwordField)
	}
	return uint32(f.bits), nil
}

// AsInt returns the Int value.
func (f *Field) AsInt() (int32, error) {
	if f.Type != IntField {
		return 0, f.typeErr(IntField)
	}
	return int32(uint32(f.bits)), nil
}

// AsDword64 returns the Dword64 value.
func (f *Field) AsDword64() (uint64, error) {
	if f.Type != Dword64Field {
		return 0, f.typeErr(Dword64Field)
	}
	return f.bits, nil
}

// AsInt64 returns the Int64 value.
func (f *Field) AsInt64() (int64, error) {
	if f.Type != Int64Field {
		return 0, f.typeErr(Int64Field)
	}
	return int64(f.bits), nil
}

// AsFloat returns the Float value.
func (f *Field) AsFloat() (float32, error) {
	if f.Type != FloatField {
		return 0, f.typeErr(FloatField)
	}
	return math.Float32frombits(uint32(f.bits)), nil
}

// AsDouble returns the Double value.
func (f *Field) AsDouble() (float64, error) {
	if f.Type != DoubleField {
		return 0, f.typeErr(DoubleField)
	}
	return math.Float64frombits(f.bits), nil
}

// AsString returns the CExoString value, raw codepage bytes included.
func (f *Field) AsString() (string, error) {
	if f.Type != StringField {
		return "", f.typeErr(StringField)
	}
	return f.str, nil
}

// AsResRef returns the ResRef value.
func (f *Field) AsResRef() (resref.ResRef, error) {
	if f.Type != ResRefField {
		return "", f.typeErr(ResRefField)
	}
	return resref.ResRef(f.str), nil
}

// AsLocString returns the CExoLocString value.
func (f *Field) AsLocString() (*LocString, error) {
	if f.Type != LocStringField {
		return nil, f.typeErr(LocStringField)
	}
	return f.loc, nil
}

// AsVoid returns the Void blob.
func (f *Field) AsVoid() ([]byte, error) {
	if f.Type != VoidField {
		return nil, f.typeErr(VoidField)
	}
	return f.blob, nil
}

// AsStruct returns the child struct.
func (f *Field) AsStruct() (*Struct, error) {
	if f.Type != StructField {
		return nil, f.typeErr(StructField)
	}
	return f.child, nil
}

// AsList returns the list elements. The slice is live, not a copy.
func (f *Field) AsList() ([]*Struct, error) {
	if f.Type != ListField {
		return nil, f.typeErr(ListField)
	}
	return f.list, nil
}

// Value returns the field's value as its natural Go type, for display
// and generic processing.
func (f *Field) Value() interface{} {
	switch f.Type {
	case ByteField:
		return uint8(f.bits)
	case CharField:
		return int8(uint8(f.bits))
	case WordField:
		return uint16(f.bits)
	case ShortField:
		return int16(uint16(f.bits))
	case DwordField:
		return uint32(f.bits)
	case IntField:
		return int32(uint32(f.bits))
	case Dword64Field:
		return f.bits
	case Int64Field:
		return int64(f.bits)
	case FloatField:
		return math.Float32frombits(uint32(f.bits))
	case DoubleField:
		return math.Float64frombits(f.bits)
	case StringField:
		return f.str
	case ResRefField:
		return resref.ResRef(f.str)
	case LocStringField:
		return f.loc
	case VoidField:
		return f.blob
	case StructField:
		return f.child
	case ListField:
		return f.list
	}
	return nil
}

// String renders the value for humans. Plain strings are decoded as
// Windows-1252, the common case.
func (f *Field) String() string {
	switch f.Type {
	case StringField:
		if text, err := language.English.Decode([]byte(f.str)); err == nil {
			return text
		}
		return f.str
	case ResRefField:
		return f.str
	case LocStringField:
		return f.loc.String()
	case VoidField:
		return fmt.Sprintf("%d bytes", len(f.blob))
	case StructField:
		return fmt.Sprintf("struct{%d}", f.child.NumFields())
	case ListField:
		return fmt.Sprintf("list[%d]", len(f.list))
	}
	return fmt.Sprintf("%v", f.Value())
}

// Apply calls the visitor on the field.
func (f *Field) Apply(v Visitor) error {
	return v.Visit(f)
}

// ApplyChildren calls the visitor on the child struct, on each list
// element, or on nothing for value fields.
func (f *Field) ApplyChildren(v Visitor) error {
	switch f.Type {
	case StructField:
		return f.child.Apply(v)
	case ListField:
		for _, s := range f.list {
			if err := s.Apply(v); err != nil {
				return err
			}
		}
	}
	return nil
}
