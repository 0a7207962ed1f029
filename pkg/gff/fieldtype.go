// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gff

import "fmt"

// FieldType identifies the value kind of a field.
type FieldType uint32

// Field types as stored on disk.
const (
	ByteField      FieldType = 0
	CharField      FieldType = 1
	WordField      FieldType = 2
	ShortField     FieldType = 3
	DwordField     FieldType = 4
	IntField       FieldType = 5
	Dword64Field   FieldType = 6
	Int64Field     FieldType = 7
	FloatField     FieldType = 8
	DoubleField    FieldType = 9
	StringField    FieldType = 10
	ResRefField    FieldType = 11
	LocStringField FieldType = 12
	VoidField      FieldType = 13
	StructField    FieldType = 14
	ListField      FieldType = 15
)

// fieldTypeNames uses the names from the format documentation.
var fieldTypeNames = [...]string{
	"Byte", "Char", "Word", "Short", "Dword", "Int",
	"Dword64", "Int64", "Float", "Double", "CExoString", "ResRef",
	"CExoLocString", "Void", "Struct", "List",
}

func (t FieldType) String() string {
	if int(t) < len(fieldTypeNames) {
		return fieldTypeNames[t]
	}
	return fmt.Sprintf("FieldType(%d)", uint32(t))
}

// Valid reports whether t is a defined field type.
func (t FieldType) Valid() bool {
	return int(t) < len(fieldTypeNames)
}

// simple reports whether values of t are stored inline in the field
// entry's four-byte data slot.
func (t FieldType) simple() bool {
	switch t {
	case ByteField, CharField, WordField, ShortField, DwordField, IntField, FloatField:
		return true
	}
	return false
}

// complex reports whether values of t live in the field data block.
// Struct and List fields are neither simple nor complex; they address
// the struct array and the list indices block.
func (t FieldType) complex() bool {
	switch t {
	case Dword64Field, Int64Field, DoubleField, StringField, ResRefField, LocStringField, VoidField:
		return true
	}
	return false
}
