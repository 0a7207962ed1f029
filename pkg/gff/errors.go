// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gff

import "fmt"

// ErrUnexpectedFileType means the header's file type tag is not the one
// the caller asked for.
type ErrUnexpectedFileType struct {
	Want string
	Got  string
}

func (err *ErrUnexpectedFileType) Error() string {
	return fmt.Sprintf("unexpected file type %q, want %q", err.Got, err.Want)
}

// ErrUnsupportedVersion means the header's version tag is not V3.2.
type ErrUnsupportedVersion struct {
	Got string
}

func (err *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("unsupported version %q, only %q is supported", err.Got, Version)
}

// ErrUnexpectedEOF means a section or value extends past the end of its
// containing block.
type ErrUnexpectedEOF struct {
	Section string
	Offset  uint64
}

func (err *ErrUnexpectedEOF) Error() string {
	return fmt.Sprintf("unexpected end of %s at offset %d", err.Section, err.Offset)
}

// ErrCorruptOffset means a header or entry offset points outside the
// data it addresses.
type ErrCorruptOffset struct {
	Section string
	Offset  uint64
	Limit   uint64
}

func (err *ErrCorruptOffset) Error() string {
	return fmt.Sprintf("corrupt %s offset %d, limit %d", err.Section, err.Offset, err.Limit)
}

// ErrIndexOutOfRange means a struct, field, or label index points past
// the end of its array.
type ErrIndexOutOfRange struct {
	Kind  string
	Index uint32
	Count uint32
}

func (err *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("%s index %d out of range, have %d", err.Kind, err.Index, err.Count)
}

// ErrUnknownFieldType means a field entry carries a type id outside the
// defined range.
type ErrUnknownFieldType struct {
	Type  uint32
	Label string
}

func (err *ErrUnknownFieldType) Error() string {
	return fmt.Sprintf("unknown field type %d on field %q", err.Type, err.Label)
}

// ErrStructLoop means a struct is referenced more than once, which a
// conforming writer can never produce and which would make the tree
// cyclic or shared.
type ErrStructLoop struct {
	Index uint32
}

func (err *ErrStructLoop) Error() string {
	return fmt.Sprintf("struct %d is referenced more than once", err.Index)
}

// ErrTooDeep means struct nesting exceeded the configured ceiling.
type ErrTooDeep struct {
	Depth int
}

func (err *ErrTooDeep) Error() string {
	return fmt.Sprintf("struct nesting deeper than %d levels", err.Depth)
}

// ErrLabelTooLong means a field label exceeds the 16-byte slot.
type ErrLabelTooLong struct {
	Label string
}

func (err *ErrLabelTooLong) Error() string {
	return fmt.Sprintf("label %q is %d bytes, limit is %d", err.Label, len(err.Label), MaxLabelLen)
}

// ErrDuplicateLabel means two fields of one struct share a label.
type ErrDuplicateLabel struct {
	Label string
}

func (err *ErrDuplicateLabel) Error() string {
	return fmt.Sprintf("duplicate label %q", err.Label)
}

// ErrStringTooLong means a string value exceeds its limit: 16 bytes for
// a resref (hard), 1024 bytes for a plain string (policy).
type ErrStringTooLong struct {
	Label  string
	Length int
	Limit  int
}

func (err *ErrStringTooLong) Error() string {
	return fmt.Sprintf("string value of field %q is %d bytes, limit is %d", err.Label, err.Length, err.Limit)
}

// ErrTypeMismatch means a field was accessed through an accessor of the
// wrong type.
type ErrTypeMismatch struct {
	Label string
	Want  FieldType
	Got   FieldType
}

func (err *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("field %q is %s, not %s", err.Label, err.Got, err.Want)
}

// ErrFieldNotFound means the struct has no field with the requested
// label.
type ErrFieldNotFound struct {
	Label string
}

func (err *ErrFieldNotFound) Error() string {
	return fmt.Sprintf("no field %q", err.Label)
}
