// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gff

// Struct is one node of the document tree: an opaque type id and an
// ordered list of labeled fields. Labels are unique within a struct;
// Add and Set enforce that, so the field list is only reachable through
// them.
type Struct struct {
	// Type is an application-defined id. It is RootStructType on the
	// root and carries schema meaning (or nothing) elsewhere.
	Type uint32

	fields []*Field
}

// NewStruct creates an empty struct with the given type id.
func NewStruct(typeID uint32) *Struct {
	return &Struct{Type: typeID}
}

// Field returns the field with the given label, or nil.
func (s *Struct) Field(label string) *Field {
	for _, f := range s.fields {
		if f.Label == label {
			return f
		}
	}
	return nil
}

// Has reports whether a field with the given label exists.
func (s *Struct) Has(label string) bool {
	return s.Field(label) != nil
}

// Add appends a field. It fails with ErrDuplicateLabel if the label is
// taken and ErrLabelTooLong if it does not fit a label slot.
func (s *Struct) Add(f *Field) error {
	if len(f.Label) > MaxLabelLen {
		return &ErrLabelTooLong{Label: f.Label}
	}
	if s.Has(f.Label) {
		return &ErrDuplicateLabel{Label: f.Label}
	}
	s.fields = append(s.fields, f)
	return nil
}

// Set adds the field or replaces the existing field with the same
// label, keeping its position.
func (s *Struct) Set(f *Field) error {
	if len(f.Label) > MaxLabelLen {
		return &ErrLabelTooLong{Label: f.Label}
	}
	for i, old := range s.fields {
		if old.Label == f.Label {
			s.fields[i] = f
			return nil
		}
	}
	s.fields = append(s.fields, f)
	return nil
}

// Remove deletes the field with the given label and reports whether it
// existed.
func (s *Struct) Remove(label string) bool {
	for i, f := range s.fields {
		if f.Label == label {
			s.fields = append(s.fields[:i], s.fields[i+1:]...)
			return true
		}
	}
	return false
}

// Fields returns the field list in document order. The slice is live,
// not a copy; do not grow it directly.
func (s *Struct) Fields() []*Field {
	return s.fields
}

// NumFields returns the number of fields.
func (s *Struct) NumFields() int {
	return len(s.fields)
}

// Apply calls the visitor on the struct.
func (s *Struct) Apply(v Visitor) error {
	return v.Visit(s)
}

// ApplyChildren calls the visitor on each field in order.
func (s *Struct) ApplyChildren(v Visitor) error {
	for _, f := range s.fields {
		if err := f.Apply(v); err != nil {
			return err
		}
	}
	return nil
}
