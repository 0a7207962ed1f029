// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gff

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/openaurora/gffkit/pkg/language"
	"github.com/openaurora/gffkit/pkg/log"
)

// padFileType pads a content tag to the four-byte header slot.
func padFileType(t string) string {
	for len(t) < 4 {
		t += " "
	}
	return t
}

// Serialize flattens the document to V3.2 bytes with default options.
// The layout is canonical: sections in header order, structs and fields
// in depth-first discovery order, labels deduplicated by first
// appearance. Parse(Serialize(d)) yields a tree equal to d.
func (d *Document) Serialize() ([]byte, error) {
	return d.SerializeWithOptions(DefaultOptions())
}

// SerializeWithOptions is Serialize with explicit policy.
func (d *Document) SerializeWithOptions(opt Options) ([]byte, error) {
	if len(d.FileType) > 4 {
		return nil, fmt.Errorf("file type tag %q is longer than four bytes", d.FileType)
	}
	if d.Root == nil {
		return nil, fmt.Errorf("document has no root struct")
	}
	w := &writer{opt: opt, labelIndex: map[string]uint32{}}
	if _, err := w.flattenStruct(d.Root, 0); err != nil {
		return nil, err
	}
	return w.assemble(d.FileType)
}

// writer accumulates the six sections while flattening the tree.
type writer struct {
	opt Options

	structs      []structEntry
	fields       []fieldEntry
	labels       []string
	labelIndex   map[string]uint32
	fieldData    bytes.Buffer
	fieldIndices bytes.Buffer
	listIndices  bytes.Buffer
}

// flattenStruct assigns s the next struct index and encodes its fields.
// The depth guard is what keeps a tree that was made cyclic through its
// live slices from hanging the writer.
func (w *writer) flattenStruct(s *Struct, depth int) (uint32, error) {
	if depth > w.opt.MaxDepth {
		return 0, &ErrTooDeep{Depth: w.opt.MaxDepth}
	}
	idx := uint32(len(w.structs))
	w.structs = append(w.structs, structEntry{Type: s.Type})

	indices := make([]uint32, 0, len(s.fields))
	for _, f := range s.fields {
		fi, err := w.flattenField(f, depth)
		if err != nil {
			return 0, err
		}
		indices = append(indices, fi)
	}

	entry := &w.structs[idx]
	entry.FieldCount = uint32(len(indices))
	switch len(indices) {
	case 0:
	case 1:
		entry.DataOrDataOffset = indices[0]
	default:
		entry.DataOrDataOffset = uint32(w.fieldIndices.Len())
		for _, fi := range indices {
			binaryWriteUint32(&w.fieldIndices, fi)
		}
	}
	return idx, nil
}

func (w *writer) internLabel(label string) (uint32, error) {
	if len(label) > MaxLabelLen {
		return 0, &ErrLabelTooLong{Label: label}
	}
	if idx, ok := w.labelIndex[label]; ok {
		return idx, nil
	}
	idx := uint32(len(w.labels))
	w.labels = append(w.labels, label)
	w.labelIndex[label] = idx
	return idx, nil
}

func (w *writer) flattenField(f *Field, depth int) (uint32, error) {
	lbl, err := w.internLabel(f.Label)
	if err != nil {
		return 0, err
	}
	entry := fieldEntry{Type: uint32(f.Type), LabelIndex: lbl}

	switch {
	case f.Type.simple():
		entry.DataOrDataOffset = uint32(f.bits)

	case f.Type == StructField:
		idx, err := w.flattenStruct(f.child, depth+1)
		if err != nil {
			return 0, err
		}
		entry.DataOrDataOffset = idx

	case f.Type == ListField:
		elems := make([]uint32, 0, len(f.list))
		for _, s := range f.list {
			idx, err := w.flattenStruct(s, depth+1)
			if err != nil {
				return 0, err
			}
			elems = append(elems, idx)
		}
		entry.DataOrDataOffset = uint32(w.listIndices.Len())
		binaryWriteUint32(&w.listIndices, uint32(len(elems)))
		for _, idx := range elems {
			binaryWriteUint32(&w.listIndices, idx)
		}

	default:
		off, err := w.appendFieldData(f)
		if err != nil {
			return 0, err
		}
		entry.DataOrDataOffset = off
	}

	idx := uint32(len(w.fields))
	w.fields = append(w.fields, entry)
	return idx, nil
}

// appendFieldData encodes one complex value into the field data block
// and returns its offset.
func (w *writer) appendFieldData(f *Field) (uint32, error) {
	off := uint32(w.fieldData.Len())

	switch f.Type {
	case Dword64Field, Int64Field, DoubleField:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], f.bits)
		w.fieldData.Write(b[:])

	case StringField:
		if len(f.str) > StringSoftLimit {
			if w.opt.Strict {
				return 0, &ErrStringTooLong{Label: f.Label, Length: len(f.str), Limit: StringSoftLimit}
			}
			log.Warnf("gff: field %q: string of %d bytes exceeds the %d byte limit", f.Label, len(f.str), StringSoftLimit)
		}
		binaryWriteUint32(&w.fieldData, uint32(len(f.str)))
		w.fieldData.WriteString(f.str)

	case ResRefField:
		if len(f.str) > MaxLabelLen {
			return 0, &ErrStringTooLong{Label: f.Label, Length: len(f.str), Limit: MaxLabelLen}
		}
		w.fieldData.WriteByte(uint8(len(f.str)))
		w.fieldData.WriteString(f.str)

	case LocStringField:
		total := uint32(8)
		for _, s := range f.loc.Substrings {
			if len(s.Text) > StringSoftLimit {
				if w.opt.Strict {
					return 0, &ErrStringTooLong{Label: f.Label, Length: len(s.Text), Limit: StringSoftLimit}
				}
				log.Warnf("gff: field %q: %s substring of %d bytes exceeds the %d byte limit", f.Label, s.Language, len(s.Text), StringSoftLimit)
			}
			total += 8 + uint32(len(s.Text))
		}
		binaryWriteUint32(&w.fieldData, total)
		binaryWriteUint32(&w.fieldData, uint32(f.loc.StrRef))
		binaryWriteUint32(&w.fieldData, uint32(len(f.loc.Substrings)))
		for _, s := range f.loc.Substrings {
			binaryWriteUint32(&w.fieldData, uint32(language.StringID(s.Language, s.Gender)))
			binaryWriteUint32(&w.fieldData, uint32(len(s.Text)))
			w.fieldData.WriteString(s.Text)
		}

	case VoidField:
		binaryWriteUint32(&w.fieldData, uint32(len(f.blob)))
		w.fieldData.Write(f.blob)

	default:
		return 0, &ErrUnknownFieldType{Type: uint32(f.Type), Label: f.Label}
	}
	return off, nil
}

// assemble lays the sections out in canonical order behind the header.
func (w *writer) assemble(fileType string) ([]byte, error) {
	var hdr header
	copy(hdr.FileType[:], padFileType(fileType))
	copy(hdr.FileVersion[:], Version)

	off := uint32(headerLen)
	hdr.StructOffset = off
	hdr.StructCount = uint32(len(w.structs))
	off += hdr.StructCount * structEntryLen
	hdr.FieldOffset = off
	hdr.FieldCount = uint32(len(w.fields))
	off += hdr.FieldCount * fieldEntryLen
	hdr.LabelOffset = off
	hdr.LabelCount = uint32(len(w.labels))
	off += hdr.LabelCount * MaxLabelLen
	hdr.FieldDataOffset = off
	hdr.FieldDataLength = uint32(w.fieldData.Len())
	off += hdr.FieldDataLength
	hdr.FieldIndicesOffset = off
	hdr.FieldIndicesLength = uint32(w.fieldIndices.Len())
	off += hdr.FieldIndicesLength
	hdr.ListIndicesOffset = off
	hdr.ListIndicesLength = uint32(w.listIndices.Len())

	out := bytes.NewBuffer(make([]byte, 0, int(off)+w.listIndices.Len()))
	if err := binary.Write(out, binary.LittleEndian, hdr); err != nil {
		return nil, err
	}
	if err := binary.Write(out, binary.LittleEndian, w.structs); err != nil {
		return nil, err
	}
	if err := binary.Write(out, binary.LittleEndian, w.fields); err != nil {
		return nil, err
	}
	for _, label := range w.labels {
		var slot [MaxLabelLen]byte
		copy(slot[:], label)
		out.Write(slot[:])
	}
	out.Write(w.fieldData.Bytes())
	out.Write(w.fieldIndices.Bytes())
	out.Write(w.listIndices.Bytes())
	return out.Bytes(), nil
}

func binaryWriteUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
