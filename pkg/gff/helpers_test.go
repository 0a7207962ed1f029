// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gff

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/openaurora/gffkit/pkg/language"
)

// gffBuilder assembles a binary document section by section, so tests
// can produce both conforming files and precisely broken ones.
type gffBuilder struct {
	fileType string
	version  string

	structs      []structEntry
	fields       []fieldEntry
	labels       []string
	fieldData    []byte
	fieldIndices []byte
	listIndices  []byte
}

func newBuilder(fileType string) *gffBuilder {
	return &gffBuilder{fileType: fileType, version: Version}
}

// label interns a label and returns its index.
func (b *gffBuilder) label(s string) uint32 {
	for i, l := range b.labels {
		if l == s {
			return uint32(i)
		}
	}
	b.labels = append(b.labels, s)
	return uint32(len(b.labels) - 1)
}

// addStruct appends a struct entry and returns its index.
func (b *gffBuilder) addStruct(typeID, data, fieldCount uint32) uint32 {
	b.structs = append(b.structs, structEntry{Type: typeID, DataOrDataOffset: data, FieldCount: fieldCount})
	return uint32(len(b.structs) - 1)
}

// addField appends a field entry and returns its index.
func (b *gffBuilder) addField(t FieldType, label string, data uint32) uint32 {
	b.fields = append(b.fields, fieldEntry{Type: uint32(t), LabelIndex: b.label(label), DataOrDataOffset: data})
	return uint32(len(b.fields) - 1)
}

// cexoString appends a length-prefixed string to the field data block
// and returns its offset.
func (b *gffBuilder) cexoString(s string) uint32 {
	off := uint32(len(b.fieldData))
	b.fieldData = appendUint32(b.fieldData, uint32(len(s)))
	b.fieldData = append(b.fieldData, s...)
	return off
}

// locString appends an encoded localized string to the field data
// block and returns its offset.
func (b *gffBuilder) locString(strref int32, subs ...Substring) uint32 {
	off := uint32(len(b.fieldData))
	total := uint32(8)
	for _, s := range subs {
		total += 8 + uint32(len(s.Text))
	}
	b.fieldData = appendUint32(b.fieldData, total)
	b.fieldData = appendUint32(b.fieldData, uint32(strref))
	b.fieldData = appendUint32(b.fieldData, uint32(len(subs)))
	for _, s := range subs {
		b.fieldData = appendUint32(b.fieldData, uint32(language.StringID(s.Language, s.Gender)))
		b.fieldData = appendUint32(b.fieldData, uint32(len(s.Text)))
		b.fieldData = append(b.fieldData, s.Text...)
	}
	return off
}

// list appends a count-prefixed index run to the list indices block and
// returns its offset.
func (b *gffBuilder) list(indices ...uint32) uint32 {
	off := uint32(len(b.listIndices))
	b.listIndices = appendUint32(b.listIndices, uint32(len(indices)))
	for _, i := range indices {
		b.listIndices = appendUint32(b.listIndices, i)
	}
	return off
}

// indexRun appends field indices to the field indices block and returns
// its offset.
func (b *gffBuilder) indexRun(indices ...uint32) uint32 {
	off := uint32(len(b.fieldIndices))
	for _, i := range indices {
		b.fieldIndices = appendUint32(b.fieldIndices, i)
	}
	return off
}

func appendUint32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

// build lays the sections out in canonical order.
func (b *gffBuilder) build(t *testing.T) []byte {
	t.Helper()
	var hdr header
	copy(hdr.FileType[:], padFileType(b.fileType))
	copy(hdr.FileVersion[:], b.version)

	off := uint32(headerLen)
	hdr.StructOffset = off
	hdr.StructCount = uint32(len(b.structs))
	off += hdr.StructCount * structEntryLen
	hdr.FieldOffset = off
	hdr.FieldCount = uint32(len(b.fields))
	off += hdr.FieldCount * fieldEntryLen
	hdr.LabelOffset = off
	hdr.LabelCount = uint32(len(b.labels))
	off += hdr.LabelCount * MaxLabelLen
	hdr.FieldDataOffset = off
	hdr.FieldDataLength = uint32(len(b.fieldData))
	off += hdr.FieldDataLength
	hdr.FieldIndicesOffset = off
	hdr.FieldIndicesLength = uint32(len(b.fieldIndices))
	off += hdr.FieldIndicesLength
	hdr.ListIndicesOffset = off
	hdr.ListIndicesLength = uint32(len(b.listIndices))

	out := &bytes.Buffer{}
	if err := binary.Write(out, binary.LittleEndian, hdr); err != nil {
		t.Fatal(err)
	}
	if err := binary.Write(out, binary.LittleEndian, b.structs); err != nil {
		t.Fatal(err)
	}
	if err := binary.Write(out, binary.LittleEndian, b.fields); err != nil {
		t.Fatal(err)
	}
	for _, label := range b.labels {
		var slot [MaxLabelLen]byte
		copy(slot[:], label)
		out.Write(slot[:])
	}
	out.Write(b.fieldData)
	out.Write(b.fieldIndices)
	out.Write(b.listIndices)
	return out.Bytes()
}

// mustAdd grows a struct in tests that build trees programmatically.
func mustAdd(t *testing.T, s *Struct, f *Field) {
	t.Helper()
	if err := s.Add(f); err != nil {
		t.Fatalf("Add(%q): %v", f.Label, err)
	}
}
