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

// header is the fixed 56-byte prologue. The first three sections are
// counted in entries, the last three in bytes.
type header struct {
	FileType           [4]byte
	FileVersion        [4]byte
	StructOffset       uint32
	StructCount        uint32
	FieldOffset        uint32
	FieldCount         uint32
	LabelOffset        uint32
	LabelCount         uint32
	FieldDataOffset    uint32
	FieldDataLength    uint32
	FieldIndicesOffset uint32
	FieldIndicesLength uint32
	ListIndicesOffset  uint32
	ListIndicesLength  uint32
}

// structEntry is one 12-byte record of the struct array. DataOrDataOffset
// is unused for zero fields, a field index for one field, and a byte
// offset into the field indices block otherwise.
type structEntry struct {
	Type             uint32
	DataOrDataOffset uint32
	FieldCount       uint32
}

// fieldEntry is one 12-byte record of the field array. DataOrDataOffset
// holds the value itself for simple types, a field data offset for
// complex types, a struct index for Struct, and a list indices offset
// for List.
type fieldEntry struct {
	Type             uint32
	LabelIndex       uint32
	DataOrDataOffset uint32
}

// Options control parse and serialize policy.
type Options struct {
	// Strict rejects recoverable policy violations: duplicate labels
	// within a struct and strings (plain or localized substrings)
	// over StringSoftLimit. When
	// false they are logged and tolerated (the first field with a
	// duplicated label wins).
	Strict bool

	// MaxDepth bounds struct nesting. Struct reuse is always rejected,
	// so this is a guard against pathologically deep chains, not
	// cycles.
	MaxDepth int
}

// DefaultOptions returns the strict defaults.
func DefaultOptions() Options {
	return Options{Strict: true, MaxDepth: 1000}
}

// Parse reads a V3.2 document from buf with default options. fileType
// asserts the header's content tag ("UTI", "DLG", ...); pass "" to
// accept any tag. The returned tree shares no memory with buf.
func Parse(buf []byte, fileType string) (*Document, error) {
	return ParseWithOptions(buf, fileType, DefaultOptions())
}

// ParseWithOptions is Parse with explicit policy.
func ParseWithOptions(buf []byte, fileType string, opt Options) (*Document, error) {
	if len(buf) < headerLen {
		return nil, &ErrUnexpectedEOF{Section: "header", Offset: uint64(len(buf))}
	}
	var hdr header
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if got := string(hdr.FileVersion[:]); got != Version {
		return nil, &ErrUnsupportedVersion{Got: got}
	}
	got := string(hdr.FileType[:])
	if fileType != "" && got != padFileType(fileType) {
		return nil, &ErrUnexpectedFileType{Want: padFileType(fileType), Got: got}
	}

	p := &parser{buf: buf, hdr: hdr, opt: opt}
	if err := p.readSections(); err != nil {
		return nil, err
	}
	root, err := p.decodeStruct(0, 0)
	if err != nil {
		return nil, err
	}
	if root.Type != RootStructType {
		if opt.Strict {
			return nil, fmt.Errorf("gff: root struct type is %#x, want the %#x sentinel", root.Type, RootStructType)
		}
		log.Warnf("gff: root struct type is %#x, not the root sentinel", root.Type)
	}
	return &Document{FileType: got, Root: root}, nil
}

type parser struct {
	buf []byte
	hdr header
	opt Options

	structs      []structEntry
	fields       []fieldEntry
	labels       []string
	fieldData    []byte
	fieldIndices []byte
	listIndices  []byte

	// used marks consumed struct indices. A conforming file references
	// every struct exactly once, which is what makes the tree a tree.
	used []bool
}

// section bounds-checks one header-addressed region of the file.
func (p *parser) section(off uint32, length uint64, name string) ([]byte, error) {
	end := uint64(off) + length
	if uint64(off) > uint64(len(p.buf)) || end > uint64(len(p.buf)) {
		return nil, &ErrCorruptOffset{Section: name, Offset: uint64(off), Limit: uint64(len(p.buf))}
	}
	return p.buf[off:end], nil
}

func (p *parser) readSections() error {
	structBytes, err := p.section(p.hdr.StructOffset, uint64(p.hdr.StructCount)*structEntryLen, "struct array")
	if err != nil {
		return err
	}
	p.structs = make([]structEntry, p.hdr.StructCount)
	if err := binary.Read(bytes.NewReader(structBytes), binary.LittleEndian, p.structs); err != nil {
		return err
	}

	fieldBytes, err := p.section(p.hdr.FieldOffset, uint64(p.hdr.FieldCount)*fieldEntryLen, "field array")
	if err != nil {
		return err
	}
	p.fields = make([]fieldEntry, p.hdr.FieldCount)
	if err := binary.Read(bytes.NewReader(fieldBytes), binary.LittleEndian, p.fields); err != nil {
		return err
	}

	labelBytes, err := p.section(p.hdr.LabelOffset, uint64(p.hdr.LabelCount)*MaxLabelLen, "label array")
	if err != nil {
		return err
	}
	p.labels = make([]string, p.hdr.LabelCount)
	for i := range p.labels {
		slot := labelBytes[i*MaxLabelLen : (i+1)*MaxLabelLen]
		if j := bytes.IndexByte(slot, 0); j >= 0 {
			slot = slot[:j]
		}
		p.labels[i] = string(slot)
	}

	if p.fieldData, err = p.section(p.hdr.FieldDataOffset, uint64(p.hdr.FieldDataLength), "field data"); err != nil {
		return err
	}
	if p.fieldIndices, err = p.section(p.hdr.FieldIndicesOffset, uint64(p.hdr.FieldIndicesLength), "field indices"); err != nil {
		return err
	}
	if p.listIndices, err = p.section(p.hdr.ListIndicesOffset, uint64(p.hdr.ListIndicesLength), "list indices"); err != nil {
		return err
	}
	p.used = make([]bool, p.hdr.StructCount)
	return nil
}

func (p *parser) decodeStruct(index uint32, depth int) (*Struct, error) {
	if index >= uint32(len(p.structs)) {
		return nil, &ErrIndexOutOfRange{Kind: "struct", Index: index, Count: uint32(len(p.structs))}
	}
	if p.used[index] {
		return nil, &ErrStructLoop{Index: index}
	}
	p.used[index] = true
	if depth > p.opt.MaxDepth {
		return nil, &ErrTooDeep{Depth: p.opt.MaxDepth}
	}

	entry := p.structs[index]
	s := NewStruct(entry.Type)
	var indices []uint32
	switch entry.FieldCount {
	case 0:
	case 1:
		indices = []uint32{entry.DataOrDataOffset}
	default:
		off := uint64(entry.DataOrDataOffset)
		if off > uint64(len(p.fieldIndices)) {
			return nil, &ErrCorruptOffset{Section: "field indices", Offset: off, Limit: uint64(len(p.fieldIndices))}
		}
		if off+4*uint64(entry.FieldCount) > uint64(len(p.fieldIndices)) {
			return nil, &ErrUnexpectedEOF{Section: "field indices", Offset: off}
		}
		indices = make([]uint32, entry.FieldCount)
		for i := range indices {
			indices[i] = binary.LittleEndian.Uint32(p.fieldIndices[off+4*uint64(i):])
		}
	}

	for _, fi := range indices {
		f, err := p.decodeField(fi, depth)
		if err != nil {
			return nil, err
		}
		if err := s.Add(f); err != nil {
			if _, ok := err.(*ErrDuplicateLabel); ok && !p.opt.Strict {
				log.Warnf("gff: struct %d: %v, keeping the first occurrence", index, err)
				continue
			}
			return nil, err
		}
	}
	return s, nil
}

func (p *parser) decodeField(index uint32, depth int) (*Field, error) {
	if index >= uint32(len(p.fields)) {
		return nil, &ErrIndexOutOfRange{Kind: "field", Index: index, Count: uint32(len(p.fields))}
	}
	entry := p.fields[index]
	if entry.LabelIndex >= uint32(len(p.labels)) {
		return nil, &ErrIndexOutOfRange{Kind: "label", Index: entry.LabelIndex, Count: uint32(len(p.labels))}
	}
	label := p.labels[entry.LabelIndex]
	t := FieldType(entry.Type)
	if !t.Valid() {
		return nil, &ErrUnknownFieldType{Type: entry.Type, Label: label}
	}

	switch {
	case t.simple():
		return &Field{Label: label, Type: t, bits: uint64(entry.DataOrDataOffset)}, nil
	case t == StructField:
		child, err := p.decodeStruct(entry.DataOrDataOffset, depth+1)
		if err != nil {
			return nil, err
		}
		return &Field{Label: label, Type: t, child: child}, nil
	case t == ListField:
		elems, err := p.decodeList(entry.DataOrDataOffset, depth)
		if err != nil {
			return nil, err
		}
		return &Field{Label: label, Type: t, list: elems}, nil
	}
	return p.decodeComplex(label, t, entry.DataOrDataOffset)
}

// decodeComplex reads one field data payload at off.
func (p *parser) decodeComplex(label string, t FieldType, off uint32) (*Field, error) {
	if uint64(off) > uint64(len(p.fieldData)) {
		return nil, &ErrCorruptOffset{Section: "field data", Offset: uint64(off), Limit: uint64(len(p.fieldData))}
	}
	c := &cursor{buf: p.fieldData, pos: uint64(off), name: "field data"}
	f := &Field{Label: label, Type: t}

	switch t {
	case Dword64Field, Int64Field, DoubleField:
		b, err := c.bytes(8)
		if err != nil {
			return nil, err
		}
		f.bits = binary.LittleEndian.Uint64(b)

	case StringField:
		n, err := c.uint32()
		if err != nil {
			return nil, err
		}
		b, err := c.bytes(uint64(n))
		if err != nil {
			return nil, err
		}
		if n > StringSoftLimit {
			if p.opt.Strict {
				return nil, &ErrStringTooLong{Label: label, Length: int(n), Limit: StringSoftLimit}
			}
			log.Warnf("gff: field %q: string of %d bytes exceeds the %d byte limit", label, n, StringSoftLimit)
		}
		f.str = string(b)

	case ResRefField:
		n, err := c.uint8()
		if err != nil {
			return nil, err
		}
		if int(n) > MaxLabelLen {
			return nil, &ErrStringTooLong{Label: label, Length: int(n), Limit: MaxLabelLen}
		}
		b, err := c.bytes(uint64(n))
		if err != nil {
			return nil, err
		}
		f.str = string(b)

	case LocStringField:
		// The leading total size duplicates what the inner fields
		// already say; the substrings are read from those.
		if _, err := c.uint32(); err != nil {
			return nil, err
		}
		ref, err := c.uint32()
		if err != nil {
			return nil, err
		}
		count, err := c.uint32()
		if err != nil {
			return nil, err
		}
		if uint64(count)*8 > uint64(len(c.buf))-c.pos {
			return nil, &ErrUnexpectedEOF{Section: "field data", Offset: c.pos}
		}
		ls := &LocString{StrRef: int32(ref), Substrings: make([]Substring, 0, count)}
		for i := uint32(0); i < count; i++ {
			id, err := c.uint32()
			if err != nil {
				return nil, err
			}
			n, err := c.uint32()
			if err != nil {
				return nil, err
			}
			b, err := c.bytes(uint64(n))
			if err != nil {
				return nil, err
			}
			if n > StringSoftLimit {
				if p.opt.Strict {
					return nil, &ErrStringTooLong{Label: label, Length: int(n), Limit: StringSoftLimit}
				}
				log.Warnf("gff: field %q: substring of %d bytes exceeds the %d byte limit", label, n, StringSoftLimit)
			}
			lang, gender := language.FromStringID(int32(id))
			ls.Substrings = append(ls.Substrings, Substring{Language: lang, Gender: gender, Text: string(b)})
		}
		f.loc = ls

	case VoidField:
		n, err := c.uint32()
		if err != nil {
			return nil, err
		}
		b, err := c.bytes(uint64(n))
		if err != nil {
			return nil, err
		}
		f.blob = append([]byte(nil), b...)
	}
	return f, nil
}

// decodeList reads a count-prefixed run of struct indices at off.
func (p *parser) decodeList(off uint32, depth int) ([]*Struct, error) {
	if uint64(off)+4 > uint64(len(p.listIndices)) {
		return nil, &ErrCorruptOffset{Section: "list indices", Offset: uint64(off), Limit: uint64(len(p.listIndices))}
	}
	count := binary.LittleEndian.Uint32(p.listIndices[off:])
	if uint64(off)+4+4*uint64(count) > uint64(len(p.listIndices)) {
		return nil, &ErrUnexpectedEOF{Section: "list indices", Offset: uint64(off)}
	}
	elems := make([]*Struct, 0, count)
	for i := uint32(0); i < count; i++ {
		idx := binary.LittleEndian.Uint32(p.listIndices[uint64(off)+4+4*uint64(i):])
		s, err := p.decodeStruct(idx, depth+1)
		if err != nil {
			return nil, err
		}
		elems = append(elems, s)
	}
	return elems, nil
}

// cursor is a bounds-checked reader over one section.
type cursor struct {
	buf  []byte
	pos  uint64
	name string
}

func (c *cursor) bytes(n uint64) ([]byte, error) {
	if c.pos+n > uint64(len(c.buf)) {
		return nil, &ErrUnexpectedEOF{Section: c.name, Offset: c.pos}
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) uint8() (uint8, error) {
	b, err := c.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) uint32() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
