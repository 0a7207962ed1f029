// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bif reads bif data files, the V1 containers the key index
// points into. Two variants exist: plain "BIFF", where resource bytes
// are stored as-is, and "BZF ", where each resource is an LZMA stream
// (used by the mobile ports). Both are shipped, read-only game data;
// there is no writer.
package bif

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/ulikunitz/xz/lzma"

	"github.com/openaurora/gffkit/pkg/restype"
)

// Format constants.
const (
	// FileTypeBIF is the type tag of the plain variant.
	FileTypeBIF = "BIFF"

	// FileTypeBZF is the type tag of the LZMA-compressed variant.
	FileTypeBZF = "BZF "

	// Version is the only supported version tag.
	Version = "V1  "

	headerLen        = 20
	variableEntryLen = 16

	resIndexBits = 20
	resIndexMask = 1<<resIndexBits - 1

	lzmaPropsLen = 5
)

// header is the fixed 20-byte prologue.
type header struct {
	FileType              [4]byte
	FileVersion           [4]byte
	VariableResourceCount uint32
	FixedResourceCount    uint32
	VariableTableOffset   uint32
}

// variableEntry is one 16-byte variable resource table record.
type variableEntry struct {
	ID       uint32
	Offset   uint32
	FileSize uint32
	ResType  uint32
}

// Resource is one entry of the variable resource table. Size is the
// unpacked size; the stored bytes are reachable through File.Data.
type Resource struct {
	ID   uint32
	Type restype.Type
	Size uint32

	offset uint32
	packed uint32
}

// File is one parsed bif.
type File struct {
	// Compressed is true for the BZF variant.
	Compressed bool

	Resources []Resource

	buf []byte
}

// Parse reads a BIFF or BZF file. Resource data slices the input
// buffer (and is decompressed on demand for BZF), so the file stays
// valid only as long as buf does.
func Parse(buf []byte) (*File, error) {
	if len(buf) < headerLen {
		return nil, fmt.Errorf("bif: file of %d bytes is shorter than the header", len(buf))
	}
	var hdr header
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	fileType := string(hdr.FileType[:])
	if fileType != FileTypeBIF && fileType != FileTypeBZF {
		return nil, fmt.Errorf("bif: unexpected file type %q, want %q or %q", fileType, FileTypeBIF, FileTypeBZF)
	}
	if got := string(hdr.FileVersion[:]); got != Version {
		return nil, fmt.Errorf("bif: unsupported version %q, only %q is supported", got, Version)
	}
	if uint64(hdr.VariableTableOffset)+uint64(hdr.VariableResourceCount)*variableEntryLen > uint64(len(buf)) {
		return nil, fmt.Errorf("bif: variable table of %d entries past end of file", hdr.VariableResourceCount)
	}

	entries := make([]variableEntry, hdr.VariableResourceCount)
	if err := binary.Read(bytes.NewReader(buf[hdr.VariableTableOffset:]), binary.LittleEndian, entries); err != nil {
		return nil, err
	}

	f := &File{Compressed: fileType == FileTypeBZF, buf: buf}
	for i, e := range entries {
		if uint64(e.Offset) > uint64(len(buf)) {
			return nil, fmt.Errorf("bif: resource %d: offset %d past end of file", i, e.Offset)
		}
		f.Resources = append(f.Resources, Resource{
			ID:     e.ID,
			Type:   restype.Type(e.ResType),
			Size:   e.FileSize,
			offset: e.Offset,
		})
	}
	f.computePackedSizes()

	if !f.Compressed {
		for i := range f.Resources {
			r := &f.Resources[i]
			if uint64(r.offset)+uint64(r.Size) > uint64(len(buf)) {
				return nil, fmt.Errorf("bif: resource %d: data at %d+%d past end of file", i, r.offset, r.Size)
			}
		}
	}
	return f, nil
}

// computePackedSizes derives each resource's stored length from the
// gap to the next stored offset. The plain variant stores resources
// back to back too, but there Size is authoritative; the packed length
// only matters for the compressed variant, whose table knows nothing
// about compressed lengths.
func (f *File) computePackedSizes() {
	order := make([]int, len(f.Resources))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return f.Resources[order[a]].offset < f.Resources[order[b]].offset
	})
	for n, i := range order {
		end := uint32(len(f.buf))
		if n+1 < len(order) {
			end = f.Resources[order[n+1]].offset
		}
		f.Resources[i].packed = end - f.Resources[i].offset
	}
}

// Data returns the unpacked bytes of resource i.
func (f *File) Data(i int) ([]byte, error) {
	if i < 0 || i >= len(f.Resources) {
		return nil, fmt.Errorf("bif: resource index %d out of range, have %d", i, len(f.Resources))
	}
	r := &f.Resources[i]
	stored := f.buf[r.offset : r.offset+r.packed]
	if !f.Compressed {
		return stored[:r.Size], nil
	}
	return decompress(stored, r.Size)
}

// Lookup finds a resource by the resource index a key file names (the
// low bits of the resource id).
func (f *File) Lookup(resIndex uint32) *Resource {
	for i := range f.Resources {
		if f.Resources[i].ID&resIndexMask == resIndex {
			return &f.Resources[i]
		}
	}
	return nil
}

// Index returns the position of r in the resource table, for Data.
func (f *File) Index(r *Resource) int {
	for i := range f.Resources {
		if &f.Resources[i] == r {
			return i
		}
	}
	return -1
}

// decompress unpacks one BZF resource: five bytes of LZMA properties
// followed by the raw stream. The classic .lzma header the decoder
// expects carries an eight-byte unpacked size between the two, which
// the format drops because the resource table already has it; it is
// synthesized back here.
func decompress(stored []byte, size uint32) ([]byte, error) {
	if len(stored) < lzmaPropsLen {
		return nil, fmt.Errorf("bif: compressed resource of %d bytes is shorter than the LZMA properties", len(stored))
	}
	hdr := make([]byte, 0, lzmaPropsLen+8+len(stored[lzmaPropsLen:]))
	hdr = append(hdr, stored[:lzmaPropsLen]...)
	var sizeField [8]byte
	binary.LittleEndian.PutUint64(sizeField[:], uint64(size))
	hdr = append(hdr, sizeField[:]...)
	hdr = append(hdr, stored[lzmaPropsLen:]...)

	r, err := lzma.NewReader(bytes.NewReader(hdr))
	if err != nil {
		return nil, fmt.Errorf("bif: bad LZMA stream: %w", err)
	}
	out := make([]byte, size)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("bif: short LZMA stream: %w", err)
	}
	return out, nil
}
