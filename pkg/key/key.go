// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package key reads key files, the V1 index that maps resource names
// to positions inside the game's bif data files. A key file never
// carries resource data itself; each key is a (bif index, resource
// index) pair packed into a 32-bit resource id.
//
// Shipped key files are read-only game data, so there is no writer;
// authored content goes into erf archives instead.
package key

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/openaurora/gffkit/pkg/resref"
	"github.com/openaurora/gffkit/pkg/restype"
)

// Format constants.
const (
	// FileType is the header type tag.
	FileType = "KEY "

	// Version is the only supported version tag.
	Version = "V1  "

	headerLen    = 64
	fileEntryLen = 12
	keyEntryLen  = 22
	resIndexBits = 20
	resIndexMask = 1<<resIndexBits - 1
)

// header is the fixed 64-byte prologue.
type header struct {
	FileType          [4]byte
	FileVersion       [4]byte
	BIFCount          uint32
	KeyCount          uint32
	OffsetToFileTable uint32
	OffsetToKeyTable  uint32
	BuildYear         uint32
	BuildDay          uint32
	Reserved          [32]byte
}

// fileEntry is one 12-byte file table record.
type fileEntry struct {
	FileSize       uint32
	FilenameOffset uint32
	FilenameSize   uint16
	Drives         uint16
}

// keyEntry is one 22-byte key table record.
type keyEntry struct {
	ResRef  [16]byte
	ResType uint16
	ResID   uint32
}

// BIF is one referenced data file.
type BIF struct {
	Filename string
	FileSize uint32
	Drives   uint16
}

// Key locates one resource: which bif holds it and at which index.
type Key struct {
	Name     resref.ResRef
	Type     restype.Type
	BIFIndex uint32
	ResIndex uint32
}

// File is one parsed key file.
type File struct {
	BuildYear uint32
	BuildDay  uint32
	BIFs      []BIF
	Keys      []Key
}

// Parse reads a V1 key file.
func Parse(buf []byte) (*File, error) {
	if len(buf) < headerLen {
		return nil, fmt.Errorf("key: file of %d bytes is shorter than the header", len(buf))
	}
	var hdr header
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if got := string(hdr.FileType[:]); got != FileType {
		return nil, fmt.Errorf("key: unexpected file type %q, want %q", got, FileType)
	}
	if got := string(hdr.FileVersion[:]); got != Version {
		return nil, fmt.Errorf("key: unsupported version %q, only %q is supported", got, Version)
	}

	if uint64(hdr.OffsetToFileTable)+uint64(hdr.BIFCount)*fileEntryLen > uint64(len(buf)) {
		return nil, fmt.Errorf("key: file table of %d entries past end of file", hdr.BIFCount)
	}
	files := make([]fileEntry, hdr.BIFCount)
	if err := binary.Read(bytes.NewReader(buf[hdr.OffsetToFileTable:]), binary.LittleEndian, files); err != nil {
		return nil, err
	}

	f := &File{BuildYear: hdr.BuildYear, BuildDay: hdr.BuildDay}
	for i, fe := range files {
		end := uint64(fe.FilenameOffset) + uint64(fe.FilenameSize)
		if end > uint64(len(buf)) {
			return nil, fmt.Errorf("key: bif %d: filename at %d+%d past end of file", i, fe.FilenameOffset, fe.FilenameSize)
		}
		name := buf[fe.FilenameOffset:end]
		// Some tools write the name NUL-terminated inside the slot.
		if j := bytes.IndexByte(name, 0); j >= 0 {
			name = name[:j]
		}
		f.BIFs = append(f.BIFs, BIF{
			Filename: string(name),
			FileSize: fe.FileSize,
			Drives:   fe.Drives,
		})
	}

	if uint64(hdr.OffsetToKeyTable)+uint64(hdr.KeyCount)*keyEntryLen > uint64(len(buf)) {
		return nil, fmt.Errorf("key: key table of %d entries past end of file", hdr.KeyCount)
	}
	keys := make([]keyEntry, hdr.KeyCount)
	if err := binary.Read(bytes.NewReader(buf[hdr.OffsetToKeyTable:]), binary.LittleEndian, keys); err != nil {
		return nil, err
	}
	for i, ke := range keys {
		bifIndex := ke.ResID >> resIndexBits
		if bifIndex >= hdr.BIFCount {
			return nil, fmt.Errorf("key: key %d: bif index %d out of range, have %d", i, bifIndex, hdr.BIFCount)
		}
		f.Keys = append(f.Keys, Key{
			Name:     resref.FromBytes(ke.ResRef[:]),
			Type:     restype.Type(ke.ResType),
			BIFIndex: bifIndex,
			ResIndex: ke.ResID & resIndexMask,
		})
	}
	return f, nil
}

// Lookup finds the key for a resource name and type.
func (f *File) Lookup(name resref.ResRef, t restype.Type) *Key {
	for i := range f.Keys {
		k := &f.Keys[i]
		if k.Type == t && k.Name.Equal(name) {
			return k
		}
	}
	return nil
}
