// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package erf reads and writes encapsulated resource files, the V1.0
// archive format behind module (.mod), hak pak (.hak), save (.sav) and
// plain .erf files. An archive is a flat list of resources, each named
// by a resref plus a resource type, with an optional localized
// description.
package erf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/openaurora/gffkit/pkg/language"
	"github.com/openaurora/gffkit/pkg/resref"
	"github.com/openaurora/gffkit/pkg/restype"
)

// Format constants.
const (
	// Version is the only supported version tag.
	Version = "V1.0"

	headerLen       = 160
	keyEntryLen     = 24
	resourceListLen = 8
)

// Known file type tags. Any four-character tag parses; these are the
// ones shipped tooling produces.
const (
	TypeERF = "ERF "
	TypeMOD = "MOD "
	TypeSAV = "SAV "
	TypeHAK = "HAK "
)

// header is the fixed 160-byte prologue.
type header struct {
	FileType                [4]byte
	Version                 [4]byte
	LanguageCount           uint32
	LocalizedStringSize     uint32
	EntryCount              uint32
	OffsetToLocalizedString uint32
	OffsetToKeyList         uint32
	OffsetToResourceList    uint32
	BuildYear               uint32
	BuildDay                uint32
	DescriptionStrRef       uint32
	Reserved                [116]byte
}

// keyEntry is one 24-byte key list record.
type keyEntry struct {
	ResRef  [16]byte
	ResID   uint32
	ResType uint16
	Unused  uint16
}

// resourceEntry is one 8-byte resource list record.
type resourceEntry struct {
	Offset uint32
	Size   uint32
}

// Description is one localized description string. Text holds raw
// codepage bytes for the language.
type Description struct {
	Language language.Language
	Text     string
}

// Entry is one archived resource.
type Entry struct {
	Name resref.ResRef
	Type restype.Type
	Data []byte
}

// Archive is one parsed resource file.
type Archive struct {
	FileType          string
	BuildYear         uint32 // years since 1900
	BuildDay          uint32 // day of year, zero-based
	DescriptionStrRef uint32
	Descriptions      []Description
	Entries           []Entry
}

// New creates an empty archive with the given type tag, stamped with
// the current build date.
func New(fileType string) *Archive {
	now := time.Now()
	return &Archive{
		FileType:          fileType,
		BuildYear:         uint32(now.Year() - 1900),
		BuildDay:          uint32(now.YearDay() - 1),
		DescriptionStrRef: 0xFFFFFFFF,
	}
}

// Add appends a resource.
func (a *Archive) Add(name resref.ResRef, t restype.Type, data []byte) {
	a.Entries = append(a.Entries, Entry{Name: name, Type: t, Data: data})
}

// Lookup finds a resource by name and type, case-insensitively.
func (a *Archive) Lookup(name resref.ResRef, t restype.Type) *Entry {
	for i := range a.Entries {
		e := &a.Entries[i]
		if e.Type == t && e.Name.Equal(name) {
			return e
		}
	}
	return nil
}

// Parse reads a V1.0 archive. Entry data slices the input buffer; the
// archive stays valid only as long as buf does.
func Parse(buf []byte) (*Archive, error) {
	if len(buf) < headerLen {
		return nil, fmt.Errorf("erf: file of %d bytes is shorter than the header", len(buf))
	}
	var hdr header
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if got := string(hdr.Version[:]); got != Version {
		return nil, fmt.Errorf("erf: unsupported version %q, only %q is supported", got, Version)
	}

	a := &Archive{
		FileType:          string(hdr.FileType[:]),
		BuildYear:         hdr.BuildYear,
		BuildDay:          hdr.BuildDay,
		DescriptionStrRef: hdr.DescriptionStrRef,
	}

	// Localized description list: language id, length, then bytes.
	if hdr.LanguageCount > 0 {
		end := uint64(hdr.OffsetToLocalizedString) + uint64(hdr.LocalizedStringSize)
		if end > uint64(len(buf)) {
			return nil, fmt.Errorf("erf: description list at %d+%d past end of file", hdr.OffsetToLocalizedString, hdr.LocalizedStringSize)
		}
		r := bytes.NewReader(buf[hdr.OffsetToLocalizedString:end])
		for i := uint32(0); i < hdr.LanguageCount; i++ {
			var langID, size uint32
			if err := binary.Read(r, binary.LittleEndian, &langID); err != nil {
				return nil, fmt.Errorf("erf: description %d: %w", i, err)
			}
			if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
				return nil, fmt.Errorf("erf: description %d: %w", i, err)
			}
			text := make([]byte, size)
			if _, err := io.ReadFull(r, text); err != nil {
				return nil, fmt.Errorf("erf: description %d: %w", i, err)
			}
			a.Descriptions = append(a.Descriptions, Description{
				Language: language.Language(langID),
				Text:     string(text),
			})
		}
	}

	keyLen := uint64(hdr.EntryCount) * keyEntryLen
	if uint64(hdr.OffsetToKeyList)+keyLen > uint64(len(buf)) {
		return nil, fmt.Errorf("erf: key list of %d entries past end of file", hdr.EntryCount)
	}
	resLen := uint64(hdr.EntryCount) * resourceListLen
	if uint64(hdr.OffsetToResourceList)+resLen > uint64(len(buf)) {
		return nil, fmt.Errorf("erf: resource list of %d entries past end of file", hdr.EntryCount)
	}

	keys := make([]keyEntry, hdr.EntryCount)
	if err := binary.Read(bytes.NewReader(buf[hdr.OffsetToKeyList:]), binary.LittleEndian, keys); err != nil {
		return nil, err
	}
	resources := make([]resourceEntry, hdr.EntryCount)
	if err := binary.Read(bytes.NewReader(buf[hdr.OffsetToResourceList:]), binary.LittleEndian, resources); err != nil {
		return nil, err
	}

	a.Entries = make([]Entry, 0, hdr.EntryCount)
	for i := range keys {
		res := resources[i]
		end := uint64(res.Offset) + uint64(res.Size)
		if end > uint64(len(buf)) {
			return nil, fmt.Errorf("erf: resource %d: data at %d+%d past end of file", i, res.Offset, res.Size)
		}
		a.Entries = append(a.Entries, Entry{
			Name: resref.FromBytes(keys[i].ResRef[:]),
			Type: restype.Type(keys[i].ResType),
			Data: buf[res.Offset:end],
		})
	}
	return a, nil
}

// Serialize writes the archive in the canonical section order: header,
// localized description list, key list, resource list, data.
func (a *Archive) Serialize() ([]byte, error) {
	if len(a.FileType) > 4 {
		return nil, fmt.Errorf("erf: file type tag %q is longer than four bytes", a.FileType)
	}

	locSize := 0
	for i := range a.Descriptions {
		locSize += 8 + len(a.Descriptions[i].Text)
	}

	hdr := header{
		LanguageCount:           uint32(len(a.Descriptions)),
		LocalizedStringSize:     uint32(locSize),
		EntryCount:              uint32(len(a.Entries)),
		OffsetToLocalizedString: headerLen,
		OffsetToKeyList:         headerLen + uint32(locSize),
		BuildYear:               a.BuildYear,
		BuildDay:                a.BuildDay,
		DescriptionStrRef:       a.DescriptionStrRef,
	}
	hdr.OffsetToResourceList = hdr.OffsetToKeyList + uint32(len(a.Entries))*keyEntryLen
	fileType := a.FileType
	for len(fileType) < 4 {
		fileType += " "
	}
	copy(hdr.FileType[:], fileType)
	copy(hdr.Version[:], Version)

	out := &bytes.Buffer{}
	if err := binary.Write(out, binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	for i := range a.Descriptions {
		d := &a.Descriptions[i]
		if err := binary.Write(out, binary.LittleEndian, uint32(d.Language)); err != nil {
			return nil, err
		}
		if err := binary.Write(out, binary.LittleEndian, uint32(len(d.Text))); err != nil {
			return nil, err
		}
		out.WriteString(d.Text)
	}

	dataOff := hdr.OffsetToResourceList + uint32(len(a.Entries))*resourceListLen
	for i := range a.Entries {
		e := &a.Entries[i]
		if !e.Name.Valid() {
			return nil, fmt.Errorf("erf: entry %d: bad resref %q", i, e.Name)
		}
		key := keyEntry{ResRef: e.Name.Bytes(), ResID: uint32(i), ResType: uint16(e.Type)}
		if err := binary.Write(out, binary.LittleEndian, &key); err != nil {
			return nil, err
		}
	}
	for i := range a.Entries {
		rec := resourceEntry{Offset: dataOff, Size: uint32(len(a.Entries[i].Data))}
		if err := binary.Write(out, binary.LittleEndian, &rec); err != nil {
			return nil, err
		}
		dataOff += rec.Size
	}
	for i := range a.Entries {
		out.Write(a.Entries[i].Data)
	}
	return out.Bytes(), nil
}
