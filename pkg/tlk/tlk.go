// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tlk reads and writes talk tables, the V3.0 string table
// format every localized string reference (StrRef) resolves against.
// A table holds one language; the text is stored in that language's
// codepage and decoded on lookup.
package tlk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/xaionaro-go/bytesextra"

	"github.com/openaurora/gffkit/pkg/gff"
	"github.com/openaurora/gffkit/pkg/language"
	"github.com/openaurora/gffkit/pkg/resref"
)

// Format constants.
const (
	// FileType is the header type tag.
	FileType = "TLK "

	// Version is the only supported version tag.
	Version = "V3.0"

	headerLen = 20
	entryLen  = 40
)

// Entry flag bits.
const (
	// FlagTextPresent marks an entry whose text is meaningful.
	FlagTextPresent uint32 = 1 << 0

	// FlagSoundPresent marks an entry with an attached voice-over.
	FlagSoundPresent uint32 = 1 << 1

	// FlagSoundLengthPresent marks an entry whose SoundLength is
	// meaningful.
	FlagSoundLengthPresent uint32 = 1 << 2
)

// header is the fixed 20-byte prologue.
type header struct {
	FileType            [4]byte
	FileVersion         [4]byte
	LanguageID          uint32
	StringCount         uint32
	StringEntriesOffset uint32
}

// entryRecord is the 40-byte on-disk form of one string slot.
type entryRecord struct {
	Flags          uint32
	SoundResRef    [16]byte
	VolumeVariance uint32
	PitchVariance  uint32
	OffsetToString uint32
	StringSize     uint32
	SoundLength    float32
}

// Entry is one string slot. Text holds raw codepage bytes; the flag
// bits say which parts of the slot are meaningful.
type Entry struct {
	Flags          uint32
	Text           string
	Sound          resref.ResRef
	VolumeVariance uint32
	PitchVariance  uint32
	SoundLength    float32
}

// HasText reports whether the entry's text is meaningful.
func (e *Entry) HasText() bool {
	return e.Flags&FlagTextPresent != 0
}

// Table is one parsed talk table.
type Table struct {
	Language language.Language
	Entries  []Entry
}

// New creates an empty table for the given language.
func New(l language.Language) *Table {
	return &Table{Language: l}
}

// Add appends a text entry and returns its StrRef.
func (t *Table) Add(text string) int32 {
	t.Entries = append(t.Entries, Entry{Flags: FlagTextPresent, Text: text})
	return int32(len(t.Entries) - 1)
}

// Parse reads a V3.0 talk table.
func Parse(buf []byte) (*Table, error) {
	if len(buf) < headerLen {
		return nil, fmt.Errorf("tlk: file of %d bytes is shorter than the header", len(buf))
	}
	var hdr header
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if got := string(hdr.FileType[:]); got != FileType {
		return nil, fmt.Errorf("tlk: unexpected file type %q, want %q", got, FileType)
	}
	if got := string(hdr.FileVersion[:]); got != Version {
		return nil, fmt.Errorf("tlk: unsupported version %q, only %q is supported", got, Version)
	}
	tableLen := uint64(headerLen) + uint64(hdr.StringCount)*entryLen
	if tableLen > uint64(len(buf)) {
		return nil, fmt.Errorf("tlk: %d entries do not fit a file of %d bytes", hdr.StringCount, len(buf))
	}
	if uint64(hdr.StringEntriesOffset) > uint64(len(buf)) {
		return nil, fmt.Errorf("tlk: string data offset %d past end of file", hdr.StringEntriesOffset)
	}
	text := buf[hdr.StringEntriesOffset:]

	t := &Table{
		Language: language.Language(hdr.LanguageID),
		Entries:  make([]Entry, 0, hdr.StringCount),
	}
	r := bytes.NewReader(buf[headerLen:tableLen])
	for i := uint32(0); i < hdr.StringCount; i++ {
		var rec entryRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, err
		}
		end := uint64(rec.OffsetToString) + uint64(rec.StringSize)
		if end > uint64(len(text)) {
			return nil, fmt.Errorf("tlk: entry %d: string at %d+%d past end of string data", i, rec.OffsetToString, rec.StringSize)
		}
		t.Entries = append(t.Entries, Entry{
			Flags:          rec.Flags,
			Text:           string(text[rec.OffsetToString:end]),
			Sound:          resref.FromBytes(rec.SoundResRef[:]),
			VolumeVariance: rec.VolumeVariance,
			PitchVariance:  rec.PitchVariance,
			SoundLength:    rec.SoundLength,
		})
	}
	return t, nil
}

// Serialize writes the table back out. Entries are written in order;
// string payloads follow the entry table, with each entry's offset
// patched in once its text has been placed.
func (t *Table) Serialize() ([]byte, error) {
	size := headerLen + len(t.Entries)*entryLen
	for i := range t.Entries {
		size += len(t.Entries[i].Text)
	}
	buf := make([]byte, size)
	w := bytesextra.NewReadWriteSeeker(buf)

	hdr := header{
		LanguageID:          uint32(t.Language),
		StringCount:         uint32(len(t.Entries)),
		StringEntriesOffset: uint32(headerLen + len(t.Entries)*entryLen),
	}
	copy(hdr.FileType[:], FileType)
	copy(hdr.FileVersion[:], Version)
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}

	// Entry table first, with offsets still zero.
	for i := range t.Entries {
		e := &t.Entries[i]
		if !e.Sound.Valid() {
			return nil, fmt.Errorf("tlk: entry %d: bad sound resref %q", i, e.Sound)
		}
		rec := entryRecord{
			Flags:          e.Flags,
			SoundResRef:    e.Sound.Bytes(),
			VolumeVariance: e.VolumeVariance,
			PitchVariance:  e.PitchVariance,
			StringSize:     uint32(len(e.Text)),
			SoundLength:    e.SoundLength,
		}
		if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
			return nil, err
		}
	}

	// String payloads, then seek back and patch each offset.
	textOff := uint32(0)
	for i := range t.Entries {
		e := &t.Entries[i]
		// bytesextra returns io.EOF even for a zero-byte write at the
		// end of the buffer, so skip the no-op write for empty text.
		if len(e.Text) > 0 {
			if _, err := w.Write([]byte(e.Text)); err != nil {
				return nil, err
			}
		}
		if _, err := w.Seek(int64(headerLen+i*entryLen+28), io.SeekStart); err != nil {
			return nil, err
		}
		if err := binary.Write(w, binary.LittleEndian, textOff); err != nil {
			return nil, err
		}
		textOff += uint32(len(e.Text))
		if _, err := w.Seek(int64(hdr.StringEntriesOffset)+int64(textOff), io.SeekStart); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// String returns the decoded text for a StrRef. The gff.NoStrRef
// sentinel and out-of-range references resolve to an error.
func (t *Table) String(ref int32) (string, error) {
	if ref < 0 || int(ref) >= len(t.Entries) {
		return "", fmt.Errorf("tlk: strref %d out of range, table has %d entries", ref, len(t.Entries))
	}
	e := &t.Entries[ref]
	if !e.HasText() {
		return "", nil
	}
	return t.Language.Decode([]byte(e.Text))
}

// Resolve returns the display text for a localized string: embedded
// text for the table's language wins over the talk table reference,
// which wins over embedded text of any other language.
func (t *Table) Resolve(ls *gff.LocString, g language.Gender) string {
	if raw, ok := ls.Text(t.Language, g); ok {
		if text, err := t.Language.Decode([]byte(raw)); err == nil {
			return text
		}
	}
	if ls.StrRef != gff.NoStrRef {
		if text, err := t.String(ls.StrRef); err == nil && text != "" {
			return text
		}
	}
	return ls.String()
}
