// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bif

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz/lzma"

	"github.com/openaurora/gffkit/pkg/restype"
)

// buildBIF assembles a bif with the variable table right after the
// header and data behind it.
func buildBIF(t *testing.T, fileType string, blobs map[restype.Type][]byte, compress bool) []byte {
	t.Helper()
	var stored [][]byte
	var entries []variableEntry
	id := uint32(0)
	for resType, blob := range blobs {
		data := blob
		if compress {
			data = compressLZMA(t, blob)
		}
		entries = append(entries, variableEntry{
			ID:       id,
			FileSize: uint32(len(blob)),
			ResType:  uint32(resType),
		})
		stored = append(stored, data)
		id++
	}

	dataOff := headerLen + uint32(len(entries))*variableEntryLen
	for i := range entries {
		entries[i].Offset = dataOff
		dataOff += uint32(len(stored[i]))
	}

	var hdr header
	copy(hdr.FileType[:], fileType)
	copy(hdr.FileVersion[:], Version)
	hdr.VariableResourceCount = uint32(len(entries))
	hdr.VariableTableOffset = headerLen

	out := &bytes.Buffer{}
	require.NoError(t, binary.Write(out, binary.LittleEndian, &hdr))
	require.NoError(t, binary.Write(out, binary.LittleEndian, entries))
	for _, data := range stored {
		out.Write(data)
	}
	return out.Bytes()
}

// compressLZMA packs blob the way BZF stores it: the classic .lzma
// header minus its eight size bytes.
func compressLZMA(t *testing.T, blob []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	cfg := lzma.WriterConfig{Size: int64(len(blob))}
	w, err := cfg.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write(blob)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	classic := buf.Bytes()
	require.Greater(t, len(classic), 13)
	return append(append([]byte(nil), classic[:5]...), classic[13:]...)
}

func TestParsePlain(t *testing.T) {
	raw := buildBIF(t, FileTypeBIF, map[restype.Type][]byte{
		restype.TDA: []byte("2DA V2.0\n"),
		restype.TXT: []byte("hello"),
	}, false)

	f, err := Parse(raw)
	require.NoError(t, err)
	assert.False(t, f.Compressed)
	require.Len(t, f.Resources, 2)

	for i, r := range f.Resources {
		data, err := f.Data(i)
		require.NoError(t, err)
		assert.Equal(t, r.Size, uint32(len(data)))
	}
}

func TestParseBZF(t *testing.T) {
	blob := bytes.Repeat([]byte("the quick brown zombie "), 100)
	raw := buildBIF(t, FileTypeBZF, map[restype.Type][]byte{
		restype.UTC: blob,
	}, true)

	f, err := Parse(raw)
	require.NoError(t, err)
	assert.True(t, f.Compressed)
	require.Len(t, f.Resources, 1)

	data, err := f.Data(0)
	require.NoError(t, err)
	assert.Equal(t, blob, data)
}

func TestLookup(t *testing.T) {
	raw := buildBIF(t, FileTypeBIF, map[restype.Type][]byte{
		restype.TXT: []byte("hello"),
	}, false)
	f, err := Parse(raw)
	require.NoError(t, err)

	r := f.Lookup(0)
	require.NotNil(t, r)
	assert.Equal(t, restype.TXT, r.Type)
	data, err := f.Data(f.Index(r))
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	assert.Nil(t, f.Lookup(42))
}

func TestParseErrors(t *testing.T) {
	good := buildBIF(t, FileTypeBIF, map[restype.Type][]byte{restype.TXT: []byte("x")}, false)
	var tests = []struct {
		name   string
		mutate func(raw []byte) []byte
	}{
		{"truncated header", func(raw []byte) []byte { return raw[:10] }},
		{"bad type", func(raw []byte) []byte { copy(raw, "GFF "); return raw }},
		{"bad version", func(raw []byte) []byte { copy(raw[4:], "V2  "); return raw }},
		{"table past end", func(raw []byte) []byte { raw[8] = 0xFF; return raw }},
		{"data past end", func(raw []byte) []byte { return raw[:len(raw)-1] }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			raw := append([]byte(nil), good...)
			_, err := Parse(test.mutate(raw))
			assert.Error(t, err)
		})
	}
}

func TestDataErrors(t *testing.T) {
	f, err := Parse(buildBIF(t, FileTypeBIF, map[restype.Type][]byte{restype.TXT: []byte("x")}, false))
	require.NoError(t, err)
	_, err = f.Data(-1)
	assert.Error(t, err)
	_, err = f.Data(5)
	assert.Error(t, err)

	// A BZF resource too short to carry LZMA properties.
	short := buildBIF(t, FileTypeBIF, map[restype.Type][]byte{restype.TXT: []byte("xy")}, false)
	copy(short, FileTypeBZF)
	f, err = Parse(short)
	require.NoError(t, err)
	_, err = f.Data(0)
	assert.Error(t, err)
}
