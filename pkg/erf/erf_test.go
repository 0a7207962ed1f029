// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package erf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaurora/gffkit/pkg/gff"
	"github.com/openaurora/gffkit/pkg/language"
	"github.com/openaurora/gffkit/pkg/resref"
	"github.com/openaurora/gffkit/pkg/restype"
)

func sampleArchive(t *testing.T) *Archive {
	t.Helper()
	a := New(TypeMOD)
	a.BuildYear = 103 // 2003
	a.BuildDay = 41
	a.Descriptions = append(a.Descriptions,
		Description{Language: language.English, Text: "A test module."},
		Description{Language: language.German, Text: "Ein Testmodul."},
	)
	a.Add(resref.MustParse("module"), restype.IFO, []byte{1, 2, 3})
	a.Add(resref.MustParse("area001"), restype.ARE, []byte("area data"))
	a.Add(resref.MustParse("empty"), restype.TXT, nil)
	return a
}

func TestRoundTrip(t *testing.T) {
	a := sampleArchive(t)
	raw, err := a.Serialize()
	require.NoError(t, err)

	back, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, TypeMOD, back.FileType)
	assert.Equal(t, a.BuildYear, back.BuildYear)
	assert.Equal(t, a.BuildDay, back.BuildDay)
	assert.Equal(t, a.Descriptions, back.Descriptions)
	require.Len(t, back.Entries, 3)
	for i := range a.Entries {
		assert.Equal(t, a.Entries[i].Name, back.Entries[i].Name)
		assert.Equal(t, a.Entries[i].Type, back.Entries[i].Type)
		assert.Equal(t, []byte(a.Entries[i].Data), []byte(back.Entries[i].Data))
	}
}

func TestLookup(t *testing.T) {
	a := sampleArchive(t)
	e := a.Lookup(resref.MustParse("AREA001"), restype.ARE)
	require.NotNil(t, e, "lookup should be case-insensitive")
	assert.Equal(t, []byte("area data"), e.Data)

	assert.Nil(t, a.Lookup(resref.MustParse("area001"), restype.GIT))
	assert.Nil(t, a.Lookup(resref.MustParse("nosuch"), restype.ARE))
}

func TestArchivedGFFDocument(t *testing.T) {
	// The archive is the transport; the codec consumes its blobs.
	doc := gff.New("ARE ")
	require.NoError(t, doc.Root.Add(gff.NewString("Tag", "docks")))
	blob, err := doc.Serialize()
	require.NoError(t, err)

	a := New(TypeERF)
	a.Add(resref.MustParse("m01aa"), restype.ARE, blob)
	raw, err := a.Serialize()
	require.NoError(t, err)

	back, err := Parse(raw)
	require.NoError(t, err)
	e := back.Lookup(resref.MustParse("m01aa"), restype.ARE)
	require.NotNil(t, e)
	area, err := gff.Parse(e.Data, "ARE")
	require.NoError(t, err)
	tag, err := area.Root.Field("Tag").AsString()
	require.NoError(t, err)
	assert.Equal(t, "docks", tag)
}

func TestParseErrors(t *testing.T) {
	var tests = []struct {
		name   string
		mutate func(raw []byte) []byte
	}{
		{"truncated", func(raw []byte) []byte { return raw[:100] }},
		{"bad version", func(raw []byte) []byte { copy(raw[4:], "V2.0"); return raw }},
		{"entry count past end", func(raw []byte) []byte { raw[16] = 0xFF; return raw }},
		{"data past end", func(raw []byte) []byte { return raw[:len(raw)-4] }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			raw, err := sampleArchive(t).Serialize()
			require.NoError(t, err)
			_, err = Parse(test.mutate(raw))
			assert.Error(t, err)
		})
	}
}

func TestSerializeBadResRef(t *testing.T) {
	a := New(TypeERF)
	a.Entries = append(a.Entries, Entry{Name: "seventeencharacter", Type: restype.TXT})
	_, err := a.Serialize()
	assert.Error(t, err)
}
