// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package restype maps Aurora resource type identifiers to file
// extensions. Archives and key files identify a resource's format with
// a 16-bit type id; on disk as loose files the same formats go by
// their extension.
package restype

import (
	"fmt"
	"strings"
)

// Type is a 16-bit resource type identifier.
type Type uint16

// Resource types seen in shipped archives.
const (
	BMP Type = 1
	TGA Type = 3
	WAV Type = 4
	PLT Type = 6
	INI Type = 7
	TXT Type = 10
	MDL Type = 2002
	NSS Type = 2009
	NCS Type = 2010
	ARE Type = 2012
	SET Type = 2013
	IFO Type = 2014
	BIC Type = 2015
	WOK Type = 2016
	TDA Type = 2017 // "2da"
	GIT Type = 2023
	UTI Type = 2025
	UTC Type = 2027
	DLG Type = 2029
	ITP Type = 2030
	UTT Type = 2032
	DDS Type = 2033
	UTS Type = 2035
	LTR Type = 2036
	GFF Type = 2037
	FAC Type = 2038
	UTE Type = 2040
	UTD Type = 2042
	UTP Type = 2044
	DFT Type = 2045
	GUI Type = 2047
	UTM Type = 2051
	JRL Type = 2056
	UTW Type = 2058
	SSF Type = 2060
	NDB Type = 2064
	PTM Type = 2065
	PTT Type = 2066
	LYT Type = 3000
	VIS Type = 3001
	RIM Type = 3002
	TPC Type = 3007

	// Invalid marks an unused slot in a key table.
	Invalid Type = 0xFFFF
)

var extensions = map[Type]string{
	BMP: "bmp", TGA: "tga", WAV: "wav", PLT: "plt", INI: "ini",
	TXT: "txt", MDL: "mdl", NSS: "nss", NCS: "ncs", ARE: "are",
	SET: "set", IFO: "ifo", BIC: "bic", WOK: "wok", TDA: "2da",
	GIT: "git", UTI: "uti", UTC: "utc", DLG: "dlg", ITP: "itp",
	UTT: "utt", DDS: "dds", UTS: "uts", LTR: "ltr", GFF: "gff",
	FAC: "fac", UTE: "ute", UTD: "utd", UTP: "utp", DFT: "dft",
	GUI: "gui", UTM: "utm", JRL: "jrl", UTW: "utw", SSF: "ssf",
	NDB: "ndb", PTM: "ptm", PTT: "ptt", LYT: "lyt", VIS: "vis",
	RIM: "rim", TPC: "tpc",
}

// gffTypes are the types whose payload is a GFF document.
var gffTypes = map[Type]bool{
	ARE: true, IFO: true, BIC: true, GIT: true, UTI: true,
	UTC: true, DLG: true, ITP: true, UTT: true, UTS: true,
	GFF: true, FAC: true, UTE: true, UTD: true, UTP: true,
	GUI: true, UTM: true, JRL: true, UTW: true, PTM: true,
	PTT: true,
}

// Extension returns the file extension for t, or "" if t is unknown.
func (t Type) Extension() string {
	return extensions[t]
}

func (t Type) String() string {
	if ext, ok := extensions[t]; ok {
		return ext
	}
	return fmt.Sprintf("ResType(%d)", uint16(t))
}

// IsGFF reports whether resources of type t contain a GFF document.
func (t Type) IsGFF() bool {
	return gffTypes[t]
}

// FromExtension resolves a file extension (with or without the leading
// dot, any case) to its resource type.
func FromExtension(ext string) (Type, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for t, e := range extensions {
		if e == ext {
			return t, true
		}
	}
	return Invalid, false
}
