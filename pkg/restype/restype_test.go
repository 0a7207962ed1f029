// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package restype

import "testing"

func TestExtension(t *testing.T) {
	var tests = []struct {
		typ Type
		ext string
	}{
		{UTI, "uti"},
		{TDA, "2da"},
		{DLG, "dlg"},
		{TPC, "tpc"},
	}
	for _, test := range tests {
		if got := test.typ.Extension(); got != test.ext {
			t.Errorf("%d.Extension() = %q, want %q", uint16(test.typ), got, test.ext)
		}
		if got := test.typ.String(); got != test.ext {
			t.Errorf("%d.String() = %q, want %q", uint16(test.typ), got, test.ext)
		}
	}
	if got := Type(1234).String(); got != "ResType(1234)" {
		t.Errorf("unknown String() = %q", got)
	}
}

func TestFromExtension(t *testing.T) {
	for _, in := range []string{"uti", ".uti", "UTI", ".UtI"} {
		typ, ok := FromExtension(in)
		if !ok || typ != UTI {
			t.Errorf("FromExtension(%q) = %v, %v", in, typ, ok)
		}
	}
	if _, ok := FromExtension("exe"); ok {
		t.Error("FromExtension(exe) resolved")
	}
}

func TestIsGFF(t *testing.T) {
	if !DLG.IsGFF() {
		t.Error("DLG.IsGFF() = false")
	}
	if WAV.IsGFF() {
		t.Error("WAV.IsGFF() = true")
	}
}
