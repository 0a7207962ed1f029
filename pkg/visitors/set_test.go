// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"testing"

	"github.com/openaurora/gffkit/pkg/gff"
)

func TestSetReplacesField(t *testing.T) {
	d := areaDocument(t)

	f, err := parseFieldValue("dword", "9000")
	if err != nil {
		t.Fatal(err)
	}
	set := &Set{Path: "Cost", Field: f}
	if err := set.Run(d); err != nil {
		t.Fatal(err)
	}

	got, err := d.Root.Field("Cost").AsDword()
	if err != nil {
		t.Fatal(err)
	}
	if got != 9000 {
		t.Fatalf("Cost is %d, want 9000", got)
	}
}

func TestSetNestedField(t *testing.T) {
	d := areaDocument(t)

	f, err := parseFieldValue("cexostring", "Cellar")
	if err != nil {
		t.Fatal(err)
	}
	set := &Set{Path: "RoomList[1].RoomName", Field: f}
	if err := set.Run(d); err != nil {
		t.Fatal(err)
	}

	field, err := d.Resolve("RoomList[1].RoomName")
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := field.AsString(); s != "Cellar" {
		t.Fatalf("RoomName is %q, want \"Cellar\"", s)
	}
}

func TestSetAddsNewField(t *testing.T) {
	d := areaDocument(t)

	f, err := parseFieldValue("byte", "7")
	if err != nil {
		t.Fatal(err)
	}
	set := &Set{Path: "Geometry.Height", Field: f}
	if err := set.Run(d); err != nil {
		t.Fatal(err)
	}

	field, err := d.Resolve("Geometry.Height")
	if err != nil {
		t.Fatal(err)
	}
	if b, _ := field.AsByte(); b != 7 {
		t.Fatalf("Height is %d, want 7", b)
	}
}

func TestSetBadPath(t *testing.T) {
	d := areaDocument(t)

	f, err := parseFieldValue("int", "1")
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{"RoomList[0]", "NoSuchStruct.Field", ""} {
		set := &Set{Path: path, Field: f}
		if err := set.Run(d); err == nil {
			t.Errorf("set %q: expected an error", path)
		}
	}
}

func TestParseFieldValue(t *testing.T) {
	tests := []struct {
		typeName string
		value    string
		wantType gff.FieldType
		wantErr  bool
	}{
		{"byte", "255", gff.ByteField, false},
		{"byte", "256", 0, true},
		{"char", "-12", gff.CharField, false},
		{"word", "0xffff", gff.WordField, false},
		{"short", "-32768", gff.ShortField, false},
		{"dword", "4000000000", gff.DwordField, false},
		{"int", "-5", gff.IntField, false},
		{"dword64", "18446744073709551615", gff.Dword64Field, false},
		{"int64", "-9223372036854775808", gff.Int64Field, false},
		{"float", "1.5", gff.FloatField, false},
		{"double", "NaN", gff.DoubleField, false},
		{"cexostring", "hello", gff.StringField, false},
		{"resref", "nw_chicken", gff.ResRefField, false},
		{"resref", "seventeen_letters", 0, true},
		{"cexolocstring", "1234", gff.LocStringField, false},
		{"cexolocstring", "Hello there", gff.LocStringField, false},
		{"void", "deadbeef", gff.VoidField, false},
		{"void", "xyz", 0, true},
		{"struct", "{}", 0, true},
		{"list", "[]", 0, true},
		{"guid", "x", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.typeName+"/"+tt.value, func(t *testing.T) {
			f, err := parseFieldValue(tt.typeName, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if f.Type != tt.wantType {
				t.Fatalf("got type %s, want %s", f.Type, tt.wantType)
			}
		})
	}
}

func TestParseFieldValueLocString(t *testing.T) {
	f, err := parseFieldValue("cexolocstring", "1234")
	if err != nil {
		t.Fatal(err)
	}
	ls, err := f.AsLocString()
	if err != nil {
		t.Fatal(err)
	}
	if ls.StrRef != 1234 || len(ls.Substrings) != 0 {
		t.Fatalf("numeric value should become a bare strref, got %+v", ls)
	}

	f, err = parseFieldValue("cexolocstring", "Hello")
	if err != nil {
		t.Fatal(err)
	}
	ls, _ = f.AsLocString()
	if ls.StrRef != gff.NoStrRef || len(ls.Substrings) != 1 {
		t.Fatalf("text value should become one substring, got %+v", ls)
	}
}
