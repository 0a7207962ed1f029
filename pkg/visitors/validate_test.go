// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"strings"
	"testing"

	"github.com/openaurora/gffkit/pkg/gff"
	"github.com/openaurora/gffkit/pkg/language"
)

func TestValidateClean(t *testing.T) {
	d := areaDocument(t)

	v := &Validate{}
	if err := v.Run(d); err != nil {
		t.Fatal(err)
	}
}

func TestValidateFindings(t *testing.T) {
	tests := []struct {
		name string
		doc  func(t *testing.T) *gff.Document
		want string
	}{
		{
			name: "wrong root sentinel",
			doc: func(t *testing.T) *gff.Document {
				d := areaDocument(t)
				d.Root.Type = 7
				return d
			},
			want: "root struct type",
		},
		{
			name: "file type too long",
			doc: func(t *testing.T) *gff.Document {
				d := areaDocument(t)
				d.FileType = "TOOLONG"
				return d
			},
			want: "longer than 4",
		},
		{
			name: "oversized string",
			doc: func(t *testing.T) *gff.Document {
				d := areaDocument(t)
				mustAdd(t, d.Root, gff.NewString("Book", strings.Repeat("a", gff.StringSoftLimit+1)))
				return d
			},
			want: "limit is 1024",
		},
		{
			name: "unknown substring language",
			doc: func(t *testing.T) *gff.Document {
				d := areaDocument(t)
				ls := &gff.LocString{StrRef: gff.NoStrRef}
				ls.SetText(99, 0, "?")
				mustAdd(t, d.Root, gff.NewLocString("Odd", ls))
				return d
			},
			want: "unknown language",
		},
		{
			name: "oversized substring",
			doc: func(t *testing.T) *gff.Document {
				d := areaDocument(t)
				ls := &gff.LocString{StrRef: gff.NoStrRef}
				ls.SetText(language.English, language.Masculine, strings.Repeat("a", gff.StringSoftLimit+1))
				mustAdd(t, d.Root, gff.NewLocString("Book", ls))
				return d
			},
			want: "substring of 1025 bytes",
		},
		{
			name: "nil list element",
			doc: func(t *testing.T) *gff.Document {
				d := areaDocument(t)
				mustAdd(t, d.Root, gff.NewListField("Holes", nil, gff.NewStruct(0)))
				return d
			},
			want: "nil element",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Validate{}
			err := v.Run(tt.doc(t))
			if err == nil {
				t.Fatal("expected findings")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("findings %q do not mention %q", err.Error(), tt.want)
			}
		})
	}
}
