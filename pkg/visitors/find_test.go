// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"testing"

	"github.com/openaurora/gffkit/pkg/gff"
)

func TestFindByLabel(t *testing.T) {
	d := areaDocument(t)

	tests := []struct {
		expr  string
		paths []string
	}{
		{"Tag", []string{"Tag"}},
		{"RoomName", []string{"RoomList[0].RoomName", "RoomList[1].RoomName"}},
		{"X|Y", []string{"Geometry.X", "Geometry.Y"}},
		{"Room.*", []string{"RoomList", "RoomList[0].RoomName", "RoomList[1].RoomName"}},
		{"NoSuchLabel", nil},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			pred, err := FindLabelPredicate(tt.expr)
			if err != nil {
				t.Fatal(err)
			}
			find := &Find{Predicate: pred}
			if err := find.Run(d); err != nil {
				t.Fatal(err)
			}
			if len(find.Matches) != len(tt.paths) {
				t.Fatalf("got %d matches, want %d", len(find.Matches), len(tt.paths))
			}
			for i, want := range tt.paths {
				if find.Matches[i].Path != want {
					t.Errorf("match %d has path %q, want %q", i, find.Matches[i].Path, want)
				}
			}
		})
	}
}

func TestFindByType(t *testing.T) {
	d := areaDocument(t)

	find := &Find{Predicate: FindTypePredicate(gff.FloatField)}
	if err := find.Run(d); err != nil {
		t.Fatal(err)
	}
	if len(find.Matches) != 2 {
		t.Fatalf("got %d float fields, want 2", len(find.Matches))
	}
}

func TestFindBadRegex(t *testing.T) {
	if _, err := FindLabelPredicate("("); err == nil {
		t.Fatal("expected an error for an unbalanced regex")
	}
}
