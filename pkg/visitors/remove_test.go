// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"testing"
)

func TestRemove(t *testing.T) {
	d := areaDocument(t)

	remove := &Remove{Path: "Cost"}
	if err := remove.Run(d); err != nil {
		t.Fatal(err)
	}
	if d.Root.Has("Cost") {
		t.Fatal("Cost should be gone")
	}
}

func TestRemoveNested(t *testing.T) {
	d := areaDocument(t)

	remove := &Remove{Path: "RoomList[0].Lit"}
	if err := remove.Run(d); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Resolve("RoomList[0].Lit"); err == nil {
		t.Fatal("Lit should be gone")
	}
	// The sibling element keeps its field.
	if _, err := d.Resolve("RoomList[1].Lit"); err != nil {
		t.Fatal(err)
	}
}

func TestRemoveMissing(t *testing.T) {
	d := areaDocument(t)

	for _, path := range []string{"NoSuchField", "Geometry.Z", "RoomList[5].Lit", "RoomList[0]"} {
		remove := &Remove{Path: path}
		if err := remove.Run(d); err == nil {
			t.Errorf("remove %q: expected an error", path)
		}
	}
}
