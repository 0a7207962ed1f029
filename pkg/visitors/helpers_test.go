// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"testing"

	"github.com/openaurora/gffkit/pkg/gff"
	"github.com/openaurora/gffkit/pkg/language"
	"github.com/openaurora/gffkit/pkg/resref"
)

func mustAdd(t *testing.T, s *gff.Struct, f *gff.Field) {
	t.Helper()
	if err := s.Add(f); err != nil {
		t.Fatal(err)
	}
}

// areaDocument builds a small area-like document: 4 structs (root,
// geometry, two list elements) and 13 fields.
func areaDocument(t *testing.T) *gff.Document {
	t.Helper()
	d := gff.New("ARE ")

	mustAdd(t, d.Root, gff.NewString("Tag", "ShopEntrance"))
	name := &gff.LocString{StrRef: 1234}
	name.SetText(language.English, language.Masculine, "Shop")
	mustAdd(t, d.Root, gff.NewLocString("Name", name))
	mustAdd(t, d.Root, gff.NewResRef("Template", resref.MustParse("shop_entrance")))
	mustAdd(t, d.Root, gff.NewDword("Cost", 250))
	mustAdd(t, d.Root, gff.NewVoid("TileData", []byte{0xde, 0xad, 0xbe, 0xef}))

	geometry := gff.NewStruct(3)
	mustAdd(t, geometry, gff.NewFloat("X", 1.5))
	mustAdd(t, geometry, gff.NewFloat("Y", -2.5))
	mustAdd(t, d.Root, gff.NewStructField("Geometry", geometry))

	rooms := make([]*gff.Struct, 2)
	for i, name := range []string{"Foyer", "Vault"} {
		rooms[i] = gff.NewStruct(uint32(i))
		mustAdd(t, rooms[i], gff.NewString("RoomName", name))
		mustAdd(t, rooms[i], gff.NewByte("Lit", uint8(i)))
	}
	mustAdd(t, d.Root, gff.NewListField("RoomList", rooms...))

	return d
}
