// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openaurora/gffkit/pkg/gff"
)

func TestSave(t *testing.T) {
	d := areaDocument(t)

	path := filepath.Join(t.TempDir(), "shop.are")
	save := &Save{DirPath: path, Options: gff.DefaultOptions()}
	if err := save.Run(d); err != nil {
		t.Fatal(err)
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	back, err := gff.Parse(buf, "ARE")
	if err != nil {
		t.Fatal(err)
	}
	if back.Root.NumFields() != d.Root.NumFields() {
		t.Fatalf("got %d root fields, want %d", back.Root.NumFields(), d.Root.NumFields())
	}
}
