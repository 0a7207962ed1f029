// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package visitors

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/openaurora/gffkit/pkg/gff"
)

func TestJSONRoundsThroughCodec(t *testing.T) {
	d := areaDocument(t)

	var b bytes.Buffer
	v := &JSON{W: &b}
	if err := v.Run(d); err != nil {
		t.Fatal(err)
	}

	var back gff.Document
	if err := json.Unmarshal(b.Bytes(), &back); err != nil {
		t.Fatal(err)
	}
	if back.FileType != d.FileType {
		t.Fatalf("file type %q, want %q", back.FileType, d.FileType)
	}
	if back.Root.NumFields() != d.Root.NumFields() {
		t.Fatalf("got %d root fields, want %d", back.Root.NumFields(), d.Root.NumFields())
	}
}
