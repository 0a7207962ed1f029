// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gfftk

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/openaurora/gffkit/pkg/gff"
)

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	d := gff.New("UTI ")
	if err := d.Root.Add(gff.NewString("Tag", "it_sword")); err != nil {
		t.Fatal(err)
	}
	if err := d.Root.Add(gff.NewDword("Cost", 100)); err != nil {
		t.Fatal(err)
	}
	buf, err := d.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "sword.uti")
	if err := os.WriteFile(path, buf, 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunPipeline(t *testing.T) {
	dir := t.TempDir()
	in := writeSample(t, dir)
	out := filepath.Join(dir, "out.uti")

	cfg := Config{FileType: "UTI", Options: gff.DefaultOptions()}
	if err := Run(cfg, in, "remove", "Cost", "save", out); err != nil {
		t.Fatal(err)
	}

	buf, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	d, err := gff.Parse(buf, "UTI")
	if err != nil {
		t.Fatal(err)
	}
	if d.Root.Has("Cost") {
		t.Fatal("Cost should have been removed before the save")
	}
	if !d.Root.Has("Tag") {
		t.Fatal("Tag should have survived")
	}
}

func TestRunJSONInput(t *testing.T) {
	dir := t.TempDir()

	d := gff.New("UTI ")
	if err := d.Root.Add(gff.NewString("Tag", "it_sword")); err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	in := filepath.Join(dir, "sword.json")
	if err := os.WriteFile(in, b, 0666); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "sword.uti")

	cfg := Config{Options: gff.DefaultOptions()}
	if err := Run(cfg, in, "save", out); err != nil {
		t.Fatal(err)
	}

	buf, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gff.Parse(buf, "UTI"); err != nil {
		t.Fatal(err)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeSample(t, dir)

	cfg := Config{Options: gff.DefaultOptions()}
	if err := Run(cfg); err == nil {
		t.Error("no arguments should fail")
	}
	if err := Run(cfg, filepath.Join(dir, "missing.uti")); err == nil {
		t.Error("missing file should fail")
	}
	if err := Run(cfg, in, "frobnicate"); err == nil {
		t.Error("unknown operation should fail")
	}
	cfg.FileType = "DLG"
	if err := Run(cfg, in); err == nil {
		t.Error("wrong file type should fail")
	}
}
