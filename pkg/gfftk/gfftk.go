// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gfftk is where the implementation of the gfftk command lives.
package gfftk

import (
	"encoding/json"
	"errors"
	"os"
	"strings"

	"github.com/openaurora/gffkit/pkg/gff"
	"github.com/openaurora/gffkit/pkg/visitors"
)

// Config carries the command-line options that shape parsing and
// serializing.
type Config struct {
	// FileType asserts the document's four-character tag; empty
	// accepts any.
	FileType string

	// Options are applied to the parse and to every save in the
	// pipeline.
	Options gff.Options
}

// Run runs the gfftk command with the given arguments.
func Run(cfg Config, args ...string) error {
	if len(args) == 0 {
		return errors.New("at least one argument is required")
	}

	v, err := visitors.ParseCLI(args[1:])
	if err != nil {
		return err
	}
	for i := range v {
		if save, ok := v[i].(*visitors.Save); ok {
			save.Options = cfg.Options
		}
	}

	// Load and parse the document. A JSON dump (as produced by the
	// json operation) is accepted in place of a binary file.
	path := args[0]
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var d *gff.Document
	if isJSON(buf) {
		d = &gff.Document{}
		if err := json.Unmarshal(buf, d); err != nil {
			return err
		}
		want := strings.TrimRight(cfg.FileType, " ")
		if want != "" && strings.TrimRight(d.FileType, " ") != want {
			return &gff.ErrUnexpectedFileType{Want: cfg.FileType, Got: d.FileType}
		}
	} else {
		d, err = gff.ParseWithOptions(buf, cfg.FileType, cfg.Options)
		if err != nil {
			return err
		}
	}

	// Execute the instructions from the command line.
	return visitors.ExecuteCLI(d, v)
}

// isJSON sniffs the first non-whitespace byte.
func isJSON(buf []byte) bool {
	for _, b := range buf {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b == '{'
	}
	return false
}
