// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The gfftk command performs operations on a GFF resource file.
//
// Synopsis:
//     gfftk [flags] FILE OPERATIONS...
//
// FILE is a binary GFF resource (UTI, DLG, ARE, ...) or a JSON dump
// produced by the json operation; the two are told apart by content.
//
// Examples:
//     # Dump an item to JSON:
//     gfftk longsword.uti json
//
//     # Labels, types and values as a compact table:
//     gfftk longsword.uti table
//
//     # Find fields by label regex, JSON output with paths:
//     gfftk module.ifo find 'Mod_.*'
//
//     # Edit a value and write the result back out:
//     gfftk longsword.uti set Cost dword 9000 save longsword2.uti
//
//     # Convert a JSON dump back to binary:
//     gfftk longsword.json save longsword.uti
//
//     # Remove a field, check limits, count what is left:
//     gfftk area.are \
//       remove TileList \
//       validate \
//       count
//
// Operations:
//     `json`: Dump the entire document as JSON to stdout.
//     `table`: Dump labels, types and values as a compact table. This is
//              only for human consumption and the format may change
//              without notice.
//     `find REGEX`: Dump the JSON of every field whose label matches the
//                   anchored regex, along with the path that reaches it.
//     `set PATH TYPE VALUE`: Set or replace the field at PATH. TYPE is a
//                            JSON type name (byte, char, word, short,
//                            dword, int, dword64, int64, float, double,
//                            cexostring, resref, cexolocstring, void).
//     `remove PATH`: Remove the field at PATH.
//     `validate`: Check the document against format limits; findings go
//                 to stderr and fail the pipeline.
//     `count`: Count structs and fields by type, JSON output.
//     `save FILE`: Save the current state of the document to the given
//                  file. Remember that operations are applied
//                  left-to-right, so only the operations to the left are
//                  included in the saved file.
package main

import (
	"flag"
	"fmt"

	"github.com/openaurora/gffkit/pkg/gff"
	"github.com/openaurora/gffkit/pkg/gfftk"
	"github.com/openaurora/gffkit/pkg/log"
	"github.com/openaurora/gffkit/pkg/visitors"
)

func parseArguments() (gfftk.Config, []string) {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: gfftk [flags] <file name> [0 or more operations]\n")
		flag.PrintDefaults()
		fmt.Fprintf(flag.CommandLine.Output(), "\nOperations:\n%s", visitors.ListCLI())
	}
	typeFlag := flag.String("type", "", "assert the file's four-character type tag, e.g. 'UTI'")
	lenientFlag := flag.Bool("lenient", false, "tolerate duplicate labels and oversized strings")
	debugFlag := flag.Bool("debug", false, "print debug information")
	flag.Parse()

	if *debugFlag {
		log.EnableDebug()
	}

	cfg := gfftk.Config{
		FileType: *typeFlag,
		Options:  gff.DefaultOptions(),
	}
	cfg.Options.Strict = !*lenientFlag

	return cfg, flag.Args()
}

func main() {
	cfg, args := parseArguments()

	if err := gfftk.Run(cfg, args...); err != nil {
		log.Fatalf("%v", err)
	}
}
