// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package visitors implements the operations gfftk applies to parsed
// documents. Each operation is a gff.Visitor; the ones usable from the
// command line register themselves here in an init function and are
// assembled into a pipeline by ParseCLI.
package visitors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/openaurora/gffkit/pkg/gff"
)

// operation is one registered command-line verb.
type operation struct {
	name  string
	help  string
	argc  int
	build func(args []string) (gff.Visitor, error)
}

var operations = map[string]*operation{}

// RegisterCLI makes an operation reachable from the command line under
// the given name. numArgs is how many of the following arguments the
// operation consumes; createVisitor receives exactly that many.
func RegisterCLI(name string, help string, numArgs int, createVisitor func([]string) (gff.Visitor, error)) {
	if _, ok := operations[name]; ok {
		panic(fmt.Sprintf("operation %q registered twice", name))
	}
	operations[name] = &operation{
		name:  name,
		help:  help,
		argc:  numArgs,
		build: createVisitor,
	}
}

// ParseCLI turns an argument list into a visitor pipeline. Arguments
// are consumed left to right: an operation name, then as many
// arguments as that operation declares, then the next name.
func ParseCLI(args []string) ([]gff.Visitor, error) {
	pipeline := []gff.Visitor{}
	for i := 0; i < len(args); {
		op, ok := operations[args[i]]
		if !ok {
			return nil, fmt.Errorf("unknown operation %q; the operations are:\n%s", args[i], ListCLI())
		}
		rest := args[i+1:]
		if len(rest) < op.argc {
			return nil, fmt.Errorf("operation %q takes %d argument(s), got %d\nsynopsis: %s",
				op.name, op.argc, len(rest), op.help)
		}
		v, err := op.build(rest[:op.argc])
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, v)
		i += 1 + op.argc
	}
	return pipeline, nil
}

// ExecuteCLI runs a pipeline over the document in order, stopping at
// the first failing operation.
func ExecuteCLI(d *gff.Document, pipeline []gff.Visitor) error {
	for _, v := range pipeline {
		if err := v.Run(d); err != nil {
			return err
		}
	}
	return nil
}

// ListCLI renders the registered operations sorted by name, one
// "name: help" line each, for usage output.
func ListCLI() string {
	names := make([]string, 0, len(operations))
	for n := range operations {
		names = append(names, n)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, n := range names {
		fmt.Fprintf(&b, "  %-10s: %s\n", n, operations[n].help)
	}
	return b.String()
}
