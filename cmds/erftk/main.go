// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// erftk manipulates Aurora ERF resource archives (.erf, .mod, .sav,
// .hak).
//
// Synopsis:
//     erftk list -f ARCHIVE
//     erftk extract -f ARCHIVE -d DIR [options]
//     erftk create -f ARCHIVE -d DIR [options]
//     erftk info -f ARCHIVE
//
// An example:
//     erftk list -f mymodule.mod
//     erftk extract -f mymodule.mod -d mymodule/
//     erftk extract -f mymodule.mod -d mymodule/ --json
//     erftk create -f rebuilt.mod -d mymodule/ --type MOD
//     erftk info -f mymodule.mod
//
// Description:
//     list:    Print the archived resources as a table
//     extract: Unpack resources into a directory
//     create:  Pack a directory of resources into a new archive
//     info:    Print header information
package main

import (
	"log"

	"github.com/jessevdk/go-flags"

	"github.com/openaurora/gffkit/cmds/erftk/commands"
	"github.com/openaurora/gffkit/cmds/erftk/commands/create"
	"github.com/openaurora/gffkit/cmds/erftk/commands/extract"
	"github.com/openaurora/gffkit/cmds/erftk/commands/info"
	"github.com/openaurora/gffkit/cmds/erftk/commands/list"
)

var (
	knownCommands = map[string]commands.Command{
		"list":    &list.Command{},
		"extract": &extract.Command{},
		"create":  &create.Command{},
		"info":    &info.Command{},
	}
)

func main() {
	flagsParser := flags.NewParser(nil, flags.Default)
	for commandName, command := range knownCommands {
		_, err := flagsParser.AddCommand(commandName, command.ShortDescription(), command.LongDescription(), command)
		if err != nil {
			panic(err)
		}
	}

	// parse arguments and execute the appropriate command
	if _, err := flagsParser.Parse(); err != nil {
		log.Fatal(err)
	}
}
