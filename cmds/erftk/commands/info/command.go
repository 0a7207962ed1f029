// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package info

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/openaurora/gffkit/cmds/erftk/commands"
	"github.com/openaurora/gffkit/pkg/erf"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	ArchivePath string `short:"f" long:"file" description:"path to the archive" required:"true"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints header information"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return ""
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}

	buf, err := os.ReadFile(cmd.ArchivePath)
	if err != nil {
		return fmt.Errorf("unable to read the archive '%s': %w", cmd.ArchivePath, err)
	}
	a, err := erf.Parse(buf)
	if err != nil {
		return fmt.Errorf("unable to parse the archive: %w", err)
	}

	h := table.NewWriter()
	h.SetOutputMirror(os.Stdout)
	h.SetTitle("%s", cmd.ArchivePath)
	h.AppendHeader(table.Row{"Type", "Build Year", "Build Day", "Resources", "Descriptions"})
	h.AppendRow(table.Row{a.FileType, 1900 + a.BuildYear, 1 + a.BuildDay, len(a.Entries), len(a.Descriptions)})
	h.Render()

	if len(a.Descriptions) == 0 {
		return nil
	}
	d := table.NewWriter()
	d.SetOutputMirror(os.Stdout)
	d.SetTitle("Descriptions")
	d.AppendHeader(table.Row{"Language", "Text"})
	for _, desc := range a.Descriptions {
		text, err := desc.Language.Decode([]byte(desc.Text))
		if err != nil {
			text = desc.Text
		}
		d.AppendRow(table.Row{desc.Language.String(), text})
	}
	d.Render()

	return nil
}
