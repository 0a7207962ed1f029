// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package list

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
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
	return "prints the archived resources as a table"
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

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("%s (%s)", cmd.ArchivePath, a.FileType)
	t.AppendHeader(table.Row{"#", "Name", "Type", "Size"})
	var total uint64
	for i, e := range a.Entries {
		t.AppendRow(table.Row{i, e.Name.String(), e.Type.String(), humanize.IBytes(uint64(len(e.Data)))})
		total += uint64(len(e.Data))
	}
	t.AppendFooter(table.Row{"", "", "total", humanize.IBytes(total)})
	t.Render()

	return nil
}
