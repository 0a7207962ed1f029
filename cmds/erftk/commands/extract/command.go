// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openaurora/gffkit/cmds/erftk/commands"
	"github.com/openaurora/gffkit/pkg/erf"
	"github.com/openaurora/gffkit/pkg/gff"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	ArchivePath string `short:"f" long:"file" description:"path to the archive" required:"true"`
	DirPath     string `short:"d" long:"dir" description:"directory to extract into" required:"true"`
	JSON        *bool  `long:"json" description:"also dump GFF resources as .json files"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "unpacks resources into a directory"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Each resource is written as NAME.EXT. With --json, resources " +
		"holding GFF documents are additionally written as NAME.EXT.json."
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

	if err := os.MkdirAll(cmd.DirPath, 0777); err != nil {
		return err
	}

	dumpJSON := cmd.JSON != nil && *cmd.JSON
	for _, e := range a.Entries {
		name := e.Name.String()
		if ext := e.Type.Extension(); ext != "" {
			name += "." + ext
		}
		path := filepath.Join(cmd.DirPath, name)
		if err := os.WriteFile(path, e.Data, 0666); err != nil {
			return err
		}
		if !dumpJSON || !e.Type.IsGFF() {
			continue
		}
		d, err := gff.Parse(e.Data, "")
		if err != nil {
			return fmt.Errorf("resource %s does not hold a valid document: %w", name, err)
		}
		b, err := json.MarshalIndent(d, "", "\t")
		if err != nil {
			return err
		}
		if err := os.WriteFile(path+".json", b, 0666); err != nil {
			return err
		}
	}

	return nil
}
