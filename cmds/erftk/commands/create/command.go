// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package create

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openaurora/gffkit/cmds/erftk/commands"
	"github.com/openaurora/gffkit/pkg/erf"
	"github.com/openaurora/gffkit/pkg/log"
	"github.com/openaurora/gffkit/pkg/resref"
	"github.com/openaurora/gffkit/pkg/restype"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	ArchivePath string  `short:"f" long:"file" description:"path of the archive to create" required:"true"`
	DirPath     string  `short:"d" long:"dir" description:"directory of resources to pack" required:"true"`
	FileType    *string `long:"type" description:"archive type tag [ERF, MOD, SAV, HAK]"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "packs a directory of resources into a new archive"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Resource names and types come from the file names: NAME.EXT " +
		"becomes a resource named NAME with the type matching EXT. Files " +
		"with unknown extensions are skipped with a warning."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}

	fileType := erf.TypeERF
	if cmd.FileType != nil {
		switch strings.ToUpper(strings.TrimSpace(*cmd.FileType)) {
		case "ERF":
			fileType = erf.TypeERF
		case "MOD":
			fileType = erf.TypeMOD
		case "SAV":
			fileType = erf.TypeSAV
		case "HAK":
			fileType = erf.TypeHAK
		default:
			return commands.ErrArgs{Err: fmt.Errorf("unknown archive type '%s'", *cmd.FileType)}
		}
	}

	entries, err := os.ReadDir(cmd.DirPath)
	if err != nil {
		return fmt.Errorf("unable to read the directory '%s': %w", cmd.DirPath, err)
	}

	a := erf.New(fileType)
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		ext := filepath.Ext(de.Name())
		t, ok := restype.FromExtension(ext)
		if !ok {
			log.Warnf("skipping %s: unknown extension", de.Name())
			continue
		}
		name, err := resref.Parse(strings.TrimSuffix(de.Name(), ext))
		if err != nil {
			return fmt.Errorf("file %s does not name a valid resource: %w", de.Name(), err)
		}
		data, err := os.ReadFile(filepath.Join(cmd.DirPath, de.Name()))
		if err != nil {
			return err
		}
		a.Add(name, t, data)
	}

	buf, err := a.Serialize()
	if err != nil {
		return fmt.Errorf("unable to serialize the archive: %w", err)
	}
	return os.WriteFile(cmd.ArchivePath, buf, 0666)
}
