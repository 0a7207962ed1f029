// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// tlktk looks up and dumps Aurora talk table (.tlk) files.
//
// Synopsis:
//     tlktk [-r STRREF | --dump | --count] FILE
//
// Examples:
//     tlktk -r 1234 dialog.tlk
//     tlktk --dump dialog.tlk
//     tlktk --count dialog.tlk
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	flag "github.com/spf13/pflag"

	"github.com/openaurora/gffkit/pkg/tlk"
)

var (
	strref = flag.Int32P("strref", "r", -1, "print the string with this reference")
	dump   = flag.BoolP("dump", "D", false, "dump all strings as a table")
	count  = flag.BoolP("count", "c", false, "print the number of strings")
	debug  = flag.BoolP("debug", "d", false, "enable debug prints")
)

func main() {
	flag.Parse()

	a := flag.Args()
	if len(a) != 1 {
		log.Fatal("arg count")
	}

	buf, err := os.ReadFile(a[0])
	if err != nil {
		log.Fatal(err)
	}
	t, err := tlk.Parse(buf)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		log.Printf("%s: language %s, %d entries", a[0], t.Language, len(t.Entries))
	}

	switch {
	case *strref >= 0:
		s, err := t.String(*strref)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(s)
	case *dump:
		w := table.NewWriter()
		w.SetOutputMirror(os.Stdout)
		w.SetTitle("%s (%s)", a[0], t.Language)
		w.AppendHeader(table.Row{"StrRef", "Text", "Sound"})
		for i := range t.Entries {
			s, err := t.String(int32(i))
			if err != nil {
				log.Fatal(err)
			}
			w.AppendRow(table.Row{i, s, t.Entries[i].Sound.String()})
		}
		w.Render()
	case *count:
		fmt.Println(len(t.Entries))
	default:
		log.Fatal("?")
	}
}
