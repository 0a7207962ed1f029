// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gff

import (
	"fmt"

	"github.com/openaurora/gffkit/pkg/language"
)

// NoStrRef marks a localized string with no talk table reference. On
// disk it is stored as 0xFFFFFFFF.
const NoStrRef int32 = -1

// LocString is a localized string: an optional talk table reference
// plus any number of embedded per-language, per-gender substrings.
// Embedded text takes precedence over the reference when both exist.
type LocString struct {
	StrRef     int32
	Substrings []Substring
}

// Substring is one embedded localization. Text holds the raw codepage
// bytes as stored; use Decoded for UTF-8.
type Substring struct {
	Language language.Language
	Gender   language.Gender
	Text     string
}

// Decoded returns the substring text transcoded to UTF-8.
func (s Substring) Decoded() (string, error) {
	return s.Language.Decode([]byte(s.Text))
}

// Text returns the embedded text for an exact language and gender
// match.
func (ls *LocString) Text(l language.Language, g language.Gender) (string, bool) {
	for _, s := range ls.Substrings {
		if s.Language == l && s.Gender == g {
			return s.Text, true
		}
	}
	return "", false
}

// SetText adds or replaces the substring for a language and gender.
func (ls *LocString) SetText(l language.Language, g language.Gender, text string) {
	for i, s := range ls.Substrings {
		if s.Language == l && s.Gender == g {
			ls.Substrings[i].Text = text
			return
		}
	}
	ls.Substrings = append(ls.Substrings, Substring{Language: l, Gender: g, Text: text})
}

// String renders the first embedded substring (decoded), or the talk
// table reference if there is none.
func (ls *LocString) String() string {
	if len(ls.Substrings) > 0 {
		if text, err := ls.Substrings[0].Decoded(); err == nil {
			return text
		}
		return ls.Substrings[0].Text
	}
	if ls.StrRef != NoStrRef {
		return fmt.Sprintf("strref:%d", ls.StrRef)
	}
	return ""
}
