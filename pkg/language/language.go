// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package language implements the Aurora engine language and gender
// identifiers and the character encodings attached to them. Localized
// strings are stored on disk in a per-language single- or multi-byte
// codepage; this package converts them to and from UTF-8.
package language

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Language is an Aurora language identifier.
type Language uint32

// Language identifiers as used by localized strings and talk tables.
const (
	English            Language = 0
	French             Language = 1
	German             Language = 2
	Italian            Language = 3
	Spanish            Language = 4
	Polish             Language = 5
	Korean             Language = 128
	ChineseTraditional Language = 129
	ChineseSimplified  Language = 130
	Japanese           Language = 131
)

// Gender selects between the two localized variants of a string.
type Gender uint32

// Gender identifiers.
const (
	Masculine Gender = 0
	Feminine  Gender = 1
)

var languageNames = map[Language]string{
	English:            "English",
	French:             "French",
	German:             "German",
	Italian:            "Italian",
	Spanish:            "Spanish",
	Polish:             "Polish",
	Korean:             "Korean",
	ChineseTraditional: "ChineseTraditional",
	ChineseSimplified:  "ChineseSimplified",
	Japanese:           "Japanese",
}

func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Language(%d)", uint32(l))
}

// Known reports whether l is one of the documented language identifiers.
func (l Language) Known() bool {
	_, ok := languageNames[l]
	return ok
}

func (g Gender) String() string {
	switch g {
	case Masculine:
		return "Masculine"
	case Feminine:
		return "Feminine"
	}
	return fmt.Sprintf("Gender(%d)", uint32(g))
}

// StringID folds a language and a gender into the identifier stored in
// localized string substrings: 2*language + gender.
func StringID(l Language, g Gender) int32 {
	return int32(l)*2 + int32(g)
}

// FromStringID splits a substring identifier back into language and
// gender.
func FromStringID(id int32) (Language, Gender) {
	return Language(id / 2), Gender(id % 2)
}

// encoding returns the codepage strings of l are stored in. The western
// languages share Windows-1252; Polish uses Windows-1250; the CJK
// languages use their native multi-byte encodings.
func (l Language) encoding() encoding.Encoding {
	switch l {
	case Polish:
		return charmap.Windows1250
	case Korean:
		return korean.EUCKR
	case ChineseTraditional:
		return traditionalchinese.Big5
	case ChineseSimplified:
		return simplifiedchinese.GBK
	case Japanese:
		return japanese.ShiftJIS
	}
	return charmap.Windows1252
}

// Decode converts raw string bytes in l's codepage to UTF-8. Bytes with
// no mapping decode to U+FFFD rather than failing; shipped game data
// contains the occasional stray byte.
func (l Language) Decode(b []byte) (string, error) {
	out, err := l.encoding().NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode %s bytes: %w", l, err)
	}
	return string(out), nil
}

// Encode converts a UTF-8 string to l's codepage. Runes the codepage
// cannot represent are an error; callers decide whether to substitute.
func (l Language) Encode(s string) ([]byte, error) {
	out, err := l.encoding().NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode %q for %s: %w", s, l, err)
	}
	return out, nil
}
