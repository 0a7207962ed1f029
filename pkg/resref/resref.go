// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resref implements the resource reference identifier used
// throughout the Aurora file formats. A ResRef names a resource in at
// most 16 bytes, compares case-insensitively, and is stored on disk in
// a zero-padded 16-byte slot or behind a one-byte length prefix.
package resref

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MaxLen is the maximum number of bytes in a ResRef.
const MaxLen = 16

// ResRef is a resource name. The zero value is the empty ResRef.
type ResRef string

// Parse validates s and returns it as a ResRef.
func Parse(s string) (ResRef, error) {
	if len(s) > MaxLen {
		return "", fmt.Errorf("resref %q is %d bytes, limit is %d", s, len(s), MaxLen)
	}
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return "", fmt.Errorf("resref %q contains a NUL byte", s)
		}
	}
	return ResRef(s), nil
}

// MustParse validates s or panics. For use with hard-coded names.
func MustParse(s string) ResRef {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// FromBytes reads a ResRef out of a fixed 16-byte slot, trimming the
// zero padding.
func FromBytes(b []byte) ResRef {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if len(b) > MaxLen {
		b = b[:MaxLen]
	}
	return ResRef(b)
}

// Bytes returns the fixed 16-byte zero-padded slot form.
func (r ResRef) Bytes() [MaxLen]byte {
	var out [MaxLen]byte
	copy(out[:], r)
	return out
}

func (r ResRef) String() string {
	return string(r)
}

// Valid reports whether r fits the on-disk constraints.
func (r ResRef) Valid() bool {
	_, err := Parse(string(r))
	return err == nil
}

// Equal compares two ResRefs case-insensitively, the way the engine
// resolves resource names.
func (r ResRef) Equal(other ResRef) bool {
	return strings.EqualFold(string(r), string(other))
}

// MarshalJSON implements the marshaller interface. ResRefs appear in
// JSON as plain strings.
func (r ResRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

// UnmarshalJSON implements the unmarshaller interface and validates the
// length constraint.
func (r *ResRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
