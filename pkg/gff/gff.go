// Copyright 2023 the OpenAurora Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gff reads and writes the Generic File Format V3.2, the
// structured container behind most Aurora engine resources (creatures,
// items, dialogs, areas, module info and the rest).
//
// A parsed file is a Document: a four-character type tag plus a tree of
// structs. Structs hold labeled, typed fields; fields hold scalars,
// strings, localized strings, raw blobs, single structs, or lists of
// structs. Parse builds the tree from a byte buffer, Serialize flattens
// it back. Both are pure: no state is shared between calls, so
// documents can be parsed and written from any number of goroutines as
// long as a single Document is not mutated concurrently.
//
// String values are kept exactly as stored, undecoded; they are
// codepage bytes, not UTF-8. The JSON codec and the display helpers
// transcode at the boundary via pkg/language.
package gff

// Format constants.
const (
	// Version is the only version tag this package reads or writes.
	Version = "V3.2"

	// MaxLabelLen is the size of a label slot. Labels are stored
	// unterminated in fixed slots and may use all 16 bytes.
	MaxLabelLen = 16

	// RootStructType is the type id carried by the root struct.
	RootStructType uint32 = 0xFFFFFFFF

	// StringSoftLimit is the documented ceiling for plain string
	// values. Longer strings are tolerated in lenient mode.
	StringSoftLimit = 1024

	headerLen      = 56
	structEntryLen = 12
	fieldEntryLen  = 12
)

// Document is one parsed file: the type tag and the root struct.
type Document struct {
	// FileType is the four-character content tag ("UTI ", "DLG ", ...).
	// Shorter tags are space-padded when serialized.
	FileType string

	// Root is the top of the struct tree. Its type id is
	// RootStructType in every conforming file.
	Root *Struct
}

// New creates an empty document with the given type tag.
func New(fileType string) *Document {
	return &Document{
		FileType: fileType,
		Root:     NewStruct(RootStructType),
	}
}

// Node is one node of a document tree: a *Struct or a *Field.
type Node interface {
	// Apply calls the visitor on the node.
	Apply(v Visitor) error

	// ApplyChildren calls the visitor on each of the node's children.
	ApplyChildren(v Visitor) error
}

// Visitor represents an operation which can be applied to a document.
type Visitor interface {
	// Run executes the visitor on the whole document. It is typically
	// implemented as d.Root.Apply(v), but lets visitors see the
	// document itself and perform setup and teardown.
	Run(d *Document) error

	// Visit applies the visitor to a single node and (usually)
	// recurses via ApplyChildren.
	Visit(n Node) error
}
