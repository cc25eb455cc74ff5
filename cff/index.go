// Package cff decodes Compact Font Format primitives found in an OpenType
// "CFF " table: the INDEX primitive and the DICT key/value language. It
// also defines the Logger interface for non-fatal diagnostics. It contains
// no Type-2 CharString interpreter and no typed TopDict/PrivateDict records.
package cff

import (
	"fmt"

	"github.com/gopherfonts/sfntoutline/internal/bin"
)

// Index is a CFF INDEX: an array of variable-length byte blobs addressed
// through a 1-based offset table, as used for the name, top-dict, string,
// global-subr, char-strings, and local-subr sections of a CFF table.
type Index struct {
	offsets []uint32 // Len() + 1 entries, 1-based into data
	data    []byte
}

// Len returns the number of elements in the index.
func (ix Index) Len() int {
	if len(ix.offsets) == 0 {
		return 0
	}
	return len(ix.offsets) - 1
}

// Get returns element i, or false if i is out of range.
func (ix Index) Get(i int) ([]byte, bool) {
	if i < 0 || i+1 >= len(ix.offsets) {
		return nil, false
	}
	start := ix.offsets[i]
	end := ix.offsets[i+1]
	if end < start {
		return nil, false
	}
	b, err := bin.View(ix.data, int(start-1), int(end-start))
	if err != nil {
		return nil, false
	}
	return b, true
}

// ReadIndex consumes one INDEX structure from cur, leaving cur positioned
// immediately after it.
func ReadIndex(cur *bin.Cursor) (Index, error) {
	count, err := cur.U16()
	if err != nil {
		return Index{}, err
	}
	if count == 0 {
		return Index{}, nil
	}

	offSize, err := cur.U8()
	if err != nil {
		return Index{}, err
	}
	if offSize < 1 || offSize > 4 {
		return Index{}, fmt.Errorf("cff: invalid INDEX offSize %d", offSize)
	}

	offsets, err := cur.OffsetArray(int(count)+1, int(offSize))
	if err != nil {
		return Index{}, err
	}
	dataLen := offsets[count]
	if dataLen < 1 {
		return Index{}, fmt.Errorf("cff: invalid INDEX data length")
	}
	data, err := cur.Bytes(int(dataLen - 1))
	if err != nil {
		return Index{}, err
	}

	return Index{offsets: offsets, data: data}, nil
}

// Logger receives non-fatal diagnostic messages.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// NopLogger is a Logger that discards every message.
type NopLogger struct{}

// Warnf implements Logger by doing nothing.
func (NopLogger) Warnf(format string, args ...interface{}) {}
