// Package bin provides bounds-checked, big-endian primitives over an
// immutable byte slice. Nothing here copies or mutates the backing buffer;
// every accessor either returns a value decoded in place or a sub-slice that
// aliases the original bytes.
package bin

import "fmt"

// ErrOutOfBounds is returned whenever a read would cross the end of the
// backing slice.
var ErrOutOfBounds = fmt.Errorf("bin: read out of bounds")

// View returns data[offset : offset+length], bounds-checked. The returned
// slice aliases data; no copy is made.
func View(data []byte, offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset > len(data) || length > len(data)-offset {
		return nil, ErrOutOfBounds
	}
	return data[offset : offset+length], nil
}

// U8 reads a single byte at offset.
func U8(data []byte, offset int) (byte, error) {
	b, err := View(data, offset, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads a big-endian uint16 at offset.
func U16(data []byte, offset int) (uint16, error) {
	b, err := View(data, offset, 2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// U24 reads a big-endian 24-bit unsigned integer at offset.
func U24(data []byte, offset int) (uint32, error) {
	b, err := View(data, offset, 3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// U32 reads a big-endian uint32 at offset.
func U32(data []byte, offset int) (uint32, error) {
	b, err := View(data, offset, 4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// I16 reads a big-endian int16 at offset.
func I16(data []byte, offset int) (int16, error) {
	v, err := U16(data, offset)
	return int16(v), err
}

// I32 reads a big-endian int32 at offset.
func I32(data []byte, offset int) (int32, error) {
	v, err := U32(data, offset)
	return int32(v), err
}

// Cursor is a mutable read position over an immutable byte slice. It is the
// workhorse used by the container and CFF decoders to consume a buffer
// sequentially without ever copying it.
type Cursor struct {
	data []byte
	pos  int
}

// NewCursor wraps data for sequential reading starting at position 0.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Pos returns the current read offset.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the total length of the backing buffer.
func (c *Cursor) Len() int { return len(c.data) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.pos }

// Seek moves the read position to an absolute offset.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > len(c.data) {
		return ErrOutOfBounds
	}
	c.pos = pos
	return nil
}

// Skip advances the read position by n bytes.
func (c *Cursor) Skip(n int) error {
	return c.Seek(c.pos + n)
}

// Bytes returns the next n bytes as a sub-slice of the backing buffer and
// advances the read position past them.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	b, err := View(c.data, c.pos, n)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

// U8 reads the next byte and advances.
func (c *Cursor) U8() (byte, error) {
	b, err := c.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads the next big-endian uint16 and advances.
func (c *Cursor) U16() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// U24 reads the next big-endian 24-bit unsigned integer and advances.
func (c *Cursor) U24() (uint32, error) {
	b, err := c.Bytes(3)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2]), nil
}

// U32 reads the next big-endian uint32 and advances.
func (c *Cursor) U32() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// I16 reads the next big-endian int16 and advances.
func (c *Cursor) I16() (int16, error) {
	v, err := c.U16()
	return int16(v), err
}

// I32 reads the next big-endian int32 and advances.
func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

// Tag4 reads the next 4 raw bytes, typically an SFNT tag or table-directory
// signature. The caller decides how to interpret them.
func (c *Cursor) Tag4() ([4]byte, error) {
	var t [4]byte
	b, err := c.Bytes(4)
	if err != nil {
		return t, err
	}
	copy(t[:], b)
	return t, nil
}

// OffsetArray reads count big-endian unsigned integers of the given byte
// width, used by CFF INDEX offset tables where width is 1..4.
func (c *Cursor) OffsetArray(count int, width int) ([]uint32, error) {
	if width < 1 || width > 4 {
		return nil, fmt.Errorf("bin: invalid offset width %d", width)
	}
	out := make([]uint32, count)
	for i := range out {
		b, err := c.Bytes(width)
		if err != nil {
			return nil, err
		}
		var v uint32
		for _, x := range b {
			v = v<<8 | uint32(x)
		}
		out[i] = v
	}
	return out, nil
}
