// Package binio decodes and encodes the big-endian, length-prefixed
// primitives used by legacy device-backup manifests.
package binio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrTruncated is returned when a read would pass the end of
	// the buffer.
	ErrTruncated = errors.New("binio: truncated data")
	// ErrEncoding is returned when a text field is not valid UTF-8.
	ErrEncoding = errors.New("binio: text field is not valid UTF-8")
)

// blankMarker replaces the 2-byte length prefix when a string or
// byte-span field is absent.
const blankMarker = 0xFFFF

// Cursor reads big-endian values from a byte buffer, advancing an
// offset with every read. Byte spans returned by Bytes alias the
// underlying buffer.
type Cursor struct {
	data []byte
	off  int
}

// NewCursor returns a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the current byte offset.
func (c *Cursor) Offset() int { return c.off }

// More reports whether any bytes remain past the current offset.
func (c *Cursor) More() bool { return c.off < len(c.data) }

// Skip advances the offset by n bytes without interpreting them.
func (c *Cursor) Skip(n int) error {
	if c.off+n > len(c.data) {
		return fmt.Errorf("%w: skipping %d bytes at offset %d", ErrTruncated, n, c.off)
	}
	c.off += n
	return nil
}

// Uint reads size bytes (1 to 8) as a big-endian unsigned integer.
func (c *Cursor) Uint(size int) (uint64, error) {
	if c.off+size > len(c.data) {
		return 0, fmt.Errorf("%w: reading %d-byte integer at offset %d", ErrTruncated, size, c.off)
	}
	var v uint64
	for _, b := range c.data[c.off : c.off+size] {
		v = v<<8 | uint64(b)
	}
	c.off += size
	return v, nil
}

// Bytes reads a length-prefixed byte span: a 2-byte big-endian length
// followed by that many bytes. The 0xFFFF marker in place of the
// length denotes an absent value and decodes to nil, advancing the
// offset by exactly 2.
func (c *Cursor) Bytes() ([]byte, error) {
	if c.off+2 > len(c.data) {
		return nil, fmt.Errorf("%w: reading length prefix at offset %d", ErrTruncated, c.off)
	}
	if binary.BigEndian.Uint16(c.data[c.off:]) == blankMarker {
		c.off += 2
		return nil, nil
	}
	n, err := c.Uint(2)
	if err != nil {
		return nil, err
	}
	length := int(n)
	if c.off+length > len(c.data) {
		return nil, fmt.Errorf("%w: reading %d-byte value at offset %d", ErrTruncated, length, c.off)
	}
	v := c.data[c.off : c.off+length]
	c.off += length
	return v, nil
}

// String reads a length-prefixed UTF-8 string with the same framing
// as Bytes. The 0xFFFF marker decodes to the empty string.
func (c *Cursor) String() (string, error) {
	start := c.off
	raw, err := c.Bytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: at offset %d", ErrEncoding, start)
	}
	return string(raw), nil
}
