package binio

import (
	"encoding/binary"
	"fmt"
)

// maxSpanLen is the longest value encodable with a 2-byte length
// prefix. 0xFFFF itself is reserved for the blank marker.
const maxSpanLen = blankMarker - 1

// AppendUint appends v as a size-byte big-endian integer.
func AppendUint(b []byte, v uint64, size int) []byte {
	for i := size - 1; i >= 0; i-- {
		b = append(b, byte(v>>(8*uint(i))))
	}
	return b
}

// AppendBytes appends p with a 2-byte big-endian length prefix.
// It panics when p is longer than 65534 bytes, since such a length
// cannot be distinguished from the blank marker.
func AppendBytes(b []byte, p []byte) []byte {
	if len(p) > maxSpanLen {
		panic(fmt.Sprintf("binio: span of %d bytes exceeds length prefix", len(p)))
	}
	b = binary.BigEndian.AppendUint16(b, uint16(len(p)))
	return append(b, p...)
}

// AppendString appends s with a 2-byte big-endian length prefix.
func AppendString(b []byte, s string) []byte {
	return AppendBytes(b, []byte(s))
}

// AppendBlank appends the 0xFFFF marker denoting an absent value.
func AppendBlank(b []byte) []byte {
	return binary.BigEndian.AppendUint16(b, blankMarker)
}
