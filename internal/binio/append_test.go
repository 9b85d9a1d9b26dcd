package binio

import (
	"bytes"
	"strings"
	"testing"
)

func TestAppendUintRoundTrip(t *testing.T) {
	sizes := []int{1, 2, 4, 8}
	values := []uint64{0, 1, 0x7f, 0xff, 0xffff, 0xdeadbeef}

	for _, size := range sizes {
		for _, v := range values {
			if size < 8 && v >= 1<<(8*uint(size)) {
				continue
			}
			b := AppendUint(nil, v, size)
			if len(b) != size {
				t.Fatalf("AppendUint(%#x, %d) wrote %d bytes", v, size, len(b))
			}
			c := NewCursor(b)
			got, err := c.Uint(size)
			if err != nil {
				t.Fatalf("Uint(%d): %v", size, err)
			}
			if got != v {
				t.Errorf("round trip %#x (size %d) = %#x", v, size, got)
			}
		}
	}
}

func TestAppendStringRoundTrip(t *testing.T) {
	inputs := []string{"", "a", "Library/SMS/sms.db", "héllo wörld", strings.Repeat("x", 1000)}

	for _, s := range inputs {
		b := AppendString(nil, s)
		if want := 2 + len(s); len(b) != want {
			t.Fatalf("AppendString(%q) wrote %d bytes, want %d", s, len(b), want)
		}
		c := NewCursor(b)
		got, err := c.String()
		if err != nil {
			t.Fatalf("String(): %v", err)
		}
		if got != s {
			t.Errorf("round trip %q = %q", s, got)
		}
		if c.Offset() != 2+len(s) {
			t.Errorf("offset after %q = %d, want %d", s, c.Offset(), 2+len(s))
		}
	}
}

func TestAppendBytesRoundTrip(t *testing.T) {
	payload := []byte{0x00, 0xff, 0xc3, 0x28}
	b := AppendBytes(nil, payload)
	c := NewCursor(b)
	got, err := c.Bytes()
	if err != nil {
		t.Fatalf("Bytes(): %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("round trip = %x, want %x", got, payload)
	}
	if c.Offset() != 2+len(payload) {
		t.Errorf("offset = %d, want %d", c.Offset(), 2+len(payload))
	}
}

func TestAppendBlankRoundTrip(t *testing.T) {
	b := AppendBlank(nil)
	if !bytes.Equal(b, []byte{0xff, 0xff}) {
		t.Fatalf("AppendBlank = %x, want ffff", b)
	}
	c := NewCursor(b)
	s, err := c.String()
	if err != nil {
		t.Fatalf("String(): %v", err)
	}
	if s != "" {
		t.Errorf("blank decoded to %q, want empty", s)
	}
	if c.Offset() != 2 {
		t.Errorf("offset = %d, want 2", c.Offset())
	}
}

func TestAppendBytesOverlong(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for span longer than the length prefix allows")
		}
	}()
	AppendBytes(nil, make([]byte, 0xffff))
}
