// Package mbdb decodes the legacy Manifest.mbdb binary manifest found
// in older device backups. The format is a 4-byte "mbdb" tag, two
// opaque header bytes, then a packed stream of file records.
package mbdb

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"log"

	"github.com/msgfinder/msgfinder/internal/binio"
)

const (
	magic = "mbdb"
	// headerLen covers the tag plus the two opaque bytes that
	// follow it (0x05 0x00 in every manifest seen in the wild).
	headerLen = 6
)

// NoFileID marks a record whose content ID could not be resolved
// during the annotation pass. Under well-formed input this never
// happens; the sentinel exists so a surprising manifest degrades to a
// loggable oddity instead of a crash.
const NoFileID = "<nofileID>"

// ErrFormat is returned when the buffer does not begin with the mbdb
// tag. It is reported before any record is decoded.
var ErrFormat = errors.New("mbdb: not a manifest file")

// Record is one file entry from a legacy manifest.
type Record struct {
	Domain     string
	Path       string // backup-relative path, may be empty for domain-only entries
	LinkTarget []byte
	DataHash   []byte
	Unknown1   []byte
	Mode       uint16
	Unknown2   uint32
	Unknown3   uint32
	UserID     uint32
	GroupID    uint32
	Mtime      uint32
	Atime      uint32
	Ctime      uint32
	FileLength uint64
	Flag       uint8
	Properties map[string][]byte

	// StartOffset is the buffer offset where this record begins.
	// It is unique within one manifest and keys the record.
	StartOffset int
	// FileID is the content ID the backup stores this file under,
	// resolved after the record stream is decoded.
	FileID string
}

// Manifest holds the decoded records of one manifest file, in parse
// order, with every FileID resolved.
type Manifest struct {
	records  []Record
	byOffset map[int]*Record
}

// Records returns all records in parse order. The returned slice is
// shared; callers must not modify it.
func (m *Manifest) Records() []Record { return m.records }

// Len returns the number of records.
func (m *Manifest) Len() int { return len(m.records) }

// At returns the record that begins at the given buffer offset.
func (m *Manifest) At(offset int) (*Record, bool) {
	rec, ok := m.byOffset[offset]
	return rec, ok
}

// ContentID derives the content ID a legacy backup stores a file
// under: the hex SHA1 of "domain-path".
func ContentID(domain, path string) string {
	sum := sha1.Sum([]byte(domain + "-" + path))
	return hex.EncodeToString(sum[:])
}

// Parse decodes a complete manifest buffer. Any decode failure aborts
// the whole parse: a partially decoded manifest is never returned.
func Parse(data []byte) (*Manifest, error) {
	if len(data) < len(magic) || string(data[:len(magic)]) != magic {
		return nil, ErrFormat
	}

	m := &Manifest{byOffset: make(map[int]*Record)}
	if len(data) < headerLen {
		// Tag with nothing after it: an empty manifest.
		return m, nil
	}

	cur := binio.NewCursor(data)
	if err := cur.Skip(headerLen); err != nil {
		return nil, err
	}

	// First pass: decode records and, alongside, compute the
	// offset -> content ID table.
	computed := make(map[int]string)
	for cur.More() {
		rec, err := parseRecord(cur)
		if err != nil {
			return nil, err
		}
		m.records = append(m.records, rec)
		computed[rec.StartOffset] = ContentID(rec.Domain, rec.Path)
	}

	// Second pass: annotate each record with its content ID. The
	// table was keyed by the very offsets the records carry, so a
	// miss here means the manifest did something we do not
	// understand; keep the record and flag it.
	for i := range m.records {
		rec := &m.records[i]
		id, ok := computed[rec.StartOffset]
		if !ok {
			rec.FileID = NoFileID
			log.Printf("mbdb: no content ID for %q (record offset %d)", rec.Path, rec.StartOffset)
		} else {
			rec.FileID = id
		}
		m.byOffset[rec.StartOffset] = rec
	}

	return m, nil
}

// parseRecord decodes one record at the cursor's current offset. The
// field order is fixed by the on-disk format and must not change.
func parseRecord(cur *binio.Cursor) (Record, error) {
	rec := Record{StartOffset: cur.Offset()}

	fail := func(field string, err error) (Record, error) {
		return rec, fmt.Errorf("mbdb: record at offset %d: %s: %w", rec.StartOffset, field, err)
	}

	var err error
	if rec.Domain, err = cur.String(); err != nil {
		return fail("domain", err)
	}
	if rec.Path, err = cur.String(); err != nil {
		return fail("path", err)
	}
	if rec.LinkTarget, err = cur.Bytes(); err != nil {
		return fail("link target", err)
	}
	if rec.DataHash, err = cur.Bytes(); err != nil {
		return fail("data hash", err)
	}
	if rec.Unknown1, err = cur.Bytes(); err != nil {
		return fail("unknown1", err)
	}

	mode, err := cur.Uint(2)
	if err != nil {
		return fail("mode", err)
	}
	rec.Mode = uint16(mode)

	u32 := []struct {
		name string
		dst  *uint32
	}{
		{"unknown2", &rec.Unknown2},
		{"unknown3", &rec.Unknown3},
		{"user id", &rec.UserID},
		{"group id", &rec.GroupID},
		{"mtime", &rec.Mtime},
		{"atime", &rec.Atime},
		{"ctime", &rec.Ctime},
	}
	for _, f := range u32 {
		v, err := cur.Uint(4)
		if err != nil {
			return fail(f.name, err)
		}
		*f.dst = uint32(v)
	}

	if rec.FileLength, err = cur.Uint(8); err != nil {
		return fail("file length", err)
	}

	flag, err := cur.Uint(1)
	if err != nil {
		return fail("flag", err)
	}
	rec.Flag = uint8(flag)

	numProps, err := cur.Uint(1)
	if err != nil {
		return fail("property count", err)
	}

	rec.Properties = make(map[string][]byte, numProps)
	for i := 0; i < int(numProps); i++ {
		name, err := cur.String()
		if err != nil {
			return fail(fmt.Sprintf("property %d name", i), err)
		}
		value, err := cur.Bytes()
		if err != nil {
			return fail(fmt.Sprintf("property %q value", name), err)
		}
		// Duplicate property names: last write wins.
		rec.Properties[name] = value
	}

	return rec, nil
}
