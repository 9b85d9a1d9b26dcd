// Package mbdbtest assembles synthetic legacy manifests for tests.
package mbdbtest

import "github.com/msgfinder/msgfinder/internal/binio"

// Property is one record property in encode order. Order matters:
// duplicate names are legal in the wire format.
type Property struct {
	Name  string
	Value []byte
}

// record carries the encodable fields of one manifest entry.
type record struct {
	domain     string
	path       string
	linkTarget []byte
	dataHash   []byte
	mode       uint16
	userID     uint32
	groupID    uint32
	mtime      uint32
	atime      uint32
	ctime      uint32
	fileLength uint64
	flag       uint8
	properties []Property
}

// FileOption adjusts one synthetic record away from its defaults.
type FileOption func(*record)

// WithMode sets the record's mode bits.
func WithMode(mode uint16) FileOption {
	return func(r *record) { r.mode = mode }
}

// WithLength sets the record's file length.
func WithLength(n uint64) FileOption {
	return func(r *record) { r.fileLength = n }
}

// WithFlag sets the record's flag byte.
func WithFlag(flag uint8) FileOption {
	return func(r *record) { r.flag = flag }
}

// WithLinkTarget sets the record's symlink target.
func WithLinkTarget(target []byte) FileOption {
	return func(r *record) { r.linkTarget = target }
}

// WithDataHash sets the record's data hash span.
func WithDataHash(hash []byte) FileOption {
	return func(r *record) { r.dataHash = hash }
}

// WithTimes sets the record's mtime, atime and ctime.
func WithTimes(mtime, atime, ctime uint32) FileOption {
	return func(r *record) { r.mtime, r.atime, r.ctime = mtime, atime, ctime }
}

// WithProperty appends one property. Call it repeatedly to encode
// several, including deliberate duplicates.
func WithProperty(name string, value []byte) FileOption {
	return func(r *record) {
		r.properties = append(r.properties, Property{Name: name, Value: value})
	}
}

// Builder accumulates an encoded manifest.
type Builder struct {
	buf []byte
}

// New returns a builder seeded with the manifest header.
func New() *Builder {
	return &Builder{buf: []byte("mbdb\x05\x00")}
}

// Len reports the encoded length so far, which is also the start
// offset of the next record added.
func (b *Builder) Len() int { return len(b.buf) }

// Bytes returns the manifest encoded so far. The slice aliases the
// builder's buffer.
func (b *Builder) Bytes() []byte { return b.buf }

// AddFile encodes one record for the given domain and path and
// returns its start offset. Unset fields take plausible defaults for
// a regular file owned by the primary mobile user.
func (b *Builder) AddFile(domain, path string, opts ...FileOption) int {
	rec := record{
		domain:  domain,
		path:    path,
		mode:    0o100644,
		userID:  501,
		groupID: 501,
	}
	for _, opt := range opts {
		opt(&rec)
	}

	start := len(b.buf)
	b.buf = binio.AppendString(b.buf, rec.domain)
	b.buf = binio.AppendString(b.buf, rec.path)
	b.buf = b.appendSpan(rec.linkTarget)
	b.buf = b.appendSpan(rec.dataHash)
	b.buf = binio.AppendBlank(b.buf) // unknown1
	b.buf = binio.AppendUint(b.buf, uint64(rec.mode), 2)
	b.buf = binio.AppendUint(b.buf, 0, 4) // unknown2
	b.buf = binio.AppendUint(b.buf, 0, 4) // unknown3
	b.buf = binio.AppendUint(b.buf, uint64(rec.userID), 4)
	b.buf = binio.AppendUint(b.buf, uint64(rec.groupID), 4)
	b.buf = binio.AppendUint(b.buf, uint64(rec.mtime), 4)
	b.buf = binio.AppendUint(b.buf, uint64(rec.atime), 4)
	b.buf = binio.AppendUint(b.buf, uint64(rec.ctime), 4)
	b.buf = binio.AppendUint(b.buf, rec.fileLength, 8)
	b.buf = binio.AppendUint(b.buf, uint64(rec.flag), 1)
	b.buf = binio.AppendUint(b.buf, uint64(len(rec.properties)), 1)
	for _, p := range rec.properties {
		b.buf = binio.AppendString(b.buf, p.Name)
		b.buf = binio.AppendBytes(b.buf, p.Value)
	}
	return start
}

// appendSpan encodes an optional byte span, writing the blank marker
// for nil.
func (b *Builder) appendSpan(span []byte) []byte {
	if span == nil {
		return binio.AppendBlank(b.buf)
	}
	return binio.AppendBytes(b.buf, span)
}
