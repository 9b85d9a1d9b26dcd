// Package pathindex resolves logical file paths against a backup's
// stored paths by exact suffix match.
//
// Backups record paths relative to roots the caller cannot know
// ("Library/SMS/sms.db" for a file the caller asks for as
// "/var/mobile/Library/SMS/sms.db"), so a lookup tries the longest
// suffix of the query first and drops one leading component per step
// until a stored path matches exactly.
package pathindex

import "strings"

// Index maps stored relative paths to stored values, bucketed by
// path length so a lookup only ever compares same-length strings.
// Build it once at backend construction; it is read-only afterwards
// and safe for concurrent lookups.
type Index struct {
	byLen map[int]map[string]string
	n     int
}

// New returns an empty index.
func New() *Index {
	return &Index{byLen: make(map[int]map[string]string)}
}

// Put records the value stored for an exact relative path. Putting
// the same path again overwrites the earlier value.
func (ix *Index) Put(path, value string) {
	bucket := ix.byLen[len(path)]
	if bucket == nil {
		bucket = make(map[string]string)
		ix.byLen[len(path)] = bucket
	}
	if _, ok := bucket[path]; !ok {
		ix.n++
	}
	bucket[path] = value
}

// Len reports the number of distinct paths stored.
func (ix *Index) Len() int { return ix.n }

// Lookup resolves a logical path to its stored value, or "" when the
// index holds nothing for it. The first candidate is the whole path
// (minus its leading slash, if any); each following candidate drops
// one more leading component, so the longest stored suffix wins.
func (ix *Index) Lookup(path string) string {
	start := 0
	if strings.HasPrefix(path, "/") {
		start = 1
	}
	for {
		suffix := path[start:]
		if bucket, ok := ix.byLen[len(suffix)]; ok {
			if v, ok := bucket[suffix]; ok {
				return v
			}
		}
		slash := strings.IndexByte(path[start:], '/')
		if slash < 0 {
			return ""
		}
		start += slash + 1
	}
}
