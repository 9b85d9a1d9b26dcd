package store

import (
	"strings"

	"github.com/msgfinder/msgfinder/internal/pathutil"
)

// Relocated reads a live-layout store that was copied or moved
// somewhere else wholesale, for example a chat.db dropped into a
// working directory for analysis.
type Relocated struct {
	root       string // where the store lives now
	nativeRoot string // the prefix logical paths still carry
	dbName     string
}

// NewRelocated binds a live-layout store located at root.
func NewRelocated(root string, opts ...Option) *Relocated {
	cfg := newConfig(opts)
	return &Relocated{
		root:       root,
		nativeRoot: cfg.nativeRoot,
		dbName:     cfg.chatDBName,
	}
}

func (r *Relocated) Kind() Kind { return KindRelocated }

func (r *Relocated) Root() string { return r.root }

// ChatDB returns the expanded path of the relocated chat database.
func (r *Relocated) ChatDB() string {
	return pathutil.ExpandHome(r.root + "/" + r.dbName)
}

// Filename rewrites paths under the conventional live root to the
// relocated root; anything else passes through expanded but
// otherwise unchanged. The prefix comparison is textual, against the
// root exactly as configured, so "~/..." matches "~/..." and not its
// expanded form.
func (r *Relocated) Filename(path string) string {
	if len(path) > len(r.nativeRoot) && strings.HasPrefix(path, r.nativeRoot) {
		return pathutil.ExpandHome(r.root + path[len(r.nativeRoot):])
	}
	return pathutil.ExpandHome(path)
}
