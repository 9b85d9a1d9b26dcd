package store

import "github.com/msgfinder/msgfinder/internal/pathutil"

// Native reads the live message store in place.
type Native struct {
	root   string
	dbName string
}

// NewNative binds the conventional live store. It performs no
// filesystem access: the live layout is assumed, never probed.
func NewNative(opts ...Option) *Native {
	cfg := newConfig(opts)
	return &Native{root: cfg.nativeRoot, dbName: cfg.chatDBName}
}

func (n *Native) Kind() Kind { return KindNative }

func (n *Native) Root() string { return n.root }

// ChatDB returns the expanded path of the live chat database.
func (n *Native) ChatDB() string {
	return pathutil.ExpandHome(n.root + "/" + n.dbName)
}

// Filename expands the path and nothing else: in the live layout
// every logical path already is the real one.
func (n *Native) Filename(path string) string {
	return pathutil.ExpandHome(path)
}
