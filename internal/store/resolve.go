package store

import (
	"strings"

	"github.com/msgfinder/msgfinder/internal/pathutil"
)

// Resolve probes root and binds the one backend that can serve it.
//
// The probe order is fixed and stops at the first match: an empty
// root or the configured live root selects Native with no filesystem
// access at all; a root holding the chat database is a relocated
// live store; the legacy manifest marks a legacy backup; the modern
// manifest a modern one. A root matching none of these fails with
// *UnknownStoreError.
func Resolve(root string, opts ...Option) (Backend, error) {
	cfg := newConfig(opts)

	root = trimRoot(root)
	if root == "" || root == cfg.nativeRoot {
		return NewNative(opts...), nil
	}
	if pathutil.IsRegularFile(pathutil.ExpandHome(root + "/" + cfg.chatDBName)) {
		return NewRelocated(root, opts...), nil
	}
	if pathutil.IsRegularFile(pathutil.ExpandHome(root + "/" + cfg.legacyManifest)) {
		return NewLegacyBackup(root, opts...)
	}
	if pathutil.IsRegularFile(pathutil.ExpandHome(root + "/" + cfg.modernManifest)) {
		return NewModernBackup(root, opts...)
	}
	return nil, &UnknownStoreError{Path: root}
}

// trimRoot drops trailing separators without ever collapsing a real
// path to nothing: "/" stays "/", so it cannot be mistaken for the
// empty root that selects the native layout.
func trimRoot(root string) string {
	trimmed := strings.TrimRight(root, "/")
	if trimmed == "" && root != "" {
		return "/"
	}
	return trimmed
}
