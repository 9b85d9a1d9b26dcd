package store

import (
	"fmt"

	"github.com/msgfinder/msgfinder/internal/manifestdb"
	"github.com/msgfinder/msgfinder/internal/pathindex"
	"github.com/msgfinder/msgfinder/internal/pathutil"
)

// ModernBackup reads a device backup cataloged by a SQLite manifest.
// Content files are sharded into subdirectories named after the
// first two characters of their ID.
type ModernBackup struct {
	root   string
	dbPath string
	dbName string
	index  *pathindex.Index
}

// NewModernBackup queries the backup's manifest read-only and builds
// the lookup index. Any failure aborts construction.
func NewModernBackup(root string, opts ...Option) (*ModernBackup, error) {
	cfg := newConfig(opts)

	manifestPath := pathutil.ExpandHome(root + "/" + cfg.modernManifest)
	entries, err := manifestdb.Entries(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading modern manifest %s: %w", manifestPath, err)
	}

	index := pathindex.New()
	for _, e := range entries {
		index.Put(e.RelativePath, contentSubpath(e.FileID))
	}

	return &ModernBackup{
		root:   root,
		dbPath: cfg.backupDBPath,
		dbName: cfg.backupDBName,
		index:  index,
	}, nil
}

// contentSubpath places a content ID under its two-character shard
// directory. IDs shorter than two characters shard under themselves;
// real manifests carry 40-character IDs.
func contentSubpath(id string) string {
	if len(id) < 2 {
		return id + "/" + id
	}
	return id[:2] + "/" + id
}

func (b *ModernBackup) Kind() Kind { return KindModernBackup }

func (b *ModernBackup) Root() string { return b.root }

// FileCount reports how many distinct paths the manifest catalogs.
func (b *ModernBackup) FileCount() int { return b.index.Len() }

// ChatDB locates the chat database inside the backup, or "" when the
// backup never captured it.
func (b *ModernBackup) ChatDB() string {
	return b.Filename(b.dbPath + "/" + b.dbName)
}

// Filename resolves a logical path to the content file the backup
// stores it under, or "" when the manifest holds no matching suffix.
func (b *ModernBackup) Filename(path string) string {
	subpath := b.index.Lookup(path)
	if subpath == "" {
		return ""
	}
	return pathutil.ExpandHome(b.root + "/" + subpath)
}
