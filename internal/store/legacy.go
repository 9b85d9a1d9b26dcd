package store

import (
	"fmt"
	"os"

	"github.com/msgfinder/msgfinder/internal/mbdb"
	"github.com/msgfinder/msgfinder/internal/pathindex"
	"github.com/msgfinder/msgfinder/internal/pathutil"
)

// LegacyBackup reads a device backup cataloged by the binary
// Manifest.mbdb format. Content files sit flat in the backup root,
// named by the SHA1-derived ID of their domain and path.
type LegacyBackup struct {
	root     string
	dbPath   string
	dbName   string
	manifest *mbdb.Manifest
	index    *pathindex.Index
}

// NewLegacyBackup reads and parses the backup's manifest and builds
// the lookup index. Any failure aborts construction: a backend with
// a partial index would silently mis-resolve paths.
func NewLegacyBackup(root string, opts ...Option) (*LegacyBackup, error) {
	cfg := newConfig(opts)

	manifestPath := pathutil.ExpandHome(root + "/" + cfg.legacyManifest)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading legacy manifest: %w", err)
	}
	manifest, err := mbdb.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifestPath, err)
	}

	index := pathindex.New()
	for _, rec := range manifest.Records() {
		index.Put(rec.Path, rec.FileID)
	}

	return &LegacyBackup{
		root:     root,
		dbPath:   cfg.backupDBPath,
		dbName:   cfg.backupDBName,
		manifest: manifest,
		index:    index,
	}, nil
}

func (b *LegacyBackup) Kind() Kind { return KindLegacyBackup }

func (b *LegacyBackup) Root() string { return b.root }

// Manifest exposes the parsed manifest for inspection.
func (b *LegacyBackup) Manifest() *mbdb.Manifest { return b.manifest }

// FileCount reports how many distinct paths the manifest catalogs.
func (b *LegacyBackup) FileCount() int { return b.index.Len() }

// ChatDB locates the chat database inside the backup, or "" when the
// backup never captured it.
func (b *LegacyBackup) ChatDB() string {
	return b.Filename(b.dbPath + "/" + b.dbName)
}

// Filename resolves a logical path to the content file the backup
// stores it under, or "" when the manifest holds no matching suffix.
func (b *LegacyBackup) Filename(path string) string {
	id := b.index.Lookup(path)
	if id == "" {
		return ""
	}
	return pathutil.ExpandHome(b.root + "/" + id)
}
