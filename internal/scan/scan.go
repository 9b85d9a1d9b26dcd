// Package scan discovers device backups under a MobileSync-style
// directory. Each immediate subdirectory is treated as a candidate
// backup and resolved to a storage layout; resolution failures are
// reported per backup rather than aborting the sweep.
package scan

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/msgfinder/msgfinder/internal/pathutil"
	"github.com/msgfinder/msgfinder/internal/store"
)

// resolveLimit bounds concurrent backend construction: resolving a
// backup reads and indexes its whole manifest.
const resolveLimit = 4

// Backup describes one backup directory after resolution.
type Backup struct {
	// Path is the backup directory, home-expanded.
	Path string
	// Device is the directory base name, conventionally the device
	// identifier MobileSync names backups after.
	Device string
	// Kind is the resolved layout. Empty when Err is set.
	Kind store.Kind
	// ChatDB is the located chat database, "" when the backup never
	// captured one.
	ChatDB string
	// Files counts the manifest entries indexed, for backup layouts.
	Files int
	// Err records why this directory could not be resolved.
	Err error
}

// Backups enumerates dir and resolves every subdirectory in it,
// returning one entry per backup in directory order. Hidden entries
// and plain files are skipped. The returned error covers only the
// sweep itself (unreadable dir, cancellation); per-backup failures
// land in Backup.Err.
func Backups(ctx context.Context, dir string, opts ...store.Option) ([]Backup, error) {
	expanded := pathutil.ExpandHome(dir)
	entries, err := os.ReadDir(expanded)
	if err != nil {
		return nil, fmt.Errorf("reading backups directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}

	results := make([]Backup, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveLimit)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = resolveOne(expanded+"/"+name, name, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func resolveOne(path, device string, opts []store.Option) Backup {
	b := Backup{Path: path, Device: device}

	backend, err := store.Resolve(path, opts...)
	if err != nil {
		b.Err = err
		return b
	}

	b.Kind = backend.Kind()
	b.ChatDB = backend.ChatDB()
	if counter, ok := backend.(interface{ FileCount() int }); ok {
		b.Files = counter.FileCount()
	}
	return b
}
