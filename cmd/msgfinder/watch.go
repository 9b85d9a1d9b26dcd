package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/msgfinder/msgfinder/internal/pathutil"
	"github.com/msgfinder/msgfinder/internal/store"
	"github.com/msgfinder/msgfinder/internal/watch"
)

const watchDebounce = 500 * time.Millisecond

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "report changes to the chat database as they happen",
		ArgsUsage: "[root]",
		Flags:     layoutFlags(),
		Action:    watchAction,
	}
}

func watchAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) > 1 {
		return fmt.Errorf("watch accepts at most one root argument")
	}

	backend, cfg, err := resolveStore(cmd)
	if err != nil {
		return err
	}
	out := cmd.Root().Writer

	root := cmd.Args().First()
	if root == "" {
		root = cfg.StoreRoot
	}
	opts := storeOptions(cmd, cfg)

	// Watch the directory holding the database so WAL sidecars and
	// wholesale file replacement are both seen. Without a located
	// database, fall back to the store root.
	kind := backend.Kind()
	db := backend.ChatDB()
	dir := pathutil.ExpandHome(backend.Root())
	base := ""
	if db != "" {
		dir = filepath.Dir(db)
		base = filepath.Base(db)
	}

	// The callback runs on the watcher's single event goroutine, so
	// kind/db/base need no locking.
	w, err := watch.New(watchDebounce, func(paths []string) {
		stamp := dimStyle.Render(time.Now().Format("15:04:05"))

		probe := false
		for _, p := range paths {
			fmt.Fprintf(out, "%s  %s\n", stamp, p)
			if base == "" || !strings.HasPrefix(filepath.Base(p), base) {
				probe = true
			}
		}
		if !probe {
			return
		}

		// Something besides the database moved, so the layout itself
		// may have changed: a manifest rewritten mid-backup, or a
		// chat.db dropped into a directory that used to be a backup.
		next, err := store.Resolve(root, opts...)
		if err != nil {
			fmt.Fprintf(out, "%s  %s\n", stamp, missStyle.Render(err.Error()))
			return
		}
		if next.Kind() != kind || next.ChatDB() != db {
			kind, db = next.Kind(), next.ChatDB()
			if db != "" {
				base = filepath.Base(db)
			}
			fmt.Fprintf(out, "%s  %s %s\n", stamp, kindBadge(kind), db)
		}
	})
	if err != nil {
		return err
	}
	if err := w.Watch(dir); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s watching %s\n", kindBadge(kind), dir)

	w.Start()
	defer w.Stop()
	<-ctx.Done()
	fmt.Fprintln(out)
	return nil
}
