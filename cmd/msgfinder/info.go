package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/disk"
	"github.com/urfave/cli/v3"

	"github.com/msgfinder/msgfinder/internal/pathutil"
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "show the resolved store, its statistics, and volume usage",
		ArgsUsage: "[root]",
		Flags:     layoutFlags(),
		Action:    infoAction,
	}
}

func infoAction(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) > 1 {
		return fmt.Errorf("info accepts at most one root argument")
	}

	backend, cfg, err := resolveStore(cmd)
	if err != nil {
		return err
	}
	out := cmd.Root().Writer

	fmt.Fprintln(out, headingStyle.Render("Store"))
	fmt.Fprintf(out, "  layout:  %s\n", kindBadge(backend.Kind()))
	fmt.Fprintf(out, "  root:    %s\n", backend.Root())

	// The volume probe needs a path that exists: the database when
	// present, otherwise the store root itself.
	volPath := pathutil.ExpandHome(backend.Root())
	db := backend.ChatDB()
	if db == "" {
		fmt.Fprintf(out, "  chat db: %s\n", dimStyle.Render("not captured"))
	} else {
		note := dimStyle.Render("(missing)")
		if st, err := os.Stat(db); err == nil {
			note = dimStyle.Render(fmt.Sprintf("(%s)", formatSize(uint64(st.Size()))))
			volPath = filepath.Dir(db)
		}
		fmt.Fprintf(out, "  chat db: %s %s\n", db, note)
	}
	if counter, ok := backend.(interface{ FileCount() int }); ok {
		fmt.Fprintf(out, "  files:   %d indexed\n", counter.FileCount())
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, headingStyle.Render("Volume"))
	if usage, err := disk.Usage(volPath); err == nil {
		fmt.Fprintf(out, "  path:    %s\n", usage.Path)
		fmt.Fprintf(out, "  free:    %s of %s (%.0f%% used)\n",
			formatSize(usage.Free), formatSize(usage.Total),
			usage.UsedPercent)
	} else {
		fmt.Fprintf(out, "  %s\n", dimStyle.Render("unavailable: "+err.Error()))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, headingStyle.Render("Config"))
	path := cfg.ConfigPath()
	note := ""
	if _, err := os.Stat(path); err != nil {
		note = " " + dimStyle.Render("(absent)")
	}
	fmt.Fprintf(out, "  file:    %s%s\n", path, note)
	fmt.Fprintf(out, "  backups: %s\n", cfg.BackupsDir)
	return nil
}
