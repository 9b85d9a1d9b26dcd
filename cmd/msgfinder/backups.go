package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/msgfinder/msgfinder/internal/config"
	"github.com/msgfinder/msgfinder/internal/pathutil"
	"github.com/msgfinder/msgfinder/internal/scan"
	"github.com/msgfinder/msgfinder/internal/store"
)

func backupsCommand() *cli.Command {
	return &cli.Command{
		Name:      "backups",
		Aliases:   []string{"scan"},
		Usage:     "list device backups under the MobileSync directory",
		ArgsUsage: "[dir]",
		Flags:     layoutFlags(),
		Action:    backupsAction,
	}
}

func backupsAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) > 1 {
		return fmt.Errorf("backups accepts at most one directory argument")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dir := cmd.Args().First()
	if dir == "" {
		dir = cfg.BackupsDir
	}

	found, err := scan.Backups(ctx, dir, storeOptions(cmd, cfg)...)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	if len(found) == 0 {
		fmt.Fprintf(out, "no backups in %s\n", pathutil.ExpandHome(dir))
		return nil
	}

	for _, b := range found {
		if b.Err != nil {
			fmt.Fprintf(out, "%s %s  %s\n",
				kindBadge("unknown"), b.Device,
				dimStyle.Render(b.Err.Error()))
			continue
		}

		line := fmt.Sprintf("%s %s", kindBadge(b.Kind), b.Device)
		if b.Files > 0 {
			line += fmt.Sprintf("  %d files", b.Files)
		}
		switch {
		case b.ChatDB != "":
			line += dimStyle.Render("  chat db present")
		case b.Kind == store.KindLegacyBackup || b.Kind == store.KindModernBackup:
			line += dimStyle.Render("  no chat db")
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
