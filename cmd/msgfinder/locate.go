package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/msgfinder/msgfinder/internal/config"
	"github.com/msgfinder/msgfinder/internal/store"
)

func locateCommand() *cli.Command {
	return &cli.Command{
		Name:      "locate",
		Usage:     "map logical message-store paths to their on-disk files",
		ArgsUsage: "<path> [path...]",
		Flags: append(layoutFlags(),
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "store root to resolve against (default: the live store)",
			},
		),
		Action: locateAction,
	}
}

func locateAction(_ context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("locate requires at least one path argument")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	root := cmd.String("root")
	if root == "" {
		root = cfg.StoreRoot
	}

	backend, err := store.Resolve(root, storeOptions(cmd, cfg)...)
	if err != nil {
		return err
	}

	// Found paths go to stdout one per line so the output pipes
	// cleanly; misses go to stderr.
	missing := 0
	for _, p := range paths {
		resolved := backend.Filename(p)
		if resolved == "" {
			missing++
			fmt.Fprintf(cmd.Root().ErrWriter, "%s %s\n",
				missStyle.Render("not found:"), p)
			continue
		}
		fmt.Fprintln(cmd.Root().Writer, resolved)
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d path(s) not found", missing, len(paths))
	}
	return nil
}
