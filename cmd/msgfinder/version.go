package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/msgfinder/msgfinder/internal/config"
	"github.com/msgfinder/msgfinder/internal/update"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "show version information",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "check",
				Usage: "check GitHub for a newer release",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "ignore the cached check result",
			},
		},
		Action: versionAction,
	}
}

func versionAction(_ context.Context, cmd *cli.Command) error {
	out := cmd.Root().Writer
	fmt.Fprintf(out, "msgfinder %s (commit %s, built %s)\n",
		version, commit, buildDate)

	if !cmd.Bool("check") {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	info, err := update.New(cfg.CacheDir()).Check(version, cmd.Bool("force"))
	if err != nil {
		return err
	}
	if info == nil {
		fmt.Fprintln(out, "Up to date.")
		return nil
	}

	fmt.Fprintf(out, "Update available: %s -> %s\n",
		info.CurrentVersion, info.LatestVersion)
	if info.URL != "" {
		fmt.Fprintf(out, "  %s\n", info.URL)
	}
	return nil
}
