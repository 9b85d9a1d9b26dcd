package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = ""
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "msgfinder",
		Usage:   "locate the Messages chat database across live stores and device backups",
		Version: version,
		Commands: []*cli.Command{
			resolveCommand(),
			chatdbCommand(),
			locateCommand(),
			backupsCommand(),
			infoCommand(),
			watchCommand(),
			versionCommand(),
		},
	}
}
