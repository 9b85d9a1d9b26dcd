package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func resolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "detect which storage layout a directory holds",
		ArgsUsage: "[root]",
		Flags:     layoutFlags(),
		Action:    resolveAction,
	}
}

func resolveAction(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) > 1 {
		return fmt.Errorf("resolve accepts at most one root argument")
	}

	backend, _, err := resolveStore(cmd)
	if err != nil {
		return err
	}

	out := cmd.Root().Writer
	fmt.Fprintf(out, "%s %s\n", kindBadge(backend.Kind()), backend.Root())

	db := backend.ChatDB()
	if db == "" {
		fmt.Fprintf(out, "chat db: %s\n",
			dimStyle.Render("not captured by this backup"))
		return nil
	}

	note := dimStyle.Render("(missing)")
	if info, err := os.Stat(db); err == nil {
		note = dimStyle.Render(fmt.Sprintf("(%s)", formatSize(uint64(info.Size()))))
	}
	fmt.Fprintf(out, "chat db: %s %s\n", db, note)
	return nil
}
