package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func chatdbCommand() *cli.Command {
	return &cli.Command{
		Name:      "chatdb",
		Usage:     "print the chat database path for scripting",
		ArgsUsage: "[root]",
		Flags:     layoutFlags(),
		Action:    chatdbAction,
	}
}

func chatdbAction(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) > 1 {
		return fmt.Errorf("chatdb accepts at most one root argument")
	}

	backend, _, err := resolveStore(cmd)
	if err != nil {
		return err
	}

	db := backend.ChatDB()
	if db == "" {
		return fmt.Errorf("no chat database in the %s store at %s",
			backend.Kind(), backend.Root())
	}
	fmt.Fprintln(cmd.Root().Writer, db)
	return nil
}
