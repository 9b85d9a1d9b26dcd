package main

import (
	"github.com/urfave/cli/v3"

	"github.com/msgfinder/msgfinder/internal/config"
	"github.com/msgfinder/msgfinder/internal/store"
)

// layoutFlags declares the per-invocation layout overrides shared by
// every store-touching command. An empty value defers to the config
// file, the environment, and finally the built-in conventions.
func layoutFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "native-root",
			Usage: "live store directory the relocated rewrite maps from",
		},
		&cli.StringFlag{
			Name:  "chat-db",
			Usage: "chat database filename in live and relocated stores",
		},
		&cli.StringFlag{
			Name:  "backup-db-path",
			Usage: "backup-relative directory holding the chat database",
		},
		&cli.StringFlag{
			Name:  "backup-db",
			Usage: "chat database filename inside backups",
		},
		&cli.StringFlag{
			Name:  "legacy-manifest",
			Usage: "binary manifest filename probed for legacy backups",
		},
		&cli.StringFlag{
			Name:  "modern-manifest",
			Usage: "SQLite manifest filename probed for modern backups",
		},
	}
}

// storeOptions layers the loaded configuration under any layout
// flags given on this invocation. Options applied later win, so the
// flag values override the config file and environment.
func storeOptions(cmd *cli.Command, cfg config.Config) []store.Option {
	return append(cfg.StoreOptions(),
		store.WithNativeRoot(cmd.String("native-root")),
		store.WithChatDBName(cmd.String("chat-db")),
		store.WithBackupDBPath(cmd.String("backup-db-path")),
		store.WithBackupDBName(cmd.String("backup-db")),
		store.WithLegacyManifestName(cmd.String("legacy-manifest")),
		store.WithModernManifestName(cmd.String("modern-manifest")),
	)
}

// resolveStore loads configuration and resolves the store for
// commands taking an optional [root] argument. An absent argument
// falls back to the configured store root, which defaults to the
// live native store.
func resolveStore(cmd *cli.Command) (store.Backend, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}

	root := cmd.Args().First()
	if root == "" {
		root = cfg.StoreRoot
	}

	backend, err := store.Resolve(root, storeOptions(cmd, cfg)...)
	if err != nil {
		return nil, cfg, err
	}
	return backend, cfg, nil
}
