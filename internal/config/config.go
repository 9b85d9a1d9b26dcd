// Package config layers msgfinder configuration from defaults, an
// optional config file, and environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/msgfinder/msgfinder/internal/pathutil"
	"github.com/msgfinder/msgfinder/internal/store"
)

// DefaultBackupsDir is where device backups conventionally live.
const DefaultBackupsDir = "~/Library/Application Support/MobileSync/Backup"

// Config holds all msgfinder configuration. Path values keep their
// "~" form; expansion happens where they are used, so textual
// comparisons against user-supplied roots keep working.
type Config struct {
	// StoreRoot is resolved when no root argument is given on the
	// command line. Empty selects the live native store.
	StoreRoot string `json:"store_root,omitempty"`

	NativeRoot         string `json:"native_root,omitempty"`
	ChatDBName         string `json:"chat_db_name,omitempty"`
	BackupDBPath       string `json:"backup_db_path,omitempty"`
	BackupDBName       string `json:"backup_db_name,omitempty"`
	LegacyManifestName string `json:"legacy_manifest_name,omitempty"`
	ModernManifestName string `json:"modern_manifest_name,omitempty"`

	// BackupsDir is where the scan command enumerates device
	// backups.
	BackupsDir string `json:"backups_dir,omitempty"`

	// DataDir holds msgfinder's own files: config.json and the
	// update-check cache. Settable only via MSGFINDER_DATA_DIR;
	// the config file cannot relocate itself.
	DataDir string `json:"-"`
}

// Default returns the conventional configuration.
func Default() Config {
	return Config{
		NativeRoot:         store.DefaultNativeRoot,
		ChatDBName:         store.DefaultChatDBName,
		BackupDBPath:       store.DefaultBackupDBPath,
		BackupDBName:       store.DefaultBackupDBName,
		LegacyManifestName: store.DefaultLegacyManifestName,
		ModernManifestName: store.DefaultModernManifestName,
		BackupsDir:         DefaultBackupsDir,
		DataDir:            "~/.msgfinder",
	}
}

// Load builds a Config by layering: defaults < config file < env.
func Load() (Config, error) {
	cfg := Default()

	// The data dir decides where the config file lives, so its env
	// override must land before the file is read.
	if v := os.Getenv("MSGFINDER_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}

	if err := cfg.loadFile(); err != nil {
		return cfg, fmt.Errorf("loading config file: %w", err)
	}
	cfg.loadEnv()
	return cfg, nil
}

// ConfigPath returns the config file location.
func (c *Config) ConfigPath() string {
	return filepath.Join(pathutil.ExpandHome(c.DataDir), "config.json")
}

// CacheDir returns the expanded data directory, for components that
// keep caches there.
func (c *Config) CacheDir() string {
	return pathutil.ExpandHome(c.DataDir)
}

// StoreOptions converts the configured layout into store options.
func (c *Config) StoreOptions() []store.Option {
	return []store.Option{
		store.WithNativeRoot(c.NativeRoot),
		store.WithChatDBName(c.ChatDBName),
		store.WithBackupDBPath(c.BackupDBPath),
		store.WithBackupDBName(c.BackupDBName),
		store.WithLegacyManifestName(c.LegacyManifestName),
		store.WithModernManifestName(c.ModernManifestName),
	}
}

func (c *Config) loadFile() error {
	data, err := os.ReadFile(c.ConfigPath())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var file Config
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	c.apply(file)
	return nil
}

// apply copies every non-empty field of o over c.
func (c *Config) apply(o Config) {
	if o.StoreRoot != "" {
		c.StoreRoot = o.StoreRoot
	}
	if o.NativeRoot != "" {
		c.NativeRoot = o.NativeRoot
	}
	if o.ChatDBName != "" {
		c.ChatDBName = o.ChatDBName
	}
	if o.BackupDBPath != "" {
		c.BackupDBPath = o.BackupDBPath
	}
	if o.BackupDBName != "" {
		c.BackupDBName = o.BackupDBName
	}
	if o.LegacyManifestName != "" {
		c.LegacyManifestName = o.LegacyManifestName
	}
	if o.ModernManifestName != "" {
		c.ModernManifestName = o.ModernManifestName
	}
	if o.BackupsDir != "" {
		c.BackupsDir = o.BackupsDir
	}
}

func (c *Config) loadEnv() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.StoreRoot, "MSGFINDER_STORE_ROOT")
	set(&c.NativeRoot, "MSGFINDER_NATIVE_ROOT")
	set(&c.ChatDBName, "MSGFINDER_CHAT_DB")
	set(&c.BackupDBPath, "MSGFINDER_BACKUP_DB_PATH")
	set(&c.BackupDBName, "MSGFINDER_BACKUP_DB")
	set(&c.LegacyManifestName, "MSGFINDER_LEGACY_MANIFEST")
	set(&c.ModernManifestName, "MSGFINDER_MODERN_MANIFEST")
	set(&c.BackupsDir, "MSGFINDER_BACKUPS_DIR")
	set(&c.DataDir, "MSGFINDER_DATA_DIR")
}
