// Package store locates a messaging client's chat database and its
// attachment files across the four layouts they can live in: the
// live on-disk store, a relocated copy of it, and legacy or modern
// device backups.
//
// Resolve binds exactly one backend to a root path; the backend then
// answers any number of lookups against its layout.
package store

import "fmt"

// Kind identifies which layout a backend reads.
type Kind string

const (
	KindNative       Kind = "native"
	KindRelocated    Kind = "relocated"
	KindLegacyBackup Kind = "legacy-backup"
	KindModernBackup Kind = "modern-backup"
)

// Backend resolves logical store paths against one concrete layout.
//
// Filename maps a logical path, as the live client would name it, to
// the file that actually holds its content, or "" when the layout
// holds nothing for that path. Misses are ordinary control flow:
// callers probe several candidate paths in sequence.
//
// ChatDB locates the chat database itself and follows the same miss
// convention; only backup layouts can actually miss.
type Backend interface {
	Kind() Kind
	Root() string
	ChatDB() string
	Filename(path string) string
}

// Conventional layout of the message store and its backups. All of
// these can be overridden per resolve.
const (
	DefaultNativeRoot         = "~/Library/Messages"
	DefaultChatDBName         = "chat.db"
	DefaultBackupDBPath       = "Library/SMS"
	DefaultBackupDBName       = "sms.db"
	DefaultLegacyManifestName = "Manifest.mbdb"
	DefaultModernManifestName = "Manifest.db"
)

type config struct {
	nativeRoot     string
	chatDBName     string
	backupDBPath   string
	backupDBName   string
	legacyManifest string
	modernManifest string
}

func newConfig(opts []Option) config {
	cfg := config{
		nativeRoot:     DefaultNativeRoot,
		chatDBName:     DefaultChatDBName,
		backupDBPath:   DefaultBackupDBPath,
		backupDBName:   DefaultBackupDBName,
		legacyManifest: DefaultLegacyManifestName,
		modernManifest: DefaultModernManifestName,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option overrides one conventional path or filename. Empty values
// are ignored, so flag and config plumbing can pass values through
// without checking them first.
type Option func(*config)

// WithNativeRoot overrides the conventional live store root.
func WithNativeRoot(path string) Option {
	return func(c *config) {
		if path != "" {
			c.nativeRoot = path
		}
	}
}

// WithChatDBName overrides the chat database filename used by the
// live and relocated layouts.
func WithChatDBName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.chatDBName = name
		}
	}
}

// WithBackupDBPath overrides the store directory path inside a
// device backup.
func WithBackupDBPath(path string) Option {
	return func(c *config) {
		if path != "" {
			c.backupDBPath = path
		}
	}
}

// WithBackupDBName overrides the chat database filename inside a
// device backup.
func WithBackupDBName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.backupDBName = name
		}
	}
}

// WithLegacyManifestName overrides the legacy manifest filename.
func WithLegacyManifestName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.legacyManifest = name
		}
	}
}

// WithModernManifestName overrides the modern manifest filename.
func WithModernManifestName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.modernManifest = name
		}
	}
}

// UnknownStoreError reports a root that matches none of the known
// layouts.
type UnknownStoreError struct {
	Path string
}

func (e *UnknownStoreError) Error() string {
	return fmt.Sprintf("unknown repository: %s", e.Path)
}
