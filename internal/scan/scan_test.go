package scan

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msgfinder/msgfinder/internal/mbdb"
	"github.com/msgfinder/msgfinder/internal/mbdbtest"
	"github.com/msgfinder/msgfinder/internal/store"
)

const smsDBFileID = "3d0d7e5fb2ce288813306e4d4636395e047a3d28"

// writeLegacyBackup creates a backup directory under dir holding a
// binary manifest with the given backed-up paths.
func writeLegacyBackup(t *testing.T, dir, device string, paths ...string) string {
	t.Helper()
	root := filepath.Join(dir, device)
	require.NoError(t, os.Mkdir(root, 0o755))

	b := mbdbtest.New()
	for _, p := range paths {
		b.AddFile("HomeDomain", p)
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "Manifest.mbdb"), b.Bytes(), 0o644))
	return root
}

// writeModernBackup creates a backup directory under dir holding a
// Manifest.db with the given (fileID, relativePath) rows.
func writeModernBackup(t *testing.T, dir, device string, rows [][2]string) string {
	t.Helper()
	root := filepath.Join(dir, device)
	require.NoError(t, os.Mkdir(root, 0o755))

	db, err := sql.Open("sqlite3", filepath.Join(root, "Manifest.db"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE Files (
		fileID TEXT,
		domain TEXT,
		relativePath TEXT,
		flags INTEGER,
		file BLOB
	)`)
	require.NoError(t, err)

	for _, row := range rows {
		_, err = db.Exec(
			"INSERT INTO Files (fileID, domain, relativePath, flags) VALUES (?, 'HomeDomain', ?, 1)",
			row[0], row[1],
		)
		require.NoError(t, err)
	}
	return root
}

func TestBackups(t *testing.T) {
	dir := t.TempDir()

	reloc := filepath.Join(dir, "00-relocated")
	require.NoError(t, os.Mkdir(reloc, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(reloc, "chat.db"), []byte("sqlite"), 0o644))

	legacyRoot := writeLegacyBackup(t, dir, "11111111222233334444555566667777888899aa",
		"Library/SMS/sms.db", "Library/SMS/Attachments/photo.heic")

	modernRoot := writeModernBackup(t, dir, "bbbbbbbb222233334444555566667777888899aa",
		[][2]string{{smsDBFileID, "Library/SMS/sms.db"}})

	require.NoError(t, os.Mkdir(filepath.Join(dir, "zz-empty"), 0o755))

	// Entries a sweep must ignore: hidden directories and plain files.
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".Trashes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Info.plist"), []byte("<plist/>"), 0o644))

	got, err := Backups(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "00-relocated", got[0].Device)
	assert.Equal(t, store.KindRelocated, got[0].Kind)
	assert.Equal(t, reloc+"/chat.db", got[0].ChatDB)
	assert.NoError(t, got[0].Err)

	assert.Equal(t, store.KindLegacyBackup, got[1].Kind)
	assert.Equal(t, legacyRoot, got[1].Path)
	assert.Equal(t, 2, got[1].Files)
	assert.Equal(t, legacyRoot+"/"+smsDBFileID, got[1].ChatDB)

	assert.Equal(t, store.KindModernBackup, got[2].Kind)
	assert.Equal(t, 1, got[2].Files)
	assert.Equal(t, modernRoot+"/3d/"+smsDBFileID, got[2].ChatDB)

	assert.Equal(t, "zz-empty", got[3].Device)
	require.Error(t, got[3].Err)
	var unknown *store.UnknownStoreError
	require.ErrorAs(t, got[3].Err, &unknown)
	assert.Equal(t, filepath.Join(dir, "zz-empty"), unknown.Path)
}

func TestBackupsBrokenManifest(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "aaaa")
	require.NoError(t, os.Mkdir(broken, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(broken, "Manifest.mbdb"), []byte("not a manifest"), 0o644))

	writeLegacyBackup(t, dir, "cccc", "Library/SMS/sms.db")

	got, err := Backups(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.ErrorIs(t, got[0].Err, mbdb.ErrFormat)
	assert.Empty(t, got[0].Kind)

	assert.NoError(t, got[1].Err)
	assert.Equal(t, store.KindLegacyBackup, got[1].Kind)
}

func TestBackupsCustomLayout(t *testing.T) {
	dir := t.TempDir()

	reloc := filepath.Join(dir, "copy")
	require.NoError(t, os.Mkdir(reloc, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(reloc, "messages.db"), []byte("sqlite"), 0o644))

	got, err := Backups(context.Background(), dir, store.WithChatDBName("messages.db"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, store.KindRelocated, got[0].Kind)
	assert.Equal(t, reloc+"/messages.db", got[0].ChatDB)
}

func TestBackupsEmptyDir(t *testing.T) {
	got, err := Backups(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBackupsMissingDir(t *testing.T) {
	_, err := Backups(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestBackupsCancelled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "aaaa"), 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Backups(ctx, dir)
	require.ErrorIs(t, err, context.Canceled)
}
