package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeModernBackup creates a backup root holding a Manifest.db with
// the given (fileID, relativePath) rows. A nil column value becomes
// NULL.
func writeModernBackup(t *testing.T, rows [][2]any) string {
	t.Helper()
	root := t.TempDir()

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

func TestModernBackupChatDB(t *testing.T) {
	root := writeModernBackup(t, [][2]any{
		{smsDBFileID, "Library/SMS/sms.db"},
		{"ab34cd56ef780912ab34cd56ef780912ab34cd56", "Library/SMS/Attachments/ab/cd/photo.heic"},
	})

	backend, err := NewModernBackup(root)
	require.NoError(t, err)

	assert.Equal(t, KindModernBackup, backend.Kind())
	assert.Equal(t, root, backend.Root())
	assert.Equal(t, root+"/3d/"+smsDBFileID, backend.ChatDB())
}

func TestModernBackupFilename(t *testing.T) {
	root := writeModernBackup(t, [][2]any{
		{smsDBFileID, "Library/SMS/sms.db"},
		{"ab34cd56ef780912ab34cd56ef780912ab34cd56", "Library/SMS/Attachments/ab/cd/photo.heic"},
	})

	backend, err := NewModernBackup(root)
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"relative store path", "Library/SMS/sms.db", root + "/3d/" + smsDBFileID},
		{"device absolute path", "/var/mobile/Library/SMS/Attachments/ab/cd/photo.heic", root + "/ab/ab34cd56ef780912ab34cd56ef780912ab34cd56"},
		{"not in backup", "Library/SMS/other.db", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, backend.Filename(tt.path))
		})
	}
}

func TestModernBackupSkipsNullPaths(t *testing.T) {
	root := writeModernBackup(t, [][2]any{
		{smsDBFileID, "Library/SMS/sms.db"},
		{"ffffffffffffffffffffffffffffffffffffffff", nil},
	})

	backend, err := NewModernBackup(root)
	require.NoError(t, err)

	assert.Equal(t, 1, backend.FileCount())
	assert.Equal(t, root+"/3d/"+smsDBFileID, backend.ChatDB())
}

func TestModernBackupWithoutChatDB(t *testing.T) {
	root := writeModernBackup(t, [][2]any{
		{"ab34cd56ef780912ab34cd56ef780912ab34cd56", "Library/Notes/notes.sqlite"},
	})

	backend, err := NewModernBackup(root)
	require.NoError(t, err)
	assert.Equal(t, "", backend.ChatDB())
}

func TestModernBackupMissingManifest(t *testing.T) {
	_, err := NewModernBackup(t.TempDir())
	require.Error(t, err)
}

func TestModernBackupGarbageManifest(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Manifest.db"), []byte("mbdb\x05\x00"), 0o644))

	_, err := NewModernBackup(root)
	require.Error(t, err)
}
