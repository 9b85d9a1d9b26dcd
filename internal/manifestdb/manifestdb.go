// Package manifestdb reads the file table of a modern backup
// manifest, a SQLite database conventionally named Manifest.db.
package manifestdb

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one usable row of the manifest's Files table.
type Entry struct {
	FileID       string
	RelativePath string
}

// makeDSN builds a strictly read-only SQLite connection string. A
// backup manifest is someone else's data: nothing here may write to
// it, and opening must fail rather than create a missing file.
func makeDSN(path string) string {
	params := url.Values{}
	params.Set("mode", "ro")
	params.Set("_busy_timeout", "5000")
	return path + "?" + params.Encode()
}

// Entries returns the (relativePath, fileID) pairs of every file row
// carrying both columns. Rows with a NULL path or ID are skipped:
// they describe content the backup cannot address by path.
func Entries(path string) ([]Entry, error) {
	db, err := sql.Open("sqlite3", makeDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT relativePath, fileID FROM Files")
	if err != nil {
		return nil, fmt.Errorf("querying file table: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var relPath, fileID sql.NullString
		if err := rows.Scan(&relPath, &fileID); err != nil {
			return nil, fmt.Errorf("scanning file row: %w", err)
		}
		if !relPath.Valid || !fileID.Valid {
			continue
		}
		entries = append(entries, Entry{
			FileID:       fileID.String,
			RelativePath: relPath.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading file table: %w", err)
	}
	return entries, nil
}
