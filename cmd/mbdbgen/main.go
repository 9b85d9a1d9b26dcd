// Command mbdbgen builds a synthetic legacy device backup from a
// JSON description: a Manifest.mbdb plus the content files it
// catalogs, each named by its computed ID. Handy for trying the
// resolver and locate commands without a real backup on hand.
//
// The description looks like:
//
//	{
//	  "files": [
//	    {"domain": "HomeDomain", "path": "Library/SMS/sms.db",
//	     "content": "not really sqlite"},
//	    {"path": "Library/SMS/Attachments/a.heic", "mode": 420}
//	  ]
//	}
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/msgfinder/msgfinder/internal/mbdb"
	"github.com/msgfinder/msgfinder/internal/mbdbtest"
)

func main() {
	out := flag.String("out", "", "backup directory to create")
	desc := flag.String("desc", "", "JSON description of the backup")
	flag.Parse()
	if *out == "" || *desc == "" {
		fmt.Fprintln(os.Stderr, "usage: mbdbgen -out <dir> -desc <file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(*desc)
	if err != nil {
		log.Fatalf("reading description: %v", err)
	}
	if !gjson.ValidBytes(data) {
		log.Fatalf("description %s is not valid JSON", *desc)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatalf("creating backup dir: %v", err)
	}

	count, err := generate(*out, data)
	if err != nil {
		log.Fatalf("generating backup: %v", err)
	}
	fmt.Printf("Backup written to %s (%d files)\n", *out, count)
}

func generate(dir string, data []byte) (int, error) {
	files := gjson.GetBytes(data, "files").Array()
	if len(files) == 0 {
		return 0, fmt.Errorf("description has no files")
	}

	b := mbdbtest.New()
	count := 0
	for i, f := range files {
		path := f.Get("path").Str
		if path == "" {
			return count, fmt.Errorf("files[%d] has no path", i)
		}
		domain := f.Get("domain").Str
		if domain == "" {
			domain = "HomeDomain"
		}

		content := []byte(f.Get("content").Str)
		opts := []mbdbtest.FileOption{
			mbdbtest.WithLength(uint64(len(content))),
		}
		if mode := f.Get("mode").Int(); mode != 0 {
			opts = append(opts, mbdbtest.WithMode(uint16(mode)))
		}
		b.AddFile(domain, path, opts...)

		id := mbdb.ContentID(domain, path)
		if err := os.WriteFile(
			filepath.Join(dir, id), content, 0o644,
		); err != nil {
			return count, fmt.Errorf("writing content for %s: %w", path, err)
		}

		fmt.Printf("  %s %s -> %s\n", domain, path, id)
		count++
	}

	if err := os.WriteFile(
		filepath.Join(dir, "Manifest.mbdb"), b.Bytes(), 0o644,
	); err != nil {
		return count, fmt.Errorf("writing manifest: %w", err)
	}
	return count, nil
}
