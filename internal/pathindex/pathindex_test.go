package pathindex

import "testing"

func TestLookup(t *testing.T) {
	ix := New()
	ix.Put("Library/SMS/sms.db", "ID1")
	ix.Put("Library/SMS/Attachments/ab/cd/audio.amr", "ID2")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"exact", "Library/SMS/sms.db", "ID1"},
		{"absolute with extra components", "/var/mobile/Library/SMS/sms.db", "ID1"},
		{"relative with extra components", "private/var/mobile/Library/SMS/sms.db", "ID1"},
		{"deeper stored path", "/var/mobile/Library/SMS/Attachments/ab/cd/audio.amr", "ID2"},
		{"same directory different file", "Library/SMS/other.db", ""},
		{"partial component is not a boundary", "XLibrary/SMS/sms.db", ""},
		{"stored path longer than query", "sms.db", ""},
		{"empty query", "", ""},
		{"bare slash", "/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ix.Lookup(tt.path); got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLookupLongestSuffixWins(t *testing.T) {
	ix := New()
	ix.Put("sms.db", "SHORT")
	ix.Put("SMS/sms.db", "LONG")

	if got := ix.Lookup("/var/mobile/Library/SMS/sms.db"); got != "LONG" {
		t.Errorf("Lookup = %q, want the longer stored suffix to win", got)
	}
	// Once no longer suffix matches, the shorter entry is still
	// reachable on its own.
	if got := ix.Lookup("elsewhere/sms.db"); got != "SHORT" {
		t.Errorf("Lookup = %q, want %q", got, "SHORT")
	}
}

func TestLookupStripsOnlyLeadingSlash(t *testing.T) {
	ix := New()
	ix.Put("abs/path.db", "A")

	// The first candidate for an absolute query is the whole path
	// minus its leading slash, so this must hit immediately even
	// though "/abs/path.db" contains no other component boundary
	// producing an 11-character suffix.
	if got := ix.Lookup("/abs/path.db"); got != "A" {
		t.Errorf("Lookup = %q, want %q", got, "A")
	}
}

func TestPutOverwrites(t *testing.T) {
	ix := New()
	ix.Put("Library/SMS/sms.db", "OLD")
	ix.Put("Library/SMS/sms.db", "NEW")

	if got := ix.Lookup("Library/SMS/sms.db"); got != "NEW" {
		t.Errorf("Lookup = %q, want %q", got, "NEW")
	}
	if n := ix.Len(); n != 1 {
		t.Errorf("Len = %d, want 1", n)
	}
}

func TestLen(t *testing.T) {
	ix := New()
	if n := ix.Len(); n != 0 {
		t.Errorf("Len of empty index = %d, want 0", n)
	}
	ix.Put("a.db", "1")
	ix.Put("bb.db", "2")
	ix.Put("cc.db", "3") // same length bucket as bb.db
	if n := ix.Len(); n != 3 {
		t.Errorf("Len = %d, want 3", n)
	}
}

func TestLookupMultibytePaths(t *testing.T) {
	ix := New()
	ix.Put("Média/Füße.db", "M1")

	if got := ix.Lookup("/home/üser/Média/Füße.db"); got != "M1" {
		t.Errorf("Lookup = %q, want %q", got, "M1")
	}
}
