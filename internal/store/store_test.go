package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNativeChatDB(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	n := NewNative()
	assert.Equal(t, KindNative, n.Kind())
	assert.Equal(t, DefaultNativeRoot, n.Root())
	assert.Equal(t, "/home/tester/Library/Messages/chat.db", n.ChatDB())
}

func TestNativeFilename(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	n := NewNative()
	tests := []struct {
		name string
		path string
		want string
	}{
		{"tilde expands", "~/Library/Messages/Attachments/ab/img.heic", "/home/tester/Library/Messages/Attachments/ab/img.heic"},
		{"absolute untouched", "/var/tmp/chat.db", "/var/tmp/chat.db"},
		{"relative untouched", "Attachments/ab/img.heic", "Attachments/ab/img.heic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The live layout never misses: every logical path
			// already is the real one.
			assert.Equal(t, tt.want, n.Filename(tt.path))
		})
	}
}

func TestNativeCustomLayout(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	n := NewNative(WithNativeRoot("~/msgstore"), WithChatDBName("messages.db"))
	assert.Equal(t, "/home/tester/msgstore/messages.db", n.ChatDB())
}

func TestRelocatedChatDB(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	r := NewRelocated("/srv/exports/messages")
	assert.Equal(t, KindRelocated, r.Kind())
	assert.Equal(t, "/srv/exports/messages", r.Root())
	assert.Equal(t, "/srv/exports/messages/chat.db", r.ChatDB())
}

func TestRelocatedFilename(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	r := NewRelocated("/srv/exports/messages")
	tests := []struct {
		name string
		path string
		want string
	}{
		{"rewrites under live root", "~/Library/Messages/Attachments/ab/cd/img.heic", "/srv/exports/messages/Attachments/ab/cd/img.heic"},
		{"live root itself is not rewritten", "~/Library/Messages", "/home/tester/Library/Messages"},
		{"expanded form is not rewritten", "/home/tester/Library/Messages/chat.db", "/home/tester/Library/Messages/chat.db"},
		{"unrelated absolute passes through", "/var/tmp/x.db", "/var/tmp/x.db"},
		{"unrelated tilde still expands", "~/Desktop/x.db", "/home/tester/Desktop/x.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Filename(tt.path))
		})
	}
}

func TestRelocatedCustomNativeRoot(t *testing.T) {
	r := NewRelocated("/backup/msg", WithNativeRoot("/opt/messages"))

	assert.Equal(t, "/backup/msg/chat.db", r.Filename("/opt/messages/chat.db"))
	assert.Equal(t, "/elsewhere/chat.db", r.Filename("/elsewhere/chat.db"))
}

func TestUnknownStoreError(t *testing.T) {
	err := fmt.Errorf("resolving: %w", &UnknownStoreError{Path: "/data/nope"})

	var ue *UnknownStoreError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "/data/nope", ue.Path)
	assert.Contains(t, err.Error(), "unknown repository: /data/nope")
}
