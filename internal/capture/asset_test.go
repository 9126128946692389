package capture

import (
	"strings"
	"testing"
)

func TestNewAsset(t *testing.T) {
	a := newAsset([][]byte{[]byte("he"), []byte("llo")}, "audio/mpeg")

	if string(a.Bytes) != "hello" {
		t.Errorf("bytes = %q, want %q", a.Bytes, "hello")
	}
	if a.Empty() {
		t.Error("Empty() = true for non-empty asset")
	}
	if !strings.HasPrefix(a.SuggestedFilename, "recording-") {
		t.Errorf("filename %q missing recording- prefix", a.SuggestedFilename)
	}
	if !strings.HasSuffix(a.SuggestedFilename, ".mp3") {
		t.Errorf("filename %q should carry .mp3 for audio/mpeg", a.SuggestedFilename)
	}
}

func TestNewAsset_Empty(t *testing.T) {
	a := newAsset(nil, "audio/webm")
	if !a.Empty() {
		t.Error("Empty() = false for empty asset")
	}
}

func TestExtForMime(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"audio/wav", "wav"},
		{"audio/webm", "webm"},
		{"audio/webm;codecs=opus", "webm"},
		{"audio/mpeg", "mp3"},
		{"audio/ogg", "ogg"},
		{"audio/flac", "flac"},
		{"application/octet-stream", "wav"},
	}

	for _, tt := range tests {
		if got := extForMime(tt.mime); got != tt.want {
			t.Errorf("extForMime(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}
