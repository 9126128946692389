package capture

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Asset is a finalized recording ready for submission. An asset with zero
// captured chunks has empty Bytes; producing it never fails, but submission
// rejects it downstream.
type Asset struct {
	Bytes             []byte
	MimeType          string
	SuggestedFilename string
}

// Empty reports whether the asset carries no audio data.
func (a Asset) Empty() bool {
	return len(a.Bytes) == 0
}

// newAsset concatenates the buffered chunks into a single payload.
func newAsset(chunks [][]byte, mimeType string) Asset {
	size := 0
	for _, c := range chunks {
		size += len(c)
	}

	data := make([]byte, 0, size)
	for _, c := range chunks {
		data = append(data, c...)
	}

	return Asset{
		Bytes:             data,
		MimeType:          mimeType,
		SuggestedFilename: fmt.Sprintf("recording-%s.%s", uuid.NewString(), extForMime(mimeType)),
	}
}

func extForMime(mimeType string) string {
	// Recorders often append codec parameters, e.g. "audio/webm;codecs=opus".
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	switch mimeType {
	case "audio/wav", "audio/wave", "audio/x-wav":
		return "wav"
	case "audio/webm":
		return "webm"
	case "audio/mpeg":
		return "mp3"
	case "audio/ogg":
		return "ogg"
	case "audio/flac":
		return "flac"
	default:
		return "wav"
	}
}
