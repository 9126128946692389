package preview

import (
	"bytes"
	"encoding/binary"
)

// patchWAVSizes fixes up RIFF and chunk sizes in a WAV payload. Streamed
// recorders emit the header before the length is known, leaving the size
// fields at a placeholder (commonly 0xFFFFFFFF) or stale. The decoder trusts
// those fields, so they are rewritten from the actual byte count.
func patchWAVSizes(data []byte) []byte {
	if len(data) < 12 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return data
	}

	out := make([]byte, len(data))
	copy(out, data)

	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))

	// Walk the chunk list and clamp any declared size that runs past the
	// end of the payload.
	off := 12
	for off+8 <= len(out) {
		size := binary.LittleEndian.Uint32(out[off+4 : off+8])
		remaining := len(out) - off - 8
		if int64(size) > int64(remaining) {
			size = uint32(remaining)
			binary.LittleEndian.PutUint32(out[off+4:off+8], size)
		}
		off += 8 + int(size)
		if size%2 == 1 {
			off++ // chunks are word aligned
		}
	}

	return out
}
