package capture

import (
	"context"
	"errors"
)

// Acquisition errors. Both are terminal for the current attempt; the caller
// must re-invoke Start explicitly.
var (
	ErrPermissionDenied  = errors.New("capture permission denied")
	ErrDeviceUnavailable = errors.New("capture device unavailable")
)

// Device is the hardware input boundary. Opening a device requests exclusive
// use of it; the returned stream must be closed to release it.
type Device interface {
	// Open acquires the input device. It may suspend indefinitely waiting
	// for a permission decision; cancellation is honored via ctx.
	Open(ctx context.Context) (Stream, error)
}

// Stream is a live input stream delivering encoded audio chunks and
// frequency-domain magnitudes for level metering.
type Stream interface {
	// MimeType returns the negotiated container type of the chunks.
	MimeType() string

	// Chunks delivers encoded audio data as it is captured. The channel is
	// closed after Close, once buffered chunks have been flushed.
	Chunks() <-chan []byte

	// Magnitudes fills bins with current frequency-domain magnitudes in
	// [0,255] and returns the number of bins written. Zero means no signal
	// is available yet.
	Magnitudes(bins []float64) int

	// Active reports whether the stream is still capturing.
	Active() bool

	// Close stops capture and releases the underlying device. Safe to call
	// more than once.
	Close() error
}
