package capture

import "time"

// finalize turns the buffered chunks into an asset and releases the input
// device. Exactly one asset is delivered and the stream is closed exactly
// once, whichever path runs.
//
// The normal path closes the stream and waits for the chunk channel to
// drain, which flushes the encoder's trailing data. If the stream never
// became active the close would produce nothing, so a short grace period is
// observed first and whatever was buffered is used as-is.
func (s *Session) finalize(stream Stream, drained <-chan struct{}) {
	release := func() {
		s.release.Do(func() {
			// Errors on release are unrecoverable and the buffered audio is
			// still usable, so they are dropped.
			_ = stream.Close()
		})
	}

	if !stream.Active() {
		time.Sleep(s.cfg.GracePeriod)
	}
	release()
	<-drained

	s.mu.Lock()
	asset := newAsset(s.chunks, stream.MimeType())
	s.chunks = nil
	s.stream = nil
	s.state = Idle
	cb := s.onComplete
	s.mu.Unlock()

	recordingSlot.Store(false)

	if cb != nil {
		cb(asset)
	}
}
