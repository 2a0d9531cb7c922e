package utils

import (
	"bytes"
	"errors"
)

// WriterFileRecorder provides a stub for a log file which records what is written to it in memory. It allows us to
// use a log writer to prepare a buffer which can then be used by ReaderFileLoop or bytes.Reader to serve read
// requests.
//
// FailAfter makes writes fail once the recorder holds that many bytes. The write which crosses the limit is applied
// partially, which simulates a torn frame. Zero disables failures. SyncErr is returned by every Sync when set.
type WriterFileRecorder struct {
	bytes.Buffer

	FailAfter int
	SyncErr   error
	Syncs     int
}

// ErrRecorderFull is returned by WriterFileRecorder when FailAfter is reached.
var ErrRecorderFull = errors.New("recorder is full")

func (s *WriterFileRecorder) Write(p []byte) (int, error) {
	if s.FailAfter == 0 || s.Len()+len(p) <= s.FailAfter {
		return s.Buffer.Write(p)
	}
	n, _ := s.Buffer.Write(p[:max(s.FailAfter-s.Len(), 0)])
	return n, ErrRecorderFull
}

func (s *WriterFileRecorder) Close() error {
	return nil
}

func (s *WriterFileRecorder) Sync() error {
	s.Syncs++
	return s.SyncErr
}

func (s *WriterFileRecorder) Name() string {
	return "in-memory-recorder"
}

func (s *WriterFileRecorder) Truncate(size int64) error {
	s.Buffer.Truncate(int(size))
	return nil
}
