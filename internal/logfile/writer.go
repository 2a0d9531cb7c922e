package logfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/backbone81/walkv/internal/utils"
)

// WriterFile is an interface which needs to be implemented by the file to append to.
type WriterFile interface {
	io.WriteCloser
	Sync() error
	Truncate(size int64) error
	Name() string
}

// Writer appends frames to the log file. It never seeks and never rewrites bytes of complete frames.
//
// Instances of Writer are NOT safe to use concurrently. You need to provide external synchronization.
type Writer struct {
	noCopy utils.NoCopy

	// The file the writer is appending to.
	file WriterFile

	// The size of the log in bytes. Every append starts at this offset.
	offset int64

	// The policy describing how data is flushed to disk.
	syncPolicy SyncPolicy
}

// WriterOption describes the function signature which all writer options need to implement.
type WriterOption func(w *Writer)

// WithSyncPolicy overwrites the default sync policy.
func WithSyncPolicy(syncPolicy SyncPolicy) WriterOption {
	return func(w *Writer) {
		w.syncPolicy = syncPolicy
	}
}

// WithSyncPolicyNone overwrites the default sync policy with sync policy none.
func WithSyncPolicyNone() WriterOption {
	return WithSyncPolicy(NewSyncPolicyNone())
}

// WithSyncPolicyImmediate overwrites the default sync policy with sync policy immediate.
func WithSyncPolicyImmediate() WriterOption {
	return WithSyncPolicy(NewSyncPolicyImmediate())
}

// OpenWriter opens the log file for appending and creates it if it does not exist.
//
// validSize is the size of the log up to the end of its last complete frame, as reported by Reader.Offset. Bytes
// beyond validSize are the remains of an interrupted append and are cut off before anything new is appended. Use
// Reader.ToWriter instead of calling this directly on an existing log.
func OpenWriter(filePath string, validSize int64, options ...WriterOption) (*Writer, error) {
	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o664) //nolint:gosec // We can not validate paths in a library.
	if err != nil {
		return nil, fmt.Errorf("%w: opening log file %q for appending: %w", ErrIO, filePath, err)
	}

	writer, err := openWriter(file, validSize, options...)
	if err != nil {
		if closeErr := file.Close(); closeErr != nil {
			return nil, errors.Join(err, closeErr)
		}
		return nil, err
	}
	return writer, nil
}

func openWriter(file *os.File, validSize int64, options ...WriterOption) (*Writer, error) {
	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: reading size of log file %q: %w", ErrIO, file.Name(), err)
	}
	if fileInfo.Size() < validSize {
		return nil, fmt.Errorf("%w: log file %q shrank from %d to %d bytes", ErrIO, file.Name(), validSize, fileInfo.Size())
	}
	if fileInfo.Size() > validSize {
		if err := file.Truncate(validSize); err != nil {
			return nil, fmt.Errorf("%w: removing incomplete tail of log file %q: %w", ErrIO, file.Name(), err)
		}
		TornTailTruncationsTotal.Inc()
	}
	return NewWriter(file, validSize, options...)
}

// NewWriter creates a Writer from a file which is already open and positioned at its end.
func NewWriter(file WriterFile, offset int64, options ...WriterOption) (*Writer, error) {
	newWriter := Writer{
		file:       file,
		offset:     offset,
		syncPolicy: NewSyncPolicyNone(),
	}
	for _, option := range options {
		option(&newWriter)
	}
	if err := newWriter.syncPolicy.Startup(file); err != nil {
		return nil, err
	}
	return &newWriter, nil
}

// FilePath returns the file path of the file this writer is appending to.
func (w *Writer) FilePath() string {
	return w.file.Name()
}

// Offset returns the size of the log in bytes.
func (w *Writer) Offset() int64 {
	return w.offset
}

// AppendFrame appends the encoded frame to the log with a single write. The frame is considered durable once the sync
// policy returned without error.
//
// An error from the sync policy is returned as ErrIO, but the frame has been written already and stays in the log. It
// is read again on the next replay.
//
// When the write fails after some bytes made it into the file, those bytes are removed again. This keeps the log
// readable for frames appended later on.
func (w *Writer) AppendFrame(data []byte) error {
	start := time.Now()

	n, err := w.file.Write(data)
	if err != nil {
		err = fmt.Errorf("%w: appending frame to log file %q: %w", ErrIO, w.file.Name(), err)
		if n > 0 {
			if truncateErr := w.file.Truncate(w.offset); truncateErr != nil {
				err = errors.Join(err, fmt.Errorf("removing partial frame: %w", truncateErr))
			}
		}
		return err
	}
	w.offset += int64(n)

	if err := w.syncPolicy.FrameAppended(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	FramesAppendedTotal.Inc()
	BytesAppendedTotal.Add(float64(n))
	AppendDuration.Observe(time.Since(start).Seconds())
	return nil
}

// Close flushes all pending changes to disk according to the sync policy and closes the file.
func (w *Writer) Close() error {
	syncErr := w.syncPolicy.Shutdown()
	closeErr := w.file.Close()
	if err := errors.Join(syncErr, closeErr); err != nil {
		return fmt.Errorf("%w: closing log file: %w", ErrIO, err)
	}
	return nil
}
