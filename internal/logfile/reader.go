package logfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/backbone81/walkv/internal/encoding"
	"github.com/backbone81/walkv/internal/utils"
)

// ReaderFile is an interface which needs to be implemented by the file to read from.
type ReaderFile interface {
	io.ReadCloser
	Name() string
}

// Reader scans the log file frame by frame from its start.
//
// Instances of this struct are NOT safe for concurrent use. Either use it on a single Go routine or provide your own
// external synchronization.
type Reader struct {
	noCopy utils.NoCopy

	// The log file to read from.
	file ReaderFile

	// The total size of the file in bytes. This is used together with offset to calculate the available data until
	// the end of file. This helps with avoiding large memory allocations with malformed length prefixes.
	fileSize int64

	// The offset in bytes right after the last complete frame.
	offset int64

	// The offset in bytes where the frame returned by Value starts.
	frameOffset int64

	// The buffer to hold the frame body. Keys and values of the returned frame point into it.
	data []byte

	// The frame the reader returns. Only contains useful data if Next returned true.
	value encoding.Frame

	// Set when the end of the log was reached or an error occurred.
	done bool

	// The error which stopped the reader. It stays nil on a clean end of the log.
	err error
}

// OpenReader opens the log file at the given path for reading from its start. An error wrapping fs.ErrNotExist is
// returned when there is no such file.
//
// To avoid resources leaking, the returned Reader needs to be closed by calling Close() or converted with ToWriter().
func OpenReader(filePath string) (*Reader, error) {
	file, err := os.Open(filePath) //nolint:gosec // We can not validate paths in a library.
	if err != nil {
		return nil, fmt.Errorf("%w: opening log file %q: %w", ErrIO, filePath, err)
	}

	fileInfo, err := file.Stat()
	if err != nil {
		err = fmt.Errorf("%w: reading size of log file %q: %w", ErrIO, filePath, err)
		if closeErr := file.Close(); closeErr != nil {
			return nil, errors.Join(err, closeErr)
		}
		return nil, err
	}
	return NewReader(file, fileInfo.Size()), nil
}

// NewReader creates a Reader for a file which is already open and positioned at its start.
func NewReader(file ReaderFile, fileSize int64) *Reader {
	return &Reader{
		file:     file,
		fileSize: fileSize,
		data:     make([]byte, 4*1024), // Pre-allocate the data slice to reduce the number of allocations.
	}
}

// FilePath returns the file path of the file this reader is reading from.
func (r *Reader) FilePath() string {
	return r.file.Name()
}

// Offset returns the offset in bytes right after the last complete frame. After the end of the log was reached, this
// is the size of the valid part of the log.
func (r *Reader) Offset() int64 {
	return r.offset
}

// FrameOffset returns the offset in bytes where the frame returned by Value starts.
func (r *Reader) FrameOffset() int64 {
	return r.frameOffset
}

// TailLength returns the number of bytes after the last complete frame. It is only meaningful after Next returned
// false without error. A non-zero tail is the length prefix of an interrupted append.
func (r *Reader) TailLength() int64 {
	return max(r.fileSize-r.offset, 0)
}

// Next reports if a frame has been successfully read. When it returns true, Value() contains valid data. When it
// returns false, Err() is nil if the reader has reached the clean end of the log, or it returns the error which
// stopped the reader. Once Next returned false, it keeps returning false.
func (r *Reader) Next() bool {
	if r.done {
		return false
	}

	frameOffset := r.offset
	frame, err := r.next()
	if err != nil {
		r.done = true
		r.value = encoding.Frame{}
		if !errors.Is(err, errEndOfLog) {
			r.err = err
		}
		return false
	}

	r.value = frame
	r.frameOffset = frameOffset
	FramesReadTotal.Inc()
	return true
}

func (r *Reader) next() (encoding.Frame, error) {
	// Read the length prefix. Fewer bytes than a full prefix mark the end of the log.
	if _, err := io.ReadFull(r.file, r.data[:encoding.LengthPrefixSize]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return encoding.Frame{}, errEndOfLog
		}
		return encoding.Frame{}, fmt.Errorf("%w: reading frame length at offset %d: %w", ErrIO, r.offset, err)
	}
	totalLength := encoding.Endian.Uint32(r.data[:encoding.LengthPrefixSize])

	// Validate against the bytes left in the file before allocating anything for the frame body.
	remainingBytes := r.fileSize - r.offset - encoding.LengthPrefixSize
	if remainingBytes < int64(totalLength) {
		return encoding.Frame{}, fmt.Errorf("%w: frame at offset %d declares %d bytes but only %d remain", encoding.ErrCorruptLog, r.offset, totalLength, remainingBytes)
	}

	if uint64(len(r.data)) < uint64(totalLength) {
		// We increase the data slice by a factor of 1.5 to amortise memory allocations over multiple calls. Shifting
		// right by one bit and adding avoids overflowing the integer when multiplying with 3.
		requiredDataSize := uint64(totalLength)
		requiredDataSize += requiredDataSize >> 1

		// Round up to the next bigger multiple of 4096 to have buffer sizes aligned with OS page sizes.
		requiredDataSize = (requiredDataSize + 4095) &^ 4095
		r.data = make([]byte, requiredDataSize)
	}
	body := r.data[:totalLength]
	if _, err := io.ReadFull(r.file, body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return encoding.Frame{}, fmt.Errorf("%w: frame at offset %d is incomplete: %w", encoding.ErrCorruptLog, r.offset, err)
		}
		return encoding.Frame{}, fmt.Errorf("%w: reading frame at offset %d: %w", ErrIO, r.offset, err)
	}

	frame, err := encoding.DecodeFrame(totalLength, body)
	if err != nil {
		return encoding.Frame{}, fmt.Errorf("frame at offset %d: %w", r.offset, err)
	}

	r.offset += encoding.LengthPrefixSize + int64(totalLength)
	return frame, nil
}

// Value returns the last frame read from the log. Key and value of the frame are only valid until the next call to
// Next(). Copy them to keep them.
func (r *Reader) Value() encoding.Frame {
	return r.value
}

// Err returns the error which stopped the reader, or nil.
func (r *Reader) Err() error {
	return r.err
}

// ToWriter returns a Writer appending to the log this reader has read. You must have read all frames of the log
// without error before you call this method. An incomplete tail after the last frame is removed. After a call to
// ToWriter(), you cannot use the Reader anymore.
func (r *Reader) ToWriter(options ...WriterOption) (*Writer, error) {
	if !r.done || r.err != nil {
		return nil, errors.New("log needs to be read until its end without error")
	}

	filePath := r.file.Name()
	validSize := r.offset
	if err := r.Close(); err != nil {
		return nil, err
	}

	// Make sure this reader is not used for anything else afterward.
	*r = Reader{}
	return OpenWriter(filePath, validSize, options...)
}

// Close closes the file the Reader is reading from.
func (r *Reader) Close() error {
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("%w: closing log file: %w", ErrIO, err)
	}
	return nil
}
