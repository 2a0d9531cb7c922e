package store

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
	"unicode/utf8"

	"github.com/phuslu/log"

	"github.com/backbone81/walkv/internal/encoding"
	"github.com/backbone81/walkv/internal/keydir"
	"github.com/backbone81/walkv/internal/logfile"
	"github.com/backbone81/walkv/internal/utils"
)

// Store is a key-value store which persists every mutation in an append-only log file.
//
// Instances of Store are NOT safe to use concurrently. You need to provide external synchronization around all methods.
type Store struct {
	noCopy utils.NoCopy

	// The path of the log file.
	path string

	// The identity every frame appended by this store is tagged with.
	magic   byte
	version byte

	// The in-memory state. It never holds a mutation which did not make it into the log.
	index keydir.Index

	// The writer appending to the log file. It is nil after Close.
	writer *logfile.Writer

	// The buffer frames are encoded into. It is reused across mutations.
	buffer []byte

	logger *log.Logger
}

// Open opens the store backed by the log file at path. If the file exists, the whole log is replayed to rebuild the
// in-memory state. If it does not exist, an empty log file is created.
//
// Every error returned wraps ErrStartup together with the error which caused it, so errors.Is works for both. A log
// which is only partially readable makes Open fail. There is no mode which keeps the frames read before the failure.
//
// To avoid resources leaking, the returned Store needs to be closed by calling Close().
func Open(path string, magic byte, version byte, opts ...Option) (*Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	store, err := open(path, magic, version, o)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %q: %w", ErrStartup, path, err)
	}
	return store, nil
}

func open(path string, magic byte, version byte, o options) (*Store, error) {
	index, err := keydir.New(o.indexType)
	if err != nil {
		return nil, err
	}
	syncPolicy, err := logfile.GetSyncPolicy(o.syncPolicyType)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	reader, err := logfile.OpenReader(path)
	if errors.Is(err, fs.ErrNotExist) {
		writer, err := logfile.OpenWriter(path, 0, logfile.WithSyncPolicy(syncPolicy))
		if err != nil {
			return nil, err
		}
		o.logger.Info().Str("path", path).Msg("created new log file")
		return newStore(path, magic, version, index, writer, o.logger), nil
	}
	if err != nil {
		return nil, err
	}

	stats, err := replay(reader, index, magic, version, o.identityCheck)
	if err != nil {
		if closeErr := reader.Close(); closeErr != nil {
			return nil, errors.Join(err, closeErr)
		}
		return nil, err
	}
	ReplayDuration.Observe(time.Since(start).Seconds())

	if stats.foreignFrames > 0 {
		o.logger.Warn().
			Str("path", path).
			Int("frames", stats.foreignFrames).
			Int64("first_offset", stats.firstForeign).
			Msg("log holds frames written with a different magic or version")
	}
	if tailLength := reader.TailLength(); tailLength > 0 {
		o.logger.Warn().
			Str("path", path).
			Int64("offset", reader.Offset()).
			Int64("bytes", tailLength).
			Msg("removing incomplete frame length at the end of the log")
	}
	o.logger.Debug().
		Str("path", path).
		Int("frames", stats.frames).
		Int("sets", stats.sets).
		Int("deletes", stats.deletes).
		Int("keys", index.Len()).
		Int64("bytes", reader.Offset()).
		Dur("duration", time.Since(start)).
		Msg("replayed log")

	writer, err := reader.ToWriter(logfile.WithSyncPolicy(syncPolicy))
	if err != nil {
		return nil, err
	}
	return newStore(path, magic, version, index, writer, o.logger), nil
}

func newStore(path string, magic byte, version byte, index keydir.Index, writer *logfile.Writer, logger *log.Logger) *Store {
	Keys.Set(float64(index.Len()))
	return &Store{
		path:    path,
		magic:   magic,
		version: version,
		index:   index,
		writer:  writer,
		logger:  logger,
	}
}

// Path returns the path of the log file.
func (s *Store) Path() string {
	return s.path
}

// Magic returns the magic byte every appended frame is tagged with.
func (s *Store) Magic() byte {
	return s.magic
}

// Version returns the version byte every appended frame is tagged with.
func (s *Store) Version() byte {
	return s.version
}

// Len returns the number of keys in the store. After Close, it keeps reporting the state at the time of closing.
func (s *Store) Len() int {
	return s.index.Len()
}

// Keys returns all keys in ascending byte order. After Close, it keeps reporting the state at the time of closing.
func (s *Store) Keys() []string {
	return s.index.Keys()
}

// Get returns a copy of the value of the key. It does not touch the log file.
func (s *Store) Get(key string) (encoding.Value, error) {
	if s.writer == nil {
		return encoding.Value{}, ErrClosed
	}

	value, ok := s.index.Get(key)
	if !ok {
		OperationsTotal.WithLabelValues(operationGet, resultNotFound).Inc()
		return encoding.Value{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	OperationsTotal.WithLabelValues(operationGet, resultSuccess).Inc()
	return value.Clone(), nil
}

// Set appends a frame setting the key to the value and updates the in-memory state afterward. When the append fails,
// the in-memory state is left untouched. Keys which are not valid UTF-8 are refused with ErrInvalidKey before anything
// is appended.
//
// An ErrIO does not always mean the log is unchanged. When the frame was written but the sync policy failed to flush
// it, the frame stays in the log and the mutation shows up again on the next Open.
func (s *Store) Set(key string, value encoding.Value) error {
	if s.writer == nil {
		return ErrClosed
	}
	if _, err := encoding.EncodingFromByte(byte(value.Encoding)); err != nil {
		OperationsTotal.WithLabelValues(operationSet, resultError).Inc()
		return err
	}

	if err := s.append(encoding.OperationSet, value.Encoding, key, value.Bytes); err != nil {
		OperationsTotal.WithLabelValues(operationSet, resultError).Inc()
		return err
	}
	s.index.Put(key, value.Clone())
	Keys.Set(float64(s.index.Len()))
	OperationsTotal.WithLabelValues(operationSet, resultSuccess).Inc()
	return nil
}

// Delete appends a frame removing the key and updates the in-memory state afterward. Deleting a key which is not
// present still appends a frame and succeeds. When the append fails, the in-memory state is left untouched. The same
// rules as for Set apply to invalid keys and to ErrIO.
func (s *Store) Delete(key string) error {
	if s.writer == nil {
		return ErrClosed
	}

	if err := s.append(encoding.OperationDelete, encoding.EncodingString, key, nil); err != nil {
		OperationsTotal.WithLabelValues(operationDelete, resultError).Inc()
		return err
	}
	s.index.Delete(key)
	Keys.Set(float64(s.index.Len()))
	OperationsTotal.WithLabelValues(operationDelete, resultSuccess).Inc()
	return nil
}

func (s *Store) append(operation encoding.Operation, valueEncoding encoding.Encoding, key string, value []byte) error {
	if !utf8.ValidString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if uint64(len(key))+uint64(len(value)) > encoding.MaxPayloadLength {
		return fmt.Errorf("%w: key of %d bytes and value of %d bytes", ErrFrameTooLarge, len(key), len(value))
	}

	s.buffer = encoding.AppendFrame(s.buffer[:0], encoding.Frame{
		Magic:     s.magic,
		Version:   s.version,
		Operation: operation,
		Encoding:  valueEncoding,
		Key:       []byte(key),
		Value:     value,
	})
	return s.writer.AppendFrame(s.buffer)
}

// Close closes the log file. The store cannot be used afterward.
func (s *Store) Close() error {
	if s.writer == nil {
		return ErrClosed
	}

	err := s.writer.Close()
	s.writer = nil
	return err
}
