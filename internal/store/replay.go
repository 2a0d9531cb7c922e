package store

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/backbone81/walkv/internal/encoding"
	"github.com/backbone81/walkv/internal/keydir"
	"github.com/backbone81/walkv/internal/logfile"
)

// replayStats summarizes a replay for logging.
type replayStats struct {
	frames           int
	sets             int
	deletes          int
	foreignFrames    int
	firstForeign     int64
	firstForeignSeen bool
}

// replay reads the log from the start and applies every frame to the index in log order. It stops at the first frame
// which cannot be read or applied. Nothing is applied after a failure, but frames applied before it stay in the index.
func replay(reader *logfile.Reader, index keydir.Index, magic byte, version byte, identityCheck bool) (replayStats, error) {
	var stats replayStats
	for reader.Next() {
		frame := reader.Value()
		if frame.Magic != magic || frame.Version != version {
			if identityCheck {
				return stats, fmt.Errorf(
					"%w: frame at offset %d has magic 0x%02x and version 0x%02x, expected magic 0x%02x and version 0x%02x",
					ErrIdentityMismatch, reader.FrameOffset(), frame.Magic, frame.Version, magic, version,
				)
			}
			if !stats.firstForeignSeen {
				stats.firstForeign = reader.FrameOffset()
				stats.firstForeignSeen = true
			}
			stats.foreignFrames++
		}

		if err := applyFrame(index, frame); err != nil {
			return stats, fmt.Errorf("applying frame at offset %d: %w", reader.FrameOffset(), err)
		}
		stats.frames++
		if frame.Operation == encoding.OperationSet {
			stats.sets++
		} else {
			stats.deletes++
		}
	}
	return stats, reader.Err()
}

// applyFrame sets or removes the key of the frame. Key and value are copied as the frame points into the buffer of the
// reader.
func applyFrame(index keydir.Index, frame encoding.Frame) error {
	if !utf8.Valid(frame.Key) {
		return fmt.Errorf("%w: key is not valid UTF-8", ErrCorruptLog)
	}

	if !frame.Operation.Valid() {
		return fmt.Errorf("%w: unknown operation 0x%02x", ErrCorruptLog, byte(frame.Operation))
	}
	if frame.Operation == encoding.OperationDelete {
		index.Delete(string(frame.Key))
		return nil
	}

	valueEncoding, err := encoding.EncodingFromByte(byte(frame.Encoding))
	if err != nil {
		return err
	}
	index.Put(string(frame.Key), encoding.Value{
		Encoding: valueEncoding,
		Bytes:    bytes.Clone(frame.Value),
	})
	return nil
}
