package store

import (
	"github.com/backbone81/walkv/internal/logfile"
)

// ReplaceLogFile makes the store append to the given file instead of its log file.
func ReplaceLogFile(s *Store, file logfile.WriterFile) error {
	writer, err := logfile.NewWriter(file, 0)
	if err != nil {
		return err
	}
	if err := s.writer.Close(); err != nil {
		return err
	}
	s.writer = writer
	return nil
}
