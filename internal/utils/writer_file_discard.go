package utils

// WriterFileDiscard provides a stub for a log file which discards all data. It allows us to run large scale
// benchmarks without filling up the disk or memory.
type WriterFileDiscard struct{}

func (s *WriterFileDiscard) Write(p []byte) (int, error) {
	return len(p), nil
}

func (s *WriterFileDiscard) Close() error {
	return nil
}

func (s *WriterFileDiscard) Sync() error {
	return nil
}

func (s *WriterFileDiscard) Truncate(size int64) error {
	return nil
}

func (s *WriterFileDiscard) Name() string {
	return "in-memory-discard"
}
