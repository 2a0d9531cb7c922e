package utils

// ReaderFileLoop provides a stub for a log file which returns the same data over and over again in an endless loop.
// It allows us to run large scale replay benchmarks without having to provide an actual big file on disk or memory.
// Data must contain whole frames only.
type ReaderFileLoop struct {
	Data   []byte
	Offset int
}

func (s *ReaderFileLoop) Read(p []byte) (int, error) {
	copyBytes := min(len(p), len(s.Data)-s.Offset)
	copy(p, s.Data[s.Offset:s.Offset+copyBytes])
	s.Offset += copyBytes
	if s.Offset >= len(s.Data) {
		s.Offset = 0
	}
	return copyBytes, nil
}

func (s *ReaderFileLoop) Close() error {
	return nil
}

func (s *ReaderFileLoop) Name() string {
	return "in-memory-loop"
}
