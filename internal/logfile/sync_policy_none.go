package logfile

// SyncPolicyNone is never flushing the content of the log to disk. A frame is considered written once the write call
// returned. This is the fastest policy but increases the risk of data loss in case of a power or hardware failure.
type SyncPolicyNone struct{}

// SyncPolicyNone implements SyncPolicy.
var _ SyncPolicy = (*SyncPolicyNone)(nil)

// NewSyncPolicyNone creates a new SyncPolicyNone.
func NewSyncPolicyNone() *SyncPolicyNone {
	return &SyncPolicyNone{}
}

func (s *SyncPolicyNone) Startup(file Syncer) error {
	return nil
}

func (s *SyncPolicyNone) FrameAppended() error {
	return nil
}

func (s *SyncPolicyNone) Shutdown() error {
	return nil
}

func (s *SyncPolicyNone) String() string {
	return SyncPolicyTypeNone.String()
}
