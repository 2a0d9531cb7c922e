package logfile

// SyncPolicyType describes the type of sync policy to apply when appending to the log file.
type SyncPolicyType int

const (
	SyncPolicyTypeNone SyncPolicyType = iota + 1 // We do not start at 0 to detect missing values.
	SyncPolicyTypeImmediate
)

// String returns a string representation of the sync policy type.
func (s SyncPolicyType) String() string {
	switch s {
	case SyncPolicyTypeNone:
		return "none"
	case SyncPolicyTypeImmediate:
		return "immediate"
	default:
		return "unknown"
	}
}

// SyncPolicyTypes provides a list of supported sync policies. Helpful for writing tests and benchmarks which iterate
// over all possibilities.
var SyncPolicyTypes = []SyncPolicyType{
	SyncPolicyTypeNone,
	SyncPolicyTypeImmediate,
}

// DefaultSyncPolicy leaves durability to the operating system once a write returned.
const DefaultSyncPolicy = SyncPolicyTypeNone

// ParseSyncPolicyType maps the name of a sync policy as returned by SyncPolicyType.String back to the type.
func ParseSyncPolicyType(name string) (SyncPolicyType, error) {
	for _, syncPolicyType := range SyncPolicyTypes {
		if syncPolicyType.String() == name {
			return syncPolicyType, nil
		}
	}
	return 0, ErrSyncPolicyUnsupported
}

// Syncer is the part of the log file a sync policy needs.
type Syncer interface {
	Sync() error
}

// SyncPolicy is the interface every sync policy needs to implement.
type SyncPolicy interface {
	Startup(file Syncer) error
	FrameAppended() error
	Shutdown() error
}

// GetSyncPolicy returns an instance of the sync policy matching the sync policy type.
func GetSyncPolicy(syncPolicyType SyncPolicyType) (SyncPolicy, error) {
	switch syncPolicyType {
	case SyncPolicyTypeNone:
		return NewSyncPolicyNone(), nil
	case SyncPolicyTypeImmediate:
		return NewSyncPolicyImmediate(), nil
	default:
		return nil, ErrSyncPolicyUnsupported
	}
}
