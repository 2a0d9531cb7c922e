package kv

import intstore "github.com/backbone81/walkv/internal/store"

var (
	ErrStartup          = intstore.ErrStartup
	ErrIO               = intstore.ErrIO
	ErrCorruptLog       = intstore.ErrCorruptLog
	ErrEncoding         = intstore.ErrEncoding
	ErrNotFound         = intstore.ErrNotFound
	ErrClosed           = intstore.ErrClosed
	ErrFrameTooLarge    = intstore.ErrFrameTooLarge
	ErrInvalidKey       = intstore.ErrInvalidKey
	ErrIdentityMismatch = intstore.ErrIdentityMismatch
)
