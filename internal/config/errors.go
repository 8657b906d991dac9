package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing backend address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidRealtimeConfigs indicates invalid realtime channel settings
	// (for example, a negative reconnect attempt count).
	ErrInvalidRealtimeConfigs = errors.New("invalid realtime configuration")
)
