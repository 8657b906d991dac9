package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// Environment is the runtime profile ("development" or "production").
	Environment string
	// Version is the application version string.
	Version string
}

// Production reports whether the client runs with the production profile.
// Development-only diagnostics must be skipped when it returns true.
func (a ClientApp) Production() bool {
	return a.Environment == EnvProduction
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the backend REST base URL used by the client.
	HTTPAddress string
	// SocketAddress is the realtime channel endpoint. Empty means derived
	// from HTTPAddress.
	SocketAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientRealtime holds websocket reconnect settings.
type ClientRealtime struct {
	// ReconnectAttempts bounds reconnect retries. Zero means the channel
	// default.
	ReconnectAttempts int
	// ReconnectDelay is the fixed pause between reconnect attempts. Zero
	// means the channel default.
	ReconnectDelay time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// RefreshInterval defines how often the session keepalive job runs.
	RefreshInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Realtime contains websocket reconnect settings.
	Realtime ClientRealtime
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			Environment: cfg.App.Environment,
			Version:     cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Server.HTTPAddress,
			SocketAddress:  cfg.Server.SocketAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		Realtime: ClientRealtime{
			ReconnectAttempts: cfg.Realtime.ReconnectAttempts,
			ReconnectDelay:    cfg.Realtime.ReconnectDelay,
		},
		Workers: ClientWorkers{RefreshInterval: cfg.Workers.RefreshInterval},
	}

	return clientCfg, clientCfg.validate()
}
