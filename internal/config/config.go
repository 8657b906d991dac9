// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// EnvProduction is the App.Environment value that disables development-only
// diagnostics (failed-request dumps, channel connect errors).
const EnvProduction = "production"

// StructuredConfig is the top-level configuration container for the
// go-note-keeper client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the runtime environment
	// profile and the application version.
	App App `envPrefix:"APP_"`

	// Server holds the remote backend addresses and the outbound request
	// timeout.
	Server Server `envPrefix:"SERVER_"`

	// Realtime holds reconnect settings for the websocket channel.
	Realtime Realtime `envPrefix:"REALTIME_"`

	// Workers holds configuration for background client jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Environment is the runtime profile ("development" or "production").
	// Development-only diagnostics are emitted unless it equals
	// [EnvProduction].
	// Env: APP_ENVIRONMENT
	Environment string `env:"ENVIRONMENT"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds the addresses of the remote note backend.
type Server struct {
	// HTTPAddress is the base URL of the backend REST API
	// (e.g. "https://notes.example.com" or "localhost:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// SocketAddress is the websocket endpoint of the realtime channel
	// (e.g. "wss://notes.example.com/socket"). When empty it is derived
	// from HTTPAddress.
	// Env: SERVER_SOCKET_ADDRESS
	SocketAddress string `env:"SOCKET_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request before the client cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Realtime holds reconnect settings for the websocket channel.
type Realtime struct {
	// ReconnectAttempts bounds how many times the channel retries a lost
	// connection before giving up. Zero means the channel default.
	// Env: REALTIME_RECONNECT_ATTEMPTS
	ReconnectAttempts int `env:"RECONNECT_ATTEMPTS"`

	// ReconnectDelay is the fixed pause between reconnect attempts.
	// Zero means the channel default.
	// Env: REALTIME_RECONNECT_DELAY
	ReconnectDelay time.Duration `env:"RECONNECT_DELAY"`
}

// Workers holds configuration for background client jobs.
type Workers struct {
	// RefreshInterval defines how often the session keepalive job re-probes
	// the current user. Zero means the job default.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
