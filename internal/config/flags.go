package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a backend REST address (base URL or host:port)
//	-socket-address realtime channel endpoint
//	-c/-config json file path with configs
//	-environment runtime profile ("development" or "production")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-reconnect-attempts bounded websocket reconnect attempt count
//	-reconnect-delay fixed pause between reconnect attempts
//	-refresh-interval session keepalive probe interval
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var socketAddress string
	var jsonConfigPath string
	var environment string
	var requestTimeout time.Duration
	var reconnectAttempts int
	var reconnectDelay time.Duration
	var refreshInterval time.Duration

	flag.StringVar(&serverAddress, "a", "", "Backend REST address")
	flag.StringVar(&socketAddress, "socket-address", "", "Realtime channel endpoint")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&environment, "environment", "", "Runtime profile (development/production)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.IntVar(&reconnectAttempts, "reconnect-attempts", 0, "Websocket reconnect attempt count")
	flag.DurationVar(&reconnectDelay, "reconnect-delay", 0, "Pause between reconnect attempts")
	flag.DurationVar(&refreshInterval, "refresh-interval", 0, "Session keepalive probe interval")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			Environment: environment,
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			SocketAddress:  socketAddress,
			RequestTimeout: requestTimeout,
		},
		Realtime: Realtime{
			ReconnectAttempts: reconnectAttempts,
			ReconnectDelay:    reconnectDelay,
		},
		Workers: Workers{
			RefreshInterval: refreshInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}
