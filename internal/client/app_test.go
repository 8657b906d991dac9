package client

import (
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── resolveSocketURL ─────────────────────────────────────────────────────────

func TestResolveSocketURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ClientAdapter
		want string
	}{
		{
			name: "explicit socket address wins",
			cfg:  config.ClientAdapter{HTTPAddress: "http://localhost:8080", SocketAddress: "wss://notes.example.com/socket"},
			want: "wss://notes.example.com/socket",
		},
		{
			name: "derived from http base",
			cfg:  config.ClientAdapter{HTTPAddress: "http://localhost:8080"},
			want: "ws://localhost:8080/socket",
		},
		{
			name: "derived from https base",
			cfg:  config.ClientAdapter{HTTPAddress: "https://notes.example.com"},
			want: "wss://notes.example.com/socket",
		},
		{
			name: "bare host gets ws scheme",
			cfg:  config.ClientAdapter{HTTPAddress: "localhost:8080"},
			want: "ws://localhost:8080/socket",
		},
		{
			name: "trailing slash is not doubled",
			cfg:  config.ClientAdapter{HTTPAddress: "http://localhost:8080/"},
			want: "ws://localhost:8080/socket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveSocketURL(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
