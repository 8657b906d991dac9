// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/realtime"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/tui"
	"github.com/MKhiriev/go-note-keeper/internal/workers"
	"github.com/MKhiriev/go-note-keeper/models"
)

// App is the note keeper client: a terminal UI backed by the REST adapter,
// with a realtime channel for cross-client notifications and a session
// keepalive job.
type App struct {
	cfg      *config.ClientConfig
	logger   *logger.Logger
	services *service.ClientServices
	channel  *realtime.Channel
	ui       *tui.TUI
}

// NewApp assembles the client from configuration. The realtime channel shares
// the adapter's cookie jar so both transports speak for the same session.
func NewApp() (*App, error) {
	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}

	log := logger.NewClientLogger("client", cfg.App.Production())

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	socketURL, err := resolveSocketURL(cfg.Adapter)
	if err != nil {
		return nil, fmt.Errorf("resolve socket address: %w", err)
	}

	settings := realtime.DefaultChannelSettings()
	if cfg.Realtime.ReconnectAttempts > 0 {
		settings.ReconnectAttempts = cfg.Realtime.ReconnectAttempts
	}
	if cfg.Realtime.ReconnectDelay > 0 {
		settings.ReconnectDelay = cfg.Realtime.ReconnectDelay
	}

	channel := realtime.NewChannel(socketURL, serverAdapter.CookieJar(), settings, log)
	services := service.NewClientServices(serverAdapter, channel, log)
	ui := tui.New(services, log)

	channel.SetHandler(func(event models.NotificationEvent) {
		toast, show := realtime.Decide(event, services.SessionService.Snapshot().User.ID)
		if show {
			ui.PushToast(toast.Text)
		}
	})

	return &App{cfg: cfg, logger: log, services: services, channel: channel, ui: ui}, nil
}

// Run blocks until the UI exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	unbind := a.channel.BindSession(ctx, a.services.SessionService)
	defer unbind()
	defer a.channel.Disconnect()

	jobs := workers.New(keepaliveWorker{
		job:      a.services.RefreshJob,
		interval: a.cfg.Workers.RefreshInterval,
	})
	jobs.Start(ctx)
	defer jobs.Stop()

	return a.ui.Run(ctx)
}

// keepaliveWorker adapts the session refresh job to the [workers.Worker]
// lifecycle.
type keepaliveWorker struct {
	job      service.SessionRefreshJob
	interval time.Duration
}

func (w keepaliveWorker) Start(ctx context.Context) {
	w.job.Start(ctx, w.interval)
}

func (w keepaliveWorker) Stop() {
	w.job.Stop()
}

// resolveSocketURL picks the configured socket address or derives one from
// the REST base URL ("http"->"ws", "https"->"wss", path "/socket").
func resolveSocketURL(adapterCfg config.ClientAdapter) (string, error) {
	if addr := strings.TrimSpace(adapterCfg.SocketAddress); addr != "" {
		return addr, nil
	}

	raw := strings.TrimSpace(adapterCfg.HTTPAddress)
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/socket"

	return u.String(), nil
}
