// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package realtime maintains the websocket channel that carries note change
// notifications between clients sharing the same backend.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/gorilla/websocket"
)

const sendBufferSize = 8

const (
	eventNotification = "notification"
	eventNoteChange   = "noteChange"
)

// frame is the wire envelope for every socket message in both directions.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type ChannelSettings struct {
	ReconnectAttempts int
	ReconnectDelay    time.Duration
	HandshakeTimeout  time.Duration
	WriteTimeout      time.Duration
	ReadTimeout       time.Duration
	PingInterval      time.Duration
}

func DefaultChannelSettings() *ChannelSettings {
	return &ChannelSettings{
		ReconnectAttempts: 5,
		ReconnectDelay:    1 * time.Second,
		HandshakeTimeout:  2 * time.Second,
		WriteTimeout:      5 * time.Second,
		ReadTimeout:       60 * time.Second,
		PingInterval:      25 * time.Second,
	}
}

// Channel connects to the backend's socket endpoint while a session exists
// and tears the connection down when the session ends. It implements
// [service.ChangeEmitter] for the outbound direction.
//
// The channel authenticates with the same session cookie as the REST
// adapter: the dialer shares the adapter's cookie jar.
type Channel struct {
	url        string
	dialer     *websocket.Dialer
	settings   *ChannelSettings
	logger     *logger.Logger
	instanceID string

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	send    chan models.NotificationEvent
	epoch   int
	userID  string
	handler func(models.NotificationEvent)
}

// NewChannel creates a disconnected channel. jar must be the cookie jar the
// REST adapter captured the session cookie into, otherwise the socket
// handshake arrives unauthenticated.
func NewChannel(socketURL string, jar http.CookieJar, settings *ChannelSettings, logger *logger.Logger) *Channel {
	if settings == nil {
		settings = DefaultChannelSettings()
	}
	if settings.ReconnectAttempts <= 0 {
		settings.ReconnectAttempts = 5
	}
	if settings.ReconnectDelay <= 0 {
		settings.ReconnectDelay = 1 * time.Second
	}

	return &Channel{
		url: socketURL,
		dialer: &websocket.Dialer{
			Jar:              jar,
			HandshakeTimeout: settings.HandshakeTimeout,
		},
		settings:   settings,
		logger:     logger,
		instanceID: utils.NewUUIDGenerator().Generate(),
	}
}

// SetHandler registers the callback invoked for every inbound notification.
// The callback runs on the channel's read goroutine and must not block.
func (c *Channel) SetHandler(fn func(models.NotificationEvent)) {
	c.mu.Lock()
	c.handler = fn
	c.mu.Unlock()
}

// BindSession wires the channel to the session lifecycle: the socket comes
// up after login and goes down after logout. Returns the unsubscribe
// function.
func (c *Channel) BindSession(ctx context.Context, session service.SessionService) func() {
	return session.Subscribe(func(snap service.SessionSnapshot) {
		switch {
		case snap.Authenticated():
			c.Connect(ctx, snap.User.ID)
		default:
			c.Disconnect()
		}
	})
}

// Connect brings the socket up for the given user. Reconnecting as a
// different user first tears the old connection down so no event is ever
// dispatched against a stale user identity. Connecting twice for the same
// user is a no-op.
func (c *Channel) Connect(ctx context.Context, userID string) {
	c.mu.Lock()
	if c.cancel != nil && c.userID == userID {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.Disconnect()

	c.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.userID = userID
	c.epoch++
	epoch := c.epoch
	c.send = make(chan models.NotificationEvent, sendBufferSize)
	send := c.send
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		c.run(runCtx, epoch, send)
	}()
}

// Disconnect tears the socket down and waits for the background goroutine
// to exit. Safe to call when not connected.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.userID = ""
	c.epoch++
	c.send = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
}

// EmitNoteChange implements [service.ChangeEmitter]. Without a live
// connection the event is silently dropped: local mutations must never fail
// or block because the socket is down.
func (c *Channel) EmitNoteChange(event models.NotificationEvent) {
	c.mu.Lock()
	send := c.send
	c.mu.Unlock()

	if send == nil {
		return
	}

	select {
	case send <- event:
	default:
		c.logger.Debug().Str("note_id", event.NoteID).Msg("socket send buffer full, event dropped")
	}
}

// run is the connection loop: dial, pump, reconnect. Attempts are bounded;
// a successful connection resets the counter. The loop exits when ctx is
// cancelled or the attempts are exhausted.
func (c *Channel) run(ctx context.Context, epoch int, send chan models.NotificationEvent) {
	for attempt := 0; attempt < c.settings.ReconnectAttempts; attempt++ {
		conn, _, err := c.dialer.DialContext(ctx, c.url, http.Header{
			"X-Socket-Instance": []string{c.instanceID},
		})
		if err != nil {
			c.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("socket dial failed")
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.settings.ReconnectDelay):
				continue
			}
		}

		c.logger.Info().Str("url", c.url).Msg("socket connected")
		c.pump(ctx, epoch, conn, send)
		conn.Close()

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.settings.ReconnectDelay):
		}

		// the connection worked, start the attempt budget over
		attempt = -1
	}

	c.logger.Warn().Int("attempts", c.settings.ReconnectAttempts).Msg("socket reconnect attempts exhausted")
}

// pump runs the read and write sides of one connection and returns when
// either side fails or ctx is cancelled.
func (c *Channel) pump(ctx context.Context, epoch int, conn *websocket.Conn, send chan models.NotificationEvent) {
	pumpCtx, pumpCancel := context.WithCancel(ctx)
	defer pumpCancel()

	go func() {
		defer pumpCancel()

		ping := time.NewTicker(c.settings.PingInterval)
		defer ping.Stop()

		for {
			select {
			case <-pumpCtx.Done():
				return
			case event := <-send:
				data, err := json.Marshal(event)
				if err != nil {
					c.logger.Error().Err(err).Msg("marshal outbound event")
					continue
				}
				payload, _ := json.Marshal(frame{Event: eventNoteChange, Data: data})

				conn.SetWriteDeadline(time.Now().Add(c.settings.WriteTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					c.logger.Warn().Err(err).Msg("socket write failed")
					return
				}
			case <-ping.C:
				conn.SetWriteDeadline(time.Now().Add(c.settings.WriteTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(c.settings.ReadTimeout))
		return nil
	})

	for {
		select {
		case <-pumpCtx.Done():
			return
		default:
		}

		conn.SetReadDeadline(time.Now().Add(c.settings.ReadTimeout))
		_, message, err := conn.ReadMessage()
		if err != nil {
			c.logger.Debug().Err(err).Msg("socket read closed")
			return
		}

		var f frame
		if err := json.Unmarshal(message, &f); err != nil {
			c.logger.Warn().Err(err).Msg("malformed socket frame")
			continue
		}
		if f.Event != eventNotification {
			continue
		}

		var event models.NotificationEvent
		if err := json.Unmarshal(f.Data, &event); err != nil {
			c.logger.Warn().Err(err).Msg("malformed notification payload")
			continue
		}

		c.dispatch(epoch, event)
	}
}

// dispatch hands the event to the handler unless the connection has been
// superseded since this pump started.
func (c *Channel) dispatch(epoch int, event models.NotificationEvent) {
	c.mu.Lock()
	handler := c.handler
	stale := epoch != c.epoch
	c.mu.Unlock()

	if stale || handler == nil {
		return
	}
	handler(event)
}
