package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// socketServer — тестовый websocket сервер, отдающий принятые соединения в канал
type socketServer struct {
	srv   *httptest.Server
	conns chan *websocket.Conn
}

func newSocketServer(t *testing.T) *socketServer {
	t.Helper()

	s := &socketServer{conns: make(chan *websocket.Conn, 4)}
	upgrader := websocket.Upgrader{}

	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		s.conns <- conn
	}))
	t.Cleanup(s.srv.Close)

	return s
}

func (s *socketServer) url() string {
	return "ws" + strings.TrimPrefix(s.srv.URL, "http")
}

func (s *socketServer) accept(t *testing.T) *websocket.Conn {
	t.Helper()
	select {
	case conn := <-s.conns:
		return conn
	case <-time.After(2 * time.Second):
		t.Fatal("no websocket connection within 2s")
		return nil
	}
}

func testSettings() *ChannelSettings {
	s := DefaultChannelSettings()
	s.ReconnectAttempts = 2
	s.ReconnectDelay = 20 * time.Millisecond
	return s
}

func sendNotification(t *testing.T, conn *websocket.Conn, event models.NotificationEvent) {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	payload, err := json.Marshal(frame{Event: "notification", Data: data})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, payload))
}

func TestChannel_InboundNotificationReachesHandler(t *testing.T) {
	server := newSocketServer(t)
	channel := NewChannel(server.url(), nil, testSettings(), logger.Nop())
	defer channel.Disconnect()

	received := make(chan models.NotificationEvent, 1)
	channel.SetHandler(func(event models.NotificationEvent) {
		received <- event
	})

	channel.Connect(context.Background(), "u-1")
	conn := server.accept(t)
	defer conn.Close()

	want := models.NotificationEvent{Action: models.ActionUpdate, NoteID: "n-1", UserID: "u-2", Title: "shopping"}
	sendNotification(t, conn, want)

	select {
	case got := <-received:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("notification did not reach handler")
	}
}

func TestChannel_EmitNoteChangeGoesOverTheWire(t *testing.T) {
	server := newSocketServer(t)
	channel := NewChannel(server.url(), nil, testSettings(), logger.Nop())
	defer channel.Disconnect()

	channel.Connect(context.Background(), "u-1")
	conn := server.accept(t)
	defer conn.Close()

	event := models.NotificationEvent{Action: models.ActionCreate, NoteID: "n-1", UserID: "u-1", Title: "shopping"}
	channel.EmitNoteChange(event)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var f frame
	require.NoError(t, json.Unmarshal(message, &f))
	assert.Equal(t, "noteChange", f.Event)

	var got models.NotificationEvent
	require.NoError(t, json.Unmarshal(f.Data, &got))
	assert.Equal(t, event, got)
}

func TestChannel_EmitWithoutConnectionIsNoop(t *testing.T) {
	channel := NewChannel("ws://127.0.0.1:1/socket", nil, testSettings(), logger.Nop())

	assert.NotPanics(t, func() {
		channel.EmitNoteChange(models.NotificationEvent{Action: models.ActionCreate, NoteID: "n-1"})
	})
}

func TestChannel_DisconnectStopsDispatch(t *testing.T) {
	server := newSocketServer(t)
	channel := NewChannel(server.url(), nil, testSettings(), logger.Nop())

	received := make(chan models.NotificationEvent, 1)
	channel.SetHandler(func(event models.NotificationEvent) {
		received <- event
	})

	channel.Connect(context.Background(), "u-1")
	conn := server.accept(t)
	defer conn.Close()

	channel.Disconnect()

	// Сообщение после Disconnect не должно дойти до обработчика
	_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"notification","data":{"action":"update","noteId":"n-1"}}`))

	select {
	case <-received:
		t.Fatal("handler invoked after disconnect")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestChannel_ReconnectsAfterConnectionDrop(t *testing.T) {
	server := newSocketServer(t)
	channel := NewChannel(server.url(), nil, testSettings(), logger.Nop())
	defer channel.Disconnect()

	received := make(chan models.NotificationEvent, 1)
	channel.SetHandler(func(event models.NotificationEvent) {
		received <- event
	})

	channel.Connect(context.Background(), "u-1")

	first := server.accept(t)
	first.Close()

	second := server.accept(t)
	defer second.Close()

	want := models.NotificationEvent{Action: models.ActionDelete, NoteID: "n-2", UserID: "u-2", Title: "old"}
	sendNotification(t, second, want)

	select {
	case got := <-received:
		assert.Equal(t, want, got)
	case <-time.After(2 * time.Second):
		t.Fatal("notification did not arrive after reconnect")
	}
}

func TestChannel_ConnectTwiceSameUserIsNoop(t *testing.T) {
	server := newSocketServer(t)
	channel := NewChannel(server.url(), nil, testSettings(), logger.Nop())
	defer channel.Disconnect()

	channel.Connect(context.Background(), "u-1")
	server.accept(t)

	channel.Connect(context.Background(), "u-1")

	select {
	case <-server.conns:
		t.Fatal("second connection opened for the same user")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestChannel_MalformedFramesAreIgnored(t *testing.T) {
	server := newSocketServer(t)
	channel := NewChannel(server.url(), nil, testSettings(), logger.Nop())
	defer channel.Disconnect()

	received := make(chan models.NotificationEvent, 1)
	channel.SetHandler(func(event models.NotificationEvent) {
		received <- event
	})

	channel.Connect(context.Background(), "u-1")
	conn := server.accept(t)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"somethingElse","data":{}}`)))

	want := models.NotificationEvent{Action: models.ActionCreate, NoteID: "n-1", UserID: "u-2", Title: "ok"}
	sendNotification(t, conn, want)

	select {
	case got := <-received:
		assert.Equal(t, want, got, "валидное событие должно пройти после мусорных кадров")
	case <-time.After(2 * time.Second):
		t.Fatal("valid notification did not arrive")
	}
}
