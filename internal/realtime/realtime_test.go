package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return h.Clients() == 1 }, time.Second, 10*time.Millisecond)
	return conn
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func TestHub_BroadcastsInvalidations(t *testing.T) {
	h := startHub(t)
	conn := dial(t, h)

	h.Invalidate("invoices", "projects")

	var msg Message
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, TypeInvalidate, msg.Type)
	assert.Equal(t, []string{"invoices", "projects"}, msg.Collections)
	assert.False(t, msg.At.IsZero())
}

func TestHub_NavigateAndLocation(t *testing.T) {
	h := startHub(t)
	conn := dial(t, h)
	assert.Equal(t, "/", h.CurrentPath())

	require.NoError(t, conn.WriteJSON(Message{Type: TypeLocation, Path: "/clients"}))
	require.Eventually(t, func() bool { return h.CurrentPath() == "/clients" }, time.Second, 10*time.Millisecond)

	h.Navigate("/login")
	assert.Equal(t, "/login", h.CurrentPath())

	var msg Message
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, TypeNavigate, msg.Type)
	assert.Equal(t, "/login", msg.Path)
}

func TestHub_EmptyInvalidateIsIgnored(t *testing.T) {
	h := NewHub()
	h.Invalidate()
	assert.Len(t, h.broadcast, 0)
}

func TestHub_PublishDoesNotBlockWhenFull(t *testing.T) {
	h := NewHub()
	for i := 0; i < cap(h.broadcast)+10; i++ {
		h.Invalidate("clients")
	}
	assert.Len(t, h.broadcast, cap(h.broadcast))
}

type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) Invalidate(collections ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, collections)
}

func TestScheduler(t *testing.T) {
	rec := &recorder{}
	s, err := NewScheduler("0 */5 * * * *", rec, []string{"clients", "invoices"})
	require.NoError(t, err)

	s.Tick()
	require.Len(t, rec.calls, 1)
	assert.Equal(t, []string{"clients", "invoices"}, rec.calls[0])

	s.Start()
	s.Stop()

	_, err = NewScheduler("not a schedule", rec, nil)
	assert.Error(t, err)
}
