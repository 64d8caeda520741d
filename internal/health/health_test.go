package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckBasic(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer api.Close()

	h := NewHealthChecker(HTTPPinger{BaseURL: api.URL}, PingFunc(func(context.Context) error { return nil }))
	status := h.CheckBasic(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "healthy", status.API.Status)
	assert.Nil(t, status.Host)
}

func TestCheckBasic_SessionDown(t *testing.T) {
	h := NewHealthChecker(nil, PingFunc(func(context.Context) error { return errors.New("redis: connection refused") }))
	status := h.CheckBasic(context.Background())
	assert.Equal(t, "unhealthy", status.Status)
	assert.Equal(t, "redis: connection refused", status.Session.Error)
}

func TestCheckBasic_APIUnreachable(t *testing.T) {
	api := httptest.NewServer(http.NotFoundHandler())
	url := api.URL
	api.Close()

	status := NewHealthChecker(HTTPPinger{BaseURL: url}, nil).CheckBasic(context.Background())
	assert.Equal(t, "unhealthy", status.API.Status)
}

func TestCheckDetailed_IncludesHost(t *testing.T) {
	status := NewHealthChecker(nil, nil).CheckDetailed(context.Background())
	if assert.NotNil(t, status.Host) {
		assert.GreaterOrEqual(t, status.Host.MemoryPercent, 0.0)
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "2.00 GB", formatBytes(2*1024*1024*1024))
	assert.Equal(t, "512.00 MB", formatBytes(512*1024*1024))
	assert.Equal(t, "1d 2h", formatUptime(93600))
	assert.Equal(t, "5m", formatUptime(300))
}
