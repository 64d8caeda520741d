package health

import (
	"context"
	"net/http"
	"time"
)

// Pinger is a dependency the console needs to serve screens.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthChecker struct {
	api     Pinger
	session Pinger
}

type HealthStatus struct {
	Status  string          `json:"status"`
	API     ComponentHealth `json:"api"`
	Session ComponentHealth `json:"session"`
	Host    *HostStats      `json:"host,omitempty"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
}

func NewHealthChecker(api, session Pinger) *HealthChecker {
	return &HealthChecker{api: api, session: session}
}

// CheckBasic probes the REST API and the session backend.
func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	apiHealth := check(ctx, h.api)
	sessionHealth := check(ctx, h.session)

	status := "healthy"
	if apiHealth.Status != "healthy" || sessionHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:  status,
		API:     apiHealth,
		Session: sessionHealth,
	}
}

// CheckDetailed adds host statistics to CheckBasic.
func (h *HealthChecker) CheckDetailed(ctx context.Context) HealthStatus {
	status := h.CheckBasic(ctx)
	host := CollectHost()
	status.Host = &host
	return status
}

func check(ctx context.Context, p Pinger) ComponentHealth {
	if p == nil {
		return ComponentHealth{Status: "healthy"}
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return ComponentHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

// HTTPPinger treats any HTTP answer from baseURL as reachable. Only
// transport failures count as down.
type HTTPPinger struct {
	BaseURL string
	Client  *http.Client
}

func (p HTTPPinger) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL, nil)
	if err != nil {
		return err
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
