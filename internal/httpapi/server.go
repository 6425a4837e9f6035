// Package httpapi is the operator HTTP surface (C7): /health, /api/stats,
// and a self-contained HTML dashboard, all read-only against the
// supervisor's shared state.
package httpapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.uber.org/zap"

	"github.com/observ-ing/core-sub000/internal/supervisor"
)

// Server wraps an echo.Echo instance bound to the supervisor's state.
type Server struct {
	echo  *echo.Echo
	state *supervisor.State
}

func New(state *supervisor.State, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(otelecho.Middleware("observing-ingester"))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("http request", zap.String("uri", v.URI), zap.Int("status", v.Status))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(nullToEmptyArray())

	s := &Server{echo: e, state: state}
	e.GET("/health", s.health)
	e.GET("/api/stats", s.stats)
	e.GET("/", s.dashboard)

	return s
}

// Start serves on addr until the process shuts down; mirrors the
// goroutine-wrapped e.Start(...) pattern of every teacher main.go.
func (s *Server) Start(addr string) error {
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ServeHTTP lets tests drive the route table with httptest directly,
// without binding a real listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

type healthResponse struct {
	Status    string `json:"status"`
	Connected bool   `json:"connected"`
	Cursor    *int64 `json:"cursor"`
}

func (s *Server) health(c echo.Context) error {
	snap := s.state.Snapshot()
	return c.JSON(http.StatusOK, healthResponse{
		Status:    "ok",
		Connected: snap.Connected,
		Cursor:    snap.Cursor,
	})
}

type statsResponse struct {
	Connected     bool                       `json:"connected"`
	Cursor        *int64                     `json:"cursor"`
	UptimeSecs    int64                      `json:"uptime_secs"`
	Stats         supervisor.Stats           `json:"stats"`
	RecentEvents  []supervisor.RecentEvent   `json:"recentEvents"`
	LastProcessed *supervisor.LastProcessed  `json:"lastProcessed,omitempty"`
}

func (s *Server) stats(c echo.Context) error {
	snap := s.state.Snapshot()
	resp := statsResponse{
		Connected:     snap.Connected,
		Cursor:        snap.Cursor,
		UptimeSecs:    snap.UptimeSecs,
		Stats:         snap.Stats,
		RecentEvents:  snap.RecentEvents,
		LastProcessed: snap.LastProcessed,
	}
	if resp.RecentEvents == nil {
		resp.RecentEvents = []supervisor.RecentEvent{}
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) dashboard(c echo.Context) error {
	return c.HTML(http.StatusOK, dashboardHTML)
}
