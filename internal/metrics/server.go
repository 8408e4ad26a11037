package metrics

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Port    string `envconfig:"METRICS_PORT" default:"9090"`
}

// Server serves /metrics on its own port.
type Server struct {
	echo *echo.Echo
}

// StartMetricsServer registers collectors and starts the metrics endpoint in
// the background. Returns nil when metrics are disabled.
func StartMetricsServer(cfg Config, logger *logrus.Logger) *Server {
	if !cfg.Enabled {
		return nil
	}

	RegisterMetrics(logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	go func() {
		if err := e.Start(fmt.Sprintf(":%s", cfg.Port)); err != nil {
			logger.Infof("metrics server stopped: %v", err)
		}
	}()
	logger.Infof("metrics server listening on :%s", cfg.Port)

	return &Server{echo: e}
}

func (s *Server) Stop(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
