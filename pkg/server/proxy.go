package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sentinelhq/sentinel/pkg/config"
	"github.com/sentinelhq/sentinel/pkg/infra/prometheus"
	"github.com/sentinelhq/sentinel/pkg/middleware"
	"github.com/sentinelhq/sentinel/pkg/server/router"
)

type (
	ProxyServerDI struct {
		Config              *config.Config
		Logger              *logrus.Logger
		MiddlewareTransport middleware.Transport
		Routers             []router.ServerRouter
	}
	ProxyServer struct {
		*BaseServer
	}
)

func NewProxyServer(di ProxyServerDI) *ProxyServer {
	if di.Config.Metrics.Enabled {
		prometheus.Initialize()
	}

	base := NewBaseServer(di.Config, di.Logger)
	base.router.Use(middleware.NewPanicRecoverMiddleware(di.Logger).Middleware())
	base.router.Use(di.MiddlewareTransport.MetricsMiddleware.Middleware())
	base.setupHealthCheck()
	base.WithRouters(di.Routers...)

	s := &ProxyServer{BaseServer: base}
	s.setupMetricsEndpoint()
	return s
}

func (s *ProxyServer) Run() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.WithField("addr", addr).Info("Starting proxy server")
	return s.router.Listen(addr)
}

func (s *ProxyServer) Shutdown() error {
	return s.router.Shutdown()
}
