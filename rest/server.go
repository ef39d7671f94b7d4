package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/contrib/static"
	"github.com/gin-gonic/gin"
	"leguru.net/keybindd/logger"
)

// NewEngine builds the gin engine. When staticPath is set its files are served
// from the root, otherwise / redirects to the status endpoint.
func NewEngine(router Router, staticPath string) *gin.Engine {
	g := gin.Default()
	if staticPath != "" {
		g.Use(static.Serve("/", static.LocalFile(staticPath, false)))
	} else {
		g.GET("/", routeFrontend)
	}
	router.Register(g)
	return g
}

type RestServer struct {
	srv *http.Server
}

func StartRestServer(addr string, router Router, staticPath string) *RestServer {
	s := &RestServer{srv: &http.Server{Addr: addr, Handler: NewEngine(router, staticPath)}}
	logger.WithField("addr", addr).Info("Starting REST server")
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithField("err", err).Error("Failed to serve REST server")
		}
	}()
	return s
}

func (s *RestServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		logger.WithField("err", err).Warn("REST server shutdown")
	}
}
