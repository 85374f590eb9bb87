package progress

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP-exposed view of the progress sinks: /metrics for
// Prometheus scraping, /healthz for a liveness probe. It follows the same
// Start-once/Stop-with-timeout shape the original CLI's monitor used, with
// gin standing in for the bare net/http mux.
type Server struct {
	Addr string

	engine  *gin.Engine
	server  *http.Server
	stopped chan struct{}
}

// Start begins serving in the background. It returns once the listener is
// up, mirroring the started-channel handshake the original monitor used.
func (s *Server) Start() error {
	if s.server != nil {
		return errors.Errorf("progress server already started")
	}
	if s.Addr == "" {
		s.Addr = ":8000"
	}

	gin.SetMode(gin.ReleaseMode)
	s.engine = gin.New()
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	s.server = &http.Server{Addr: s.Addr, Handler: s.engine}
	s.stopped = make(chan struct{})

	started := make(chan struct{})
	go func() {
		defer close(s.stopped)
		ln, err := net.Listen("tcp", s.Addr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "progress server: %v\n", err)
			close(started)
			return
		}
		fmt.Fprintf(os.Stderr, "progress server listening on %v (/metrics, /healthz)\n", s.Addr)
		close(started)
		s.server.Serve(ln)
	}()

	<-started
	return nil
}

// Stop shuts the server down, waiting up to two seconds before giving up.
func (s *Server) Stop() {
	if s.server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.server.Shutdown(ctx)

	select {
	case <-s.stopped:
		fmt.Fprintf(os.Stderr, "progress server stopped\n")
	case <-time.After(2 * time.Second):
		fmt.Fprintf(os.Stderr, "progress server would NOT stop: continuing on\n")
	}
}
