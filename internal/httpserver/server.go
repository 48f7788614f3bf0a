package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinytelemetry/sshmon/internal/dataset"
	"github.com/tinytelemetry/sshmon/internal/model"
	"github.com/tinytelemetry/sshmon/internal/timeseries"
)

// Server exposes the analytics pipeline over a REST API. The loaded dataset
// is immutable, so handlers evaluate filters per request without locking.
type Server struct {
	addr      string
	ds        *dataset.Dataset
	parser    timeseries.Parser
	store     model.SchemaQuerier // nil when the source is unstructured
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a new HTTP API server over a loaded dataset. The store
// may be nil; the SQL endpoints then report the reduced feature set.
func NewServer(addr string, ds *dataset.Dataset, parser timeseries.Parser, store model.SchemaQuerier) *Server {
	if addr == "" {
		addr = "0.0.0.0:3000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		ds:     ds,
		parser: parser,
		store:  store,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/api/health", s.handleHealth)
	r.GET("/api/dataset", s.handleDataset)
	r.GET("/api/summary", s.handleSummary)
	r.GET("/api/events", s.handleEvents)
	r.GET("/api/lines", s.handleLines)
	r.GET("/api/schema", s.handleSchema)
	r.POST("/api/query", s.handleQuery)
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	s.registerRoutes(r)

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
