package api

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"medsum/pipeline"
)

// Server represents the API server
type Server struct {
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
	port     int
}

// NewServer creates a new API server
func NewServer(p *pipeline.Pipeline, port int, logger *zap.Logger) *Server {
	return &Server{
		pipeline: p,
		logger:   logger,
		port:     port,
	}
}

// Start starts the API server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/summarize", s.SummarizeHandler)

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	s.logger.Info("starting API server", zap.Int("port", s.port))
	return http.ListenAndServe(":"+strconv.Itoa(s.port), mux)
}
