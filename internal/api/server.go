package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the API routes on a fresh router
func NewRouter(handler *Handler, logger *logrus.Logger) *mux.Router {
	router := mux.NewRouter()
	Register(router, handler, logger)
	return router
}

// Register mounts the API routes on an existing router
func Register(router *mux.Router, handler *Handler, logger *logrus.Logger) {
	if logger == nil {
		logger = logrus.New()
	}
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggingMiddleware(logger))

	router.HandleFunc("/features/{gamePK:[0-9]+}", handler.GetFeatures).Methods("GET")
	router.HandleFunc("/stake", handler.GetStake).Methods("GET")
}

// Server represents the REST API server
type Server struct {
	port   int
	server *http.Server
	logger *logrus.Logger
}

// NewServer creates a new REST API server
func NewServer(port int, handler *Handler, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	return &Server{
		port:   port,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      NewRouter(handler, logger),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.WithField("port", s.port).Info("API server starting")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
