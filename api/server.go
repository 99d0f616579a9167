package api

import (
	"net/http"
	"strconv"

	"pictora/pipeline"
	"pictora/repository"
	"pictora/search"

	"go.uber.org/zap"
)

// Server exposes the search and project-lifecycle operations over HTTP.
type Server struct {
	handlers *Handlers
	port     int
}

func NewServer(orchestrator *search.Orchestrator, pipe *pipeline.Pipeline,
	vectors repository.ProjectVectorRepo, logger *zap.Logger, port int) *Server {
	return &Server{
		handlers: NewHandlers(orchestrator, pipe, vectors, logger),
		port:     port,
	}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/search", s.handlers.Search)
	mux.HandleFunc("/api/projects", s.handlers.CreateProject)
	mux.HandleFunc("/api/projects/save", s.handlers.SaveProject)
	mux.HandleFunc("/api/projects/description", s.handlers.UpdateDescription)
	mux.HandleFunc("/api/projects/", s.handlers.DeleteProject)
	mux.HandleFunc("/api/admin/index", s.handlers.ResetIndex)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return http.ListenAndServe(":"+strconv.Itoa(s.port), mux)
}
