package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/quotedeck/quotedeck/internal/batch"
	"github.com/quotedeck/quotedeck/internal/pipeline"
)

// BatchRunner runs the whole pipeline for one request's documents with
// the request's interviewer name. Injected so the HTTP layer can be
// tested without a model.
type BatchRunner func(ctx context.Context, interviewer string, docs []batch.Document) ([]batch.MergedRow, []pipeline.Diagnostic, error)

type Server struct {
	router      *chi.Mux
	port        int
	uploadDir   string
	outputDir   string
	writeDigest bool
	runBatch    BatchRunner
	logger      *slog.Logger
}

type Options struct {
	Port        int
	UploadDir   string
	OutputDir   string
	WriteDigest bool
}

func NewServer(opts Options, runBatch BatchRunner, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:      router,
		port:        opts.Port,
		uploadDir:   opts.UploadDir,
		outputDir:   opts.OutputDir,
		writeDigest: opts.WriteDigest,
		runBatch:    runBatch,
		logger:      logger,
	}

	router.Get("/", s.index)
	router.Get("/health", s.health)
	router.Post("/generate_excel", s.generateExcel)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"status":"ok"}`)
}
