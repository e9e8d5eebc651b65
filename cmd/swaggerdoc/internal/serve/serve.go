// Package serve previews generated documentation over HTTP.
//
// Documents are generated once into memory at startup. GET /models runs the
// model extractor on demand:
//
//	GET /models?type=com.acme.User
//	GET /models?type=com.acme.Page<com.acme.User>
package serve

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/broady/swaggerdoc"
	"github.com/broady/swaggerdoc/cmd/swaggerdoc/internal/load"
	"github.com/broady/swaggerdoc/sink"
	"github.com/broady/swaggerdoc/symbol/memsrc"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(true)
}

type Cmd struct {
	load.Flags `embed:""`

	Addr         string   `help:"Address to listen on." default:"localhost:8080" env:"SWAGGERDOC_ADDR"`
	AllowOrigins []string `help:"Origins allowed to fetch documents. Empty allows all." name:"allow-origin" env:"SWAGGERDOC_ALLOW_ORIGINS"`
}

func (c *Cmd) Run(ctx context.Context, logger *slog.Logger) error {
	g, err := c.Generator(ctx, logger)
	if err != nil {
		return err
	}
	srv, err := NewServer(ctx, g, logger)
	if err != nil {
		return err
	}
	srv.AllowOrigins = c.AllowOrigins

	hs := &http.Server{
		Addr:              c.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdown)
	}()

	logger.Info("serving documentation", slog.String("url", "http://"+c.Addr+"/"+swaggerdoc.ListingFile))
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Server serves documents from a memory sink.
type Server struct {
	// AllowOrigins restricts cross-origin access. Empty allows every origin.
	AllowOrigins []string

	gen    *swaggerdoc.Generator
	docs   *sink.Memory
	logger *slog.Logger
}

// NewServer generates the documentation of g into memory.
func NewServer(ctx context.Context, g *swaggerdoc.Generator, logger *slog.Logger) (*Server, error) {
	docs := sink.NewMemory()
	if _, err := g.Generate(ctx, docs); err != nil {
		return nil, err
	}
	return &Server{gen: g, docs: docs, logger: logger}, nil
}

// PreflightMaxAge is how long browsers may cache a CORS preflight response.
const PreflightMaxAge = 10 * time.Minute

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /models", s.handleModels)
	mux.HandleFunc("GET /{path...}", s.handleFile)
	return Logging(s.logger)(CORS(s.AllowOrigins, PreflightMaxAge)(mux))
}

// ModelsQuery is the query string of GET /models.
type ModelsQuery struct {
	Type string `schema:"type" validate:"required"`
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	var q ModelsQuery
	if err := schemaDecoder.Decode(&q, r.URL.Query()); err != nil {
		s.writeError(w, swaggerdoc.NewError(swaggerdoc.CodeInvalidArgument, err.Error()))
		return
	}
	if err := validate.Struct(q); err != nil {
		s.writeError(w, err)
		return
	}
	t, err := memsrc.ParseType(q.Type)
	if err != nil {
		s.writeError(w, swaggerdoc.Errorf(swaggerdoc.CodeInvalidArgument, "type: %v", err))
		return
	}
	models, err := s.gen.Models(t)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if models.Len() == 0 {
		s.writeError(w, swaggerdoc.Errorf(swaggerdoc.CodeNotFound, "no models for %s", q.Type))
		return
	}
	s.writeJSON(w, models)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.PathValue("path"), "/")
	if path == "" {
		path = swaggerdoc.ListingFile
	}
	data := s.docs.Get(path)
	if data == nil {
		s.writeError(w, swaggerdoc.Errorf(swaggerdoc.CodeNotFound, "%s not found", path))
		return
	}
	if strings.HasSuffix(path, ".json") {
		w.Header().Set("Content-Type", "application/json")
	}
	_, _ = w.Write(data)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	e := swaggerdoc.AsError(err)
	status := e.Code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", slog.Any("error", err))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]any{"code": e.Code, "message": e.Message}
	if len(e.Details) > 0 {
		body["details"] = e.Details
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encode error response", slog.Any("error", err))
	}
}
