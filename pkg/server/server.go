// pkg/server/server.go

package server

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/invoice-generator/docs" // registers the OpenAPI document
	"github.com/invoice-generator/pkg/archive"
	"github.com/invoice-generator/pkg/config"
	"github.com/invoice-generator/pkg/invoice"
	"github.com/invoice-generator/pkg/storage"
	"github.com/invoice-generator/web"
)

// Renderer writes an invoice document to a sink.
type Renderer interface {
	Render(inv *invoice.Invoice, w io.Writer) error
}

// Deps are the collaborators of a Server.
type Deps struct {
	Normalizer *invoice.Normalizer
	Renderer   Renderer
	Store      storage.Store
	Archive    archive.Recorder
	Logger     *zap.Logger
}

// Server serves the invoice API and the form.
type Server struct {
	cfg        *config.Config
	normalizer *invoice.Normalizer
	renderer   Renderer
	store      storage.Store
	archive    archive.Recorder
	log        *zap.Logger
	form       *template.Template
}

// New creates a Server. Archive and Logger are optional.
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.Normalizer == nil || deps.Renderer == nil || deps.Store == nil {
		return nil, fmt.Errorf("server requires a normalizer, a renderer and a store")
	}
	if deps.Archive == nil {
		deps.Archive = archive.NopRecorder{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	form, err := web.FormTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to parse form template: %w", err)
	}
	return &Server{
		cfg:        cfg,
		normalizer: deps.Normalizer,
		renderer:   deps.Renderer,
		store:      deps.Store,
		archive:    deps.Archive,
		log:        deps.Logger,
		form:       form,
	}, nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(requestID, s.accessLog, s.recoverer, s.cors)

	r.HandleFunc("/", s.indexHandler).Methods(http.MethodGet)
	r.HandleFunc("/generate-invoice", s.generateInvoiceHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/healthz", s.healthHandler).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

// HTTPServer wraps Handler in an http.Server listening on the configured
// address.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
