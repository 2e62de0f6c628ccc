// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/okian/availreport/internal/app"
	"github.com/okian/availreport/internal/domain/types"
	"github.com/okian/availreport/pkg/logger"
)

const defaultMaxUploadMB = 20

// Dependencies required by HTTP handlers. Using an interface keeps the
// handler layer loosely coupled to the generator implementation.
type Dependencies interface {
	// Variant is the default variant used when a request names none.
	Variant() string
	GenerateVariant(ctx context.Context, src service.Source, variant string) (service.Document, error)
	Inspect(ctx context.Context, src service.Source) (types.Overview, error)
}

// Server wires HTTP routes for the report API.
type Server struct {
	healthHandler  *HealthHandler
	reportHandler  *ReportHandler
	summaryHandler *SummaryHandler
}

// Option applies a configuration option to the Server.
type Option func(*serverOptions)

type serverOptions struct {
	maxUploadMB int
	logger      logger.Logger
}

// WithMaxUploadMB caps the size of multipart uploads.
func WithMaxUploadMB(mb int) Option {
	return func(o *serverOptions) {
		if mb > 0 {
			o.maxUploadMB = mb
		}
	}
}

// WithLogger sets a custom logger for the handlers.
func WithLogger(log logger.Logger) Option {
	return func(o *serverOptions) {
		if log != nil {
			o.logger = log
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	o := serverOptions{maxUploadMB: defaultMaxUploadMB, logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	maxBytes := int64(o.maxUploadMB) << 20
	return &Server{
		healthHandler:  NewHealthHandler(),
		reportHandler:  NewReportHandler(deps, maxBytes, o.logger),
		summaryHandler: NewSummaryHandler(deps, maxBytes),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /healthz", chain(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("POST /report", chain(s.reportHandler.HandleUpload, "report"))
	mux.Handle("GET /report/sample", chain(s.reportHandler.HandleSample, "report_sample"))
	mux.Handle("POST /summary", chain(s.summaryHandler.HandleSummary, "summary"))
}

func chain(h http.HandlerFunc, endpoint string) http.Handler {
	return RequestIDMiddleware(MetricsMiddleware(h, endpoint))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, types.ErrorResponse{Code: code, Message: msg})
}
