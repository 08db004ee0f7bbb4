// Package dashboard serves the browser view of the cement targets: a tabbed
// page with the ambition matrix and the progress projection, chart
// downloads, a JSON feed and the workbook export.
//
// Every request runs the whole pipeline again (load, normalize, project,
// render) against a fresh copy of the dataset; the server holds no state
// that a request could change.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"

	"github.com/sekarsister/cement-targets/internal/charts"
	"github.com/sekarsister/cement-targets/internal/dataset"
	"github.com/sekarsister/cement-targets/internal/emissions"
)

const tracerName = "github.com/sekarsister/cement-targets/internal/dashboard"

// Config configures a dashboard server.
type Config struct {
	HTTPAddr        string
	Loader          dataset.Loader
	Chart           charts.Options
	ShutdownTimeout time.Duration
}

type Server struct {
	httpAddr        string
	loader          dataset.Loader
	chart           charts.Options
	shutdownTimeout time.Duration
	tracer          trace.Tracer
	httpServer      *http.Server
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.Loader == nil {
		return nil, errors.New("dataset loader is required")
	}
	if cfg.HTTPAddr == "" {
		return nil, errors.New("http address is required")
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}

	s := &Server{
		httpAddr:        cfg.HTTPAddr,
		loader:          cfg.Loader,
		chart:           cfg.Chart,
		shutdownTimeout: cfg.ShutdownTimeout,
		tracer:          otel.Tracer(tracerName),
	}
	s.httpServer = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /charts/{file}", s.handleChart)
	mux.HandleFunc("GET /api/records", s.handleRecords)
	mux.HandleFunc("GET /export.xlsx", s.handleExport)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return logRequests(mux)
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	klog.InfoS("dashboard listening", "addr", s.httpAddr, "dataset", s.loader.Name())
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// normalized loads a private copy of the dataset and indexes it.
func (s *Server) normalized(ctx context.Context) ([]emissions.NormalizedRecord, error) {
	ctx, span := s.tracer.Start(ctx, "dataset.load", trace.WithAttributes(
		attribute.String("dataset.source", s.loader.Name()),
	))
	defer span.End()

	records, err := s.loader.Load(ctx)
	if err != nil {
		failSpan(span, err, "load dataset")
		return nil, err
	}
	span.SetAttributes(attribute.Int("dataset.companies", len(records)))
	return emissions.Normalize(records), nil
}

func (s *Server) figure(view View, records []emissions.NormalizedRecord, opts charts.Options) (*charts.Figure, error) {
	if view == ProgressView {
		return charts.ProgressProjection(records, opts)
	}
	return charts.AmbitionMatrix(records, opts)
}

func failSpan(span trace.Span, err error, msg string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
}
