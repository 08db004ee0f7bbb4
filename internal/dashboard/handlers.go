package dashboard

import (
	"bytes"
	"encoding/json"
	"net/http"
	"path"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"

	"github.com/sekarsister/cement-targets/internal/emissions"
	"github.com/sekarsister/cement-targets/internal/workbook"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	view := ParseView(query.Get("view"))
	ctx, span := s.tracer.Start(r.Context(), "dashboard.render", trace.WithAttributes(
		attribute.String("dashboard.view", string(view)),
	))
	defer span.End()

	p := newPage(view, query)

	opts, err := parseZoom(query, s.chart)
	if err != nil {
		failSpan(span, err, "parse zoom")
		p.Error = err.Error()
		s.writePage(w, http.StatusBadRequest, p)
		return
	}

	records, err := s.normalized(ctx)
	if err != nil {
		klog.FromContext(ctx).Error(err, "load dataset", "source", s.loader.Name())
		failSpan(span, err, "load dataset")
		p.Error = "Could not load the company dataset: " + err.Error()
		s.writePage(w, http.StatusInternalServerError, p)
		return
	}

	fig, err := s.figure(view, records, opts)
	if err == nil {
		var svg []byte
		svg, err = fig.SVG()
		if err == nil {
			p.setChart(svg, fig.Hotspots())
		}
	}
	if err != nil {
		klog.FromContext(ctx).Error(err, "render chart", "view", view)
		failSpan(span, err, "render chart")
		p.Error = "Could not render the chart: " + err.Error()
		s.writePage(w, http.StatusInternalServerError, p)
		return
	}

	s.writePage(w, http.StatusOK, p)
}

func (s *Server) writePage(w http.ResponseWriter, status int, p *page) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		klog.ErrorS(err, "execute page template")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

var chartFormats = map[string]string{
	"svg": "image/svg+xml",
	"png": "image/png",
}

// handleChart serves /charts/{matrix|progress}.{svg|png}.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	ext := path.Ext(file)
	format := strings.TrimPrefix(ext, ".")
	name := strings.TrimSuffix(file, ext)

	contentType, ok := chartFormats[format]
	if !ok || (View(name) != MatrixView && View(name) != ProgressView) {
		http.NotFound(w, r)
		return
	}
	view := View(name)

	ctx, span := s.tracer.Start(r.Context(), "dashboard.chart", trace.WithAttributes(
		attribute.String("dashboard.view", string(view)),
		attribute.String("chart.format", format),
	))
	defer span.End()

	opts, err := parseZoom(r.URL.Query(), s.chart)
	if err != nil {
		failSpan(span, err, "parse zoom")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	records, err := s.normalized(ctx)
	if err != nil {
		failSpan(span, err, "load dataset")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	fig, err := s.figure(view, records, opts)
	if err != nil {
		failSpan(span, err, "render chart")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if _, err := fig.WriteTo(&buf, format); err != nil {
		failSpan(span, err, "encode chart")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = buf.WriteTo(w)
}

type recordsResponse struct {
	Records     []emissions.NormalizedRecord `json:"records"`
	Projections []emissions.Projection       `json:"projections"`
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.normalized(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, recordsResponse{
		Records:     records,
		Projections: emissions.ProjectAll(records),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		klog.ErrorS(err, "encode json response")
	}
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	records, err := s.normalized(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := workbook.Write(&buf, records); err != nil {
		klog.ErrorS(err, "export workbook")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="cement_targets.xlsx"`)
	_, _ = buf.WriteTo(w)
}
