package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"lgb-dashboard/internal/analytics/application"
	"lgb-dashboard/internal/analytics/domain/statistic"
	"lgb-dashboard/internal/analytics/interfaces/export"
	"lgb-dashboard/internal/auth"
	"lgb-dashboard/internal/observability/metrics"
	production "lgb-dashboard/internal/production/domain"
)

// DashboardService is the application surface served over HTTP.
type DashboardService interface {
	Dashboard(ctx context.Context, criteria production.Criteria) (application.Dashboard, error)
	Options(ctx context.Context, criteria production.Criteria) (statistic.Options, error)
	Defaults(ctx context.Context) (production.Criteria, error)
}

// Handler provides dashboard HTTP endpoints.
type Handler struct {
	service DashboardService
	logger  *zap.Logger
	now     func() time.Time
}

// NewHandler constructs a handler.
func NewHandler(service DashboardService, logger *zap.Logger) (*Handler, error) {
	if service == nil {
		return nil, errors.New("dashboard handler: nil service")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service: service,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Routes returns the router mounted at /api/v1/dashboard.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.handleDashboard)
	r.Get("/options", h.handleOptions)
	r.Get("/defaults", h.handleDefaults)
	r.Get("/export.{format}", h.handleExport)
	return r
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context(), criteriaFromQuery(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, dashboard)
}

func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.Options(r.Context(), criteriaFromQuery(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, options)
}

func (h *Handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	criteria, err := h.service.Defaults(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, criteria)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	started := time.Now()
	dashboard, err := h.service.Dashboard(r.Context(), criteriaFromQuery(r))
	if err != nil {
		metrics.ObserveExport(string(format), err, time.Since(started))
		h.respondError(w, r, err)
		return
	}

	report := export.NewReport(dashboard, h.now())
	data, err := export.Build(report, format)
	metrics.ObserveExport(string(format), err, time.Since(started))
	if err != nil {
		h.logger.Error("export failed",
			zap.String("format", string(format)),
			zap.String("report_id", report.ID),
			zap.Error(err),
		)
		http.Error(w, "export error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("report exported",
		zap.String("format", string(format)),
		zap.String("report_id", report.ID),
		zap.String("subject", auth.SubjectFromContext(r.Context())),
		zap.Int("records", dashboard.RecordCount),
	)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(format)+`"`)
	w.Header().Set("X-Report-ID", report.ID)
	_, _ = w.Write(data)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, production.ErrInvalidDate) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.logger.Error("dashboard request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "dashboard error", http.StatusInternalServerError)
}

func criteriaFromQuery(r *http.Request) production.Criteria {
	query := r.URL.Query()
	return production.Criteria{
		Plant:   query.Get("plant"),
		Machine: query.Get("machine"),
		Shift:   query.Get("shift"),
		Process: query.Get("process"),
		Start:   query.Get("start"),
		End:     query.Get("end"),
	}
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(value)
}
