// Package handlers implements the HTTP endpoints for stories, signals,
// analysis runs, and exports.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/crosswatch-systems/crosswatch/internal/export"
	"github.com/crosswatch-systems/crosswatch/internal/models"
	"github.com/crosswatch-systems/crosswatch/internal/repository"
	"github.com/crosswatch-systems/crosswatch/internal/service"
	"github.com/crosswatch-systems/crosswatch/pkg/httputil"
	"github.com/crosswatch-systems/crosswatch/pkg/logging"
)

// Listing caps. Callers may lower the limit but never raise it past the max.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// Handler serves the crosswatch API.
type Handler struct {
	svc    *service.Service
	logger *logging.Logger
}

// New creates an API handler over the service.
func New(svc *service.Service, logger *logging.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Health responds to liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListStories returns the stored snapshot, filtered by region and category.
func (h *Handler) ListStories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.StoryFilter{
		Region:   q.Get("region"),
		Category: q.Get("category"),
		Limit:    parseLimit(q.Get("limit")),
	}

	stories, err := h.svc.ListStories(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list stories", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to list stories")
		return
	}
	if stories == nil {
		stories = []models.Event{}
	}
	httputil.WriteSuccess(w, http.StatusOK, stories)
}

// GetStory returns one story by path ID.
func (h *Handler) GetStory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		httputil.WriteError(w, http.StatusBadRequest, "story id is required")
		return
	}

	story, err := h.svc.GetStory(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httputil.WriteError(w, http.StatusNotFound, "story not found")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to get story", "id", id, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to get story")
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, story)
}

// ReplaceStories swaps the stored snapshot with the posted one.
func (h *Handler) ReplaceStories(w http.ResponseWriter, r *http.Request) {
	var stories []models.Event
	if err := json.NewDecoder(r.Body).Decode(&stories); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.ReplaceStories(r.Context(), stories); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to replace stories", "error", err)
		httputil.WriteError(w, http.StatusBadRequest, "failed to replace stories")
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, map[string]int{"count": len(stories)})
}

// ListSignals returns stored signals, filtered by severity and type.
func (h *Handler) ListSignals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.SignalFilter{
		Severity: q.Get("severity"),
		Type:     q.Get("type"),
		Limit:    parseLimit(q.Get("limit")),
	}

	signals, err := h.svc.ListSignals(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list signals", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "failed to list signals")
		return
	}
	if signals == nil {
		signals = []models.Signal{}
	}
	httputil.WriteSuccess(w, http.StatusOK, signals)
}

// RunAnalysis triggers a full analysis run and returns the report plus the
// projected signals.
func (h *Handler) RunAnalysis(w http.ResponseWriter, r *http.Request) {
	report, signals, err := h.svc.RunAnalysis(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "analysis run failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "analysis run failed")
		return
	}
	if signals == nil {
		signals = []models.Signal{}
	}
	httputil.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"report":  report,
		"signals": signals,
	})
}

// Export streams stories or signals in the requested format.
// Query parameters: resource=stories|signals, format=json|csv.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resource := q.Get("resource")
	format := q.Get("format")
	if format == "" {
		format = "json"
	}

	var (
		data []byte
		err  error
	)
	switch {
	case resource == "stories" && format == "json":
		var stories []models.Event
		if stories, err = h.svc.ListStories(r.Context(), models.StoryFilter{}); err == nil {
			data, err = export.StoriesJSON(stories)
		}
	case resource == "stories" && format == "csv":
		var stories []models.Event
		if stories, err = h.svc.ListStories(r.Context(), models.StoryFilter{}); err == nil {
			data, err = export.StoriesCSV(stories)
		}
	case resource == "signals" && format == "json":
		var signals []models.Signal
		if signals, err = h.svc.ListSignals(r.Context(), models.SignalFilter{}); err == nil {
			data, err = export.SignalsJSON(signals)
		}
	case resource == "signals" && format == "csv":
		var signals []models.Signal
		if signals, err = h.svc.ListSignals(r.Context(), models.SignalFilter{}); err == nil {
			data, err = export.SignalsCSV(signals)
		}
	default:
		httputil.WriteError(w, http.StatusBadRequest,
			"resource must be stories or signals, format must be json or csv")
		return
	}

	if err != nil {
		h.logger.ErrorContext(r.Context(), "export failed",
			"resource", resource, "format", format, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "export failed")
		return
	}

	if format == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+resource+".csv")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func parseLimit(raw string) int {
	if raw == "" {
		return DefaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
