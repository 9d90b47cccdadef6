package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wildlifewatch/conservation-hub/pkg/core/gamification"
	"github.com/wildlifewatch/conservation-hub/pkg/core/model"
	"github.com/wildlifewatch/conservation-hub/pkg/core/ranking"
	"github.com/wildlifewatch/conservation-hub/pkg/core/services"
	"github.com/wildlifewatch/conservation-hub/pkg/i18n"
)

type healthResponse struct {
	Status   string     `json:"status"`
	LoadedAt *time.Time `json:"loadedAt,omitempty"`
}

type visitorResponse struct {
	VisitorID string `json:"visitorId"`
}

type organizationRequest struct {
	OrganizationID string `json:"organizationId"`
}

// locale takes the path segment when it names a supported locale and
// negotiates from Accept-Language otherwise
func locale(r *http.Request) model.Locale {
	if l, ok := i18n.ParseLocale(r.PathValue("locale")); ok {
		return l
	}
	return i18n.MatchLocale(r.Header.Get("Accept-Language"))
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if loadedAt, ok := s.cache.LoadedAt(); ok {
		resp.LoadedAt = &loadedAt
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListOrganizations handles GET /api/locales/{locale}/organizations
func (s *Server) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sortMode, err := ranking.ParseSortMode(q.Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	status := model.Status(q.Get("status"))
	if status != "" && !status.IsValid() {
		writeError(w, http.StatusBadRequest, "unknown status "+string(status))
		return
	}

	list, err := services.ListOrganizations(r.Context(), s.cache, s.localizer, s.logger, services.ListOptions{
		Locale: locale(r),
		Sort:   sortMode,
		Query:  q.Get("q"),
		Status: status,
	}, s.now())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetOrganization handles GET /api/locales/{locale}/organizations/{id}
func (s *Server) GetOrganization(w http.ResponseWriter, r *http.Request) {
	detail, err := services.GetOrganization(r.Context(), s.cache, s.localizer, s.logger, r.PathValue("id"), locale(r), s.now())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) OrganizationReminder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ics, err := services.OrganizationReminder(r.Context(), s.cache, s.localizer, s.logger, id, locale(r), s.now())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeCalendar(w, r, id+".ics", ics)
}

func (s *Server) SiteCalendar(w http.ResponseWriter, r *http.Request) {
	ics, err := services.SiteCalendar(r.Context(), s.cache, s.localizer, s.logger, locale(r), s.now())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeCalendar(w, r, "donation-windows.ics", ics)
}

// ListHighlights handles GET /api/locales/{locale}/highlights?featured=true
func (s *Server) ListHighlights(w http.ResponseWriter, r *http.Request) {
	highlights, err := services.ListHighlights(r.Context(), s.cache, r.URL.Query().Get("featured") == "true")
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, highlights)
}

func (s *Server) ListAchievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, services.ListAchievements(s.localizer, locale(r)))
}

// CreateVisitor handles POST /api/visitors
func (s *Server) CreateVisitor(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, visitorResponse{VisitorID: gamification.NewVisitorID()})
}

func (s *Server) VisitorProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := services.VisitorProgress(r.Context(), s.tracker, s.localizer, r.PathValue("visitor"), i18n.MatchLocale(r.Header.Get("Accept-Language")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// ConfirmSupport handles POST /api/visitors/{visitor}/support
func (s *Server) ConfirmSupport(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeOrganizationRequest(w, r)
	if !ok {
		return
	}
	result, err := services.ConfirmSupport(r.Context(), s.cache, s.tracker, s.localizer, s.logger,
		r.PathValue("visitor"), req.OrganizationID, i18n.MatchLocale(r.Header.Get("Accept-Language")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) RecordClick(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeOrganizationRequest(w, r)
	if !ok {
		return
	}
	result, err := services.RecordDonationClick(r.Context(), s.cache, s.tracker, s.localizer,
		r.PathValue("visitor"), req.OrganizationID, i18n.MatchLocale(r.Header.Get("Accept-Language")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) RecordVisit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeOrganizationRequest(w, r)
	if !ok {
		return
	}
	result, err := services.RecordVisit(r.Context(), s.cache, s.tracker, s.localizer,
		r.PathValue("visitor"), req.OrganizationID, i18n.MatchLocale(r.Header.Get("Accept-Language")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) RecordWatering(w http.ResponseWriter, r *http.Request) {
	result, err := services.RecordWatering(r.Context(), s.tracker, s.localizer,
		r.PathValue("visitor"), i18n.MatchLocale(r.Header.Get("Accept-Language")))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// InvalidateCache handles POST /api/cache/invalidate
func (s *Server) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	s.cache.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// DebugColumns reads the organizations tab directly, bypassing the cache
func (s *Server) DebugColumns(w http.ResponseWriter, r *http.Request) {
	if s.columns == nil {
		writeError(w, http.StatusNotFound, "column inspection not configured")
		return
	}
	report, err := services.InspectColumns(r.Context(), s.columns, s.logger)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func decodeOrganizationRequest(w http.ResponseWriter, r *http.Request) (organizationRequest, bool) {
	var req organizationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<12)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.OrganizationID == "" {
		writeError(w, http.StatusBadRequest, "organizationId is required")
		return req, false
	}
	return req, true
}
