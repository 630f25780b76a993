package http

import (
	"net/http"
	"strconv"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) handleCreateCase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OwnerID        types.UserID `json:"owner_id"`
		Title          string       `json:"title"`
		Description    string       `json:"description"`
		Objectives     string       `json:"objectives"`
		Constraints    string       `json:"constraints"`
		Context        string       `json:"context"`
		Risks          string       `json:"risks"`
		AdditionalText string       `json:"additional_text"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := s.uc.CreateCase(r.Context(), &model.DecisionCase{
		OwnerID:        req.OwnerID,
		Title:          req.Title,
		Description:    req.Description,
		Objectives:     req.Objectives,
		Constraints:    req.Constraints,
		Context:        req.Context,
		Risks:          req.Risks,
		AdditionalText: req.AdditionalText,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	respondJSON(w, r, created)
}

func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	ownerID := types.UserID(r.URL.Query().Get("userId"))
	if ownerID == "" {
		handleError(w, r, goerr.New("userId query parameter is required"))
		return
	}

	cases, err := s.uc.ListCases(r.Context(), ownerID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, cases)
}

func (s *Server) handleGetCase(w http.ResponseWriter, r *http.Request) {
	caseID := types.CaseID(chi.URLParam(r, "caseID"))

	c, err := s.uc.GetCase(r.Context(), caseID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, c)
}

func (s *Server) handleUpdateCase(w http.ResponseWriter, r *http.Request) {
	caseID := types.CaseID(chi.URLParam(r, "caseID"))

	existing, err := s.uc.GetCase(r.Context(), caseID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	// decode over the stored record so omitted fields keep their values
	c := *existing
	if err := decodeBody(r, &c); err != nil {
		handleError(w, r, err)
		return
	}
	c.ID = caseID
	c.OwnerID = existing.OwnerID

	updated, err := s.uc.UpdateCase(r.Context(), &c)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, updated)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	caseID := types.CaseID(chi.URLParam(r, "caseID"))

	analyses, err := s.uc.ListAnalyses(r.Context(), caseID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, analyses)
}

func (s *Server) handleListRevisions(w http.ResponseWriter, r *http.Request) {
	caseID := types.CaseID(chi.URLParam(r, "caseID"))

	revisions, err := s.uc.ListRevisions(r.Context(), caseID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, revisions)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	caseID := types.CaseID(chi.URLParam(r, "caseID"))

	members, err := s.uc.ListMembers(r.Context(), caseID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, members)
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := types.UserID(r.URL.Query().Get("userId"))
	if userID == "" {
		handleError(w, r, goerr.New("userId query parameter is required"))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			handleError(w, r, goerr.New("invalid limit", goerr.V("limit", raw)))
			return
		}
		limit = parsed
	}

	notifications, err := s.uc.ListNotifications(r.Context(), userID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, notifications)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := types.NotificationID(chi.URLParam(r, "notificationID"))

	if err := s.uc.MarkNotificationRead(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, map[string]bool{"success": true})
}
