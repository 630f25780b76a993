package http

import (
	"net/http"

	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/decide-lab/decidehub/pkg/usecase"
	"github.com/decide-lab/decidehub/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) handleAnalyzeDecision(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CaseID types.CaseID `json:"caseId"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.CaseID == "" {
		handleError(w, r, goerr.New("caseId is required"))
		return
	}

	analysis, err := s.uc.AnalyzeDecision(r.Context(), req.CaseID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, analysis)
}

func (s *Server) handleSimulateRisk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CaseID types.CaseID `json:"caseId"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.CaseID == "" {
		handleError(w, r, goerr.New("caseId is required"))
		return
	}

	c, err := s.uc.GetCase(r.Context(), req.CaseID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	quota, err := s.uc.CanCreateSimulation(r.Context(), c.OwnerID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if !quota.Allowed {
		handleError(w, r, goerr.Wrap(usecase.ErrSimulationQuotaExceeded, "monthly simulation limit reached",
			goerr.V("used", quota.Used),
			goerr.V("limit", quota.Limit),
		))
		return
	}

	simulation, err := s.uc.SimulateRisk(r.Context(), req.CaseID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, simulation)
}

func (s *Server) handleCanCreateSimulation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID types.UserID `json:"userId"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.UserID == "" {
		handleError(w, r, goerr.New("userId is required"))
		return
	}

	quota, err := s.uc.CanCreateSimulation(r.Context(), req.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, quota)
}

func (s *Server) handleGenerateInsights(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID types.UserID `json:"userId"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.UserID == "" {
		handleError(w, r, goerr.New("userId is required"))
		return
	}

	insights, err := s.uc.GenerateInsights(r.Context(), req.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, insights)
}

func (s *Server) handleCreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID types.UserID `json:"userId"`
		Plan   types.Plan   `json:"plan"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	// The redirect URLs are built from the calling page's origin
	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = "http://localhost:3000"
	}

	result, err := s.uc.CreateCheckout(r.Context(), req.UserID, req.Plan, origin)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, result)
}

func (s *Server) handleSetupProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.uc.SetupProducts(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, map[string]any{
		"success":  true,
		"products": products,
	})
}

func (s *Server) handleExportDecision(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CaseID types.CaseID `json:"caseId"`
		Format string       `json:"format"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.CaseID == "" {
		handleError(w, r, goerr.New("caseId is required"))
		return
	}

	format, err := types.ParseExportFormat(req.Format)
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.uc.ExportCase(r.Context(), req.CaseID, format)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	if format == types.ExportCSV {
		w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	}
	safe.Write(r.Context(), w, result.Body)
}

func (s *Server) handleInviteMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CaseID types.CaseID   `json:"caseId"`
		UserID types.UserID   `json:"userId"`
		Email  string         `json:"email"`
		Role   types.TeamRole `json:"role"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.CaseID == "" || req.Email == "" {
		handleError(w, r, goerr.New("caseId and email are required"))
		return
	}

	member, err := s.uc.InviteMember(r.Context(), req.CaseID, req.UserID, req.Email, req.Role)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, member)
}

func (s *Server) handleCreateInvitation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CaseID types.CaseID   `json:"caseId"`
		UserID types.UserID   `json:"userId"`
		Email  string         `json:"email"`
		Role   types.TeamRole `json:"role"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.CaseID == "" || req.Email == "" {
		handleError(w, r, goerr.New("caseId and email are required"))
		return
	}

	invitation, err := s.uc.CreateInvitation(r.Context(), req.CaseID, req.UserID, req.Email, req.Role)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, invitation)
}

func (s *Server) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InvitationID types.InvitationID `json:"invitationId"`
		UserID       types.UserID       `json:"userId"`
	}
	if err := decodeBody(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.InvitationID == "" || req.UserID == "" {
		handleError(w, r, goerr.New("invitationId and userId are required"))
		return
	}

	member, err := s.uc.AcceptInvitation(r.Context(), req.InvitationID, req.UserID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, member)
}
