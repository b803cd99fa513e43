package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"ttreviews/db"
	"ttreviews/model"
	"ttreviews/moderation"
)

type approveRequest struct {
	ModeratorID string `json:"moderator_id"`
	Notes       string `json:"notes"`
}

type rejectRequest struct {
	ModeratorID string `json:"moderator_id"`
	Category    string `json:"category"`
	Reason      string `json:"reason"`
}

type createRequest struct {
	AuthorID       string `json:"author_id"`
	AuthorNickname string `json:"author_nickname"`
	Name           string `json:"name"`
	Summary        string `json:"summary"`
	Details        string `json:"details"`
	TargetID       string `json:"target_id"`
	ImageKey       string `json:"image_key"`
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}

	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ModeratorID == "" {
		writeJSON(w, http.StatusBadRequest, moderation.Result{Error: "moderator_id is required"})
		return
	}

	res := s.svc.RecordApproval(r.Context(), kind, chi.URLParam(r, "id"), req.ModeratorID, model.SourceAdminUI, req.Notes)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}

	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ModeratorID == "" {
		writeJSON(w, http.StatusBadRequest, moderation.Result{Error: "moderator_id is required"})
		return
	}

	res := s.svc.RecordRejection(r.Context(), kind, chi.URLParam(r, "id"), req.ModeratorID, model.SourceAdminUI,
		model.Rejection{Category: req.Category, Reason: req.Reason})
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleApprovals(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}

	records := s.svc.SubmissionApprovals(r.Context(), kind, chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"approvals": records,
	})
}

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}

	submissions, err := s.store.Pending(r.Context(), kind, 50)
	if err != nil {
		log.Errorf("Failed to load pending %s submissions: %v", kind, err)
		writeJSON(w, http.StatusInternalServerError, moderation.Result{Error: "could not load queue"})
		return
	}
	if submissions == nil {
		submissions = []*model.Submission{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"submissions": submissions,
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AuthorID == "" || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, moderation.Result{Error: "author_id and name are required"})
		return
	}

	sub, err := s.store.Create(r.Context(), kind, db.NewSubmission{
		AuthorID:       req.AuthorID,
		AuthorNickname: req.AuthorNickname,
		Name:           req.Name,
		Summary:        req.Summary,
		Details:        req.Details,
		TargetID:       req.TargetID,
		ImageKey:       req.ImageKey,
	})
	if err != nil {
		log.Errorf("Failed to create %s submission: %v", kind, err)
		writeJSON(w, http.StatusInternalServerError, moderation.Result{Error: "could not create submission"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"submission": sub,
	})
}
