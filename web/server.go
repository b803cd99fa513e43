// Package web exposes the moderation workflow over the admin HTTP API.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"ttreviews/db"
	"ttreviews/model"
	"ttreviews/moderation"
)

// SubmissionStore covers the intake and queue reads the admin API needs on
// top of the moderation workflow.
type SubmissionStore interface {
	Create(ctx context.Context, kind model.Kind, in db.NewSubmission) (*model.Submission, error)
	Pending(ctx context.Context, kind model.Kind, limit int) ([]*model.Submission, error)
}

// Server serves the admin API. Every moderation response carries the uniform
// {success, newStatus?, error?} shape the admin UI branches on.
type Server struct {
	svc    *moderation.Service
	store  SubmissionStore
	cfg    model.Admin
	router chi.Router
}

func NewServer(svc *moderation.Service, store SubmissionStore, cfg model.Admin) *Server {
	s := &Server{svc: svc, store: store, cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requireToken)

	r.Route("/api", func(r chi.Router) {
		r.Post("/moderation/{kind}/{id}/approve", s.handleApprove)
		r.Post("/moderation/{kind}/{id}/reject", s.handleReject)
		r.Get("/moderation/{kind}/{id}/approvals", s.handleApprovals)
		r.Get("/queue/{kind}", s.handleQueue)
		r.Post("/submissions/{kind}", s.handleCreate)
	})

	s.router = r
	return s
}

// Handler returns the route tree, exposed for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving the admin API until the context is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Listen, Handler: s.router}

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Errorf("Admin API shutdown: %v", err)
		}
	}()

	log.Infof("Admin API listening on %s", s.cfg.Listen)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// requireToken guards every route with the static admin bearer token.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if s.cfg.Token == "" || token != s.cfg.Token {
			writeJSON(w, http.StatusUnauthorized, moderation.Result{Error: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// parseKind resolves the {kind} path parameter, writing a 400 on failure.
func parseKind(w http.ResponseWriter, r *http.Request) (model.Kind, bool) {
	kind, err := model.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, moderation.Result{Error: err.Error()})
		return "", false
	}
	return kind, true
}
