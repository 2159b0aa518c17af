package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/brightwall/backend/internal/auth"
	"github.com/brightwall/backend/internal/logging"
	"github.com/brightwall/backend/internal/models"
	"github.com/brightwall/backend/internal/moderation"
	"github.com/brightwall/backend/internal/repositories"
)

// AdminHandler implements the moderation endpoints. Every privileged
// handler re-checks the session cookie through the Guard; there is no
// server-side session state to consult.
type AdminHandler struct {
	Submissions SubmissionService
	Tokens      SessionIssuer
	Guard       Authorizer

	// Password is the shared moderator password; PasswordHash, when set,
	// is its bcrypt hash and takes precedence.
	Password     string
	PasswordHash string
}

// Login handles POST /api/v1/admin/login requests.
func (h AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Tokens == nil {
		logger.Error("session issuer unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "login unavailable"})
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Password == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "missing password"})
		return
	}

	if !h.checkPassword(req.Password) {
		logger.Warn("admin login rejected")
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "invalid password"})
		return
	}

	token, err := h.Tokens.Mint()
	if err != nil {
		logger.Error("failed to mint session token", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to create session"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Tokens.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	respondJSON(ctx, w, http.StatusOK, map[string]bool{"ok": true})
}

// Logout handles POST /api/v1/admin/logout requests. The token itself
// cannot be revoked before expiry; clearing the cookie instructs the
// caller to discard it.
func (h AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(r.Context(), w, http.StatusOK, map[string]bool{"ok": true})
}

// Me handles GET /api/v1/admin/me requests, letting the dashboard probe
// whether its session is still live.
func (h AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	if !h.authorized(r) {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]bool{"auth": false})
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]bool{"auth": true})
}

// List handles GET /api/v1/admin/submissions requests. Moderators may view
// any status, including all of them at once.
func (h AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !h.authorized(r) {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	if h.Submissions == nil {
		logger.Error("submission service unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "submission service unavailable"})
		return
	}

	query := r.URL.Query()
	submissions, err := h.Submissions.ListForModeration(ctx, query.Get("status"), query.Get("type"))
	if err != nil {
		if errors.Is(err, moderation.ErrInvalidFilter) {
			logger.Warn("moderation filter rejected", "error", err)
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid filter"})
			return
		}
		logger.Error("moderation listing failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load submissions"})
		return
	}

	if submissions == nil {
		submissions = []models.Submission{}
	}
	respondJSON(ctx, w, http.StatusOK, listResponse{Submissions: submissions})
}

// Approve handles POST /api/v1/admin/approve requests.
func (h AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "approve")
}

// Reject handles POST /api/v1/admin/reject requests.
func (h AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "reject")
}

func (h AdminHandler) transition(w http.ResponseWriter, r *http.Request, action string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !h.authorized(r) {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	if h.Submissions == nil {
		logger.Error("submission service unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "submission service unavailable"})
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid moderation payload", "action", action, "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if strings.TrimSpace(req.ID) == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "missing id"})
		return
	}

	var (
		submission models.Submission
		err        error
	)
	if action == "approve" {
		submission, err = h.Submissions.Approve(ctx, req.ID)
	} else {
		submission, err = h.Submissions.Reject(ctx, req.ID)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.Warn("moderation target missing", "action", action, "id", req.ID)
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "submission not found"})
			return
		}
		logger.Error("moderation action failed", "action", action, "id", req.ID, "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to update submission"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, transitionResponse{OK: true, Submission: submission})
}

func (h AdminHandler) authorized(r *http.Request) bool {
	return h.Guard != nil && h.Guard.Authorize(r)
}

func (h AdminHandler) checkPassword(password string) bool {
	if h.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(h.PasswordHash), []byte(password)) == nil
	}
	if h.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(h.Password), []byte(password)) == 1
}

type loginRequest struct {
	Password string `json:"password"`
}

type listResponse struct {
	Submissions []models.Submission `json:"submissions"`
}

type transitionRequest struct {
	ID string `json:"id"`
}

type transitionResponse struct {
	OK         bool              `json:"ok"`
	Submission models.Submission `json:"submission"`
}
