package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/brightwall/backend/internal/logging"
	"github.com/brightwall/backend/internal/models"
	"github.com/brightwall/backend/internal/moderation"
)

// publicFeedLimit is the default page size for the public wall.
const publicFeedLimit = 100

// SubmissionHandler implements the public submit and feed endpoints.
type SubmissionHandler struct {
	Submissions SubmissionService
}

// Submit handles POST /api/v1/submissions requests.
func (h SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Submissions == nil {
		logger.Error("submission service unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "submission service unavailable"})
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid submit payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	submission, err := h.Submissions.Create(ctx, req.Type, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, moderation.ErrInvalidType):
			logger.Warn("submit rejected", "error", err)
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid type"})
		case errors.Is(err, moderation.ErrInvalidContent):
			logger.Warn("submit rejected", "error", err)
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid text"})
		default:
			logger.Error("submit failed", "error", err)
			respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to save submission"})
		}
		return
	}

	respondJSON(ctx, w, http.StatusOK, submitResponse{OK: true, ID: submission.ID})
}

// Feed handles GET /api/v1/feed requests. Only approved submissions are
// ever returned here.
func (h SubmissionHandler) Feed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Submissions == nil {
		logger.Error("submission service unavailable")
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "submission service unavailable"})
		return
	}

	limit := publicFeedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	items, err := h.Submissions.ListForPublic(ctx, r.URL.Query().Get("type"), limit)
	if err != nil {
		if errors.Is(err, moderation.ErrInvalidFilter) {
			logger.Warn("feed filter rejected", "error", err)
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid type"})
			return
		}
		logger.Error("feed query failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load feed"})
		return
	}

	if items == nil {
		items = []models.Submission{}
	}
	respondJSON(ctx, w, http.StatusOK, feedResponse{Items: items})
}

type submitRequest struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type submitResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

type feedResponse struct {
	Items []models.Submission `json:"items"`
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}
