package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/brightwall/backend/internal/models"
	"github.com/brightwall/backend/internal/moderation"
	"github.com/brightwall/backend/internal/repositories"
)

// memStore is an in-memory repositories.SubmissionStore used to exercise the
// handlers end to end through the real moderation service.
type memStore struct {
	submissions []models.Submission
	insertErr   error
	listErr     error
	setErr      error
	clock       time.Time
}

func newMemStore() *memStore {
	return &memStore{clock: time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)}
}

func (s *memStore) Insert(_ context.Context, submissionType, content string) (models.Submission, error) {
	if s.insertErr != nil {
		return models.Submission{}, s.insertErr
	}

	s.clock = s.clock.Add(time.Minute)
	submission := models.Submission{
		ID:        fmt.Sprintf("sub-%d", len(s.submissions)+1),
		Type:      submissionType,
		Content:   content,
		Status:    models.StatusPending,
		CreatedAt: s.clock,
	}
	s.submissions = append(s.submissions, submission)
	return submission, nil
}

func (s *memStore) List(_ context.Context, filter repositories.ListFilter) ([]models.Submission, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}

	var matched []models.Submission
	for _, submission := range s.submissions {
		if filter.Status != "" && submission.Status != filter.Status {
			continue
		}
		if filter.Type != "" && submission.Type != filter.Type {
			continue
		}
		matched = append(matched, submission)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if limit := repositories.CapLimit(filter.Limit); len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func (s *memStore) SetStatus(_ context.Context, id, status string) (models.Submission, error) {
	if s.setErr != nil {
		return models.Submission{}, s.setErr
	}

	for i := range s.submissions {
		if s.submissions[i].ID == id {
			s.submissions[i].Status = status
			return s.submissions[i], nil
		}
	}
	return models.Submission{}, repositories.ErrNotFound
}

func TestSubmissionHandlerSubmit(t *testing.T) {
	store := newMemStore()
	handler := SubmissionHandler{Submissions: moderation.NewService(store)}

	body, err := json.Marshal(submitRequest{Type: "message", Text: "hello"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var resp submitResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK || resp.ID == "" {
		t.Fatalf("expected ok response with id, got %+v", resp)
	}

	if len(store.submissions) != 1 {
		t.Fatalf("expected 1 stored submission, got %d", len(store.submissions))
	}
	if store.submissions[0].Status != models.StatusPending {
		t.Fatalf("expected pending status, got %q", store.submissions[0].Status)
	}
}

func TestSubmissionHandlerSubmitInvalidType(t *testing.T) {
	store := newMemStore()
	handler := SubmissionHandler{Submissions: moderation.NewService(store)}

	body, _ := json.Marshal(submitRequest{Type: "graffiti", Text: "hello"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
	if len(store.submissions) != 0 {
		t.Fatal("expected nothing to be persisted")
	}
}

func TestSubmissionHandlerSubmitInvalidText(t *testing.T) {
	store := newMemStore()
	handler := SubmissionHandler{Submissions: moderation.NewService(store)}

	for _, text := range []string{"", "   ", strings.Repeat("a", moderation.MaxContentLength+1)} {
		body, _ := json.Marshal(submitRequest{Type: "message", Text: text})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		handler.Submit(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d for %d chars, got %d", http.StatusBadRequest, len(text), rec.Code)
		}
	}
	if len(store.submissions) != 0 {
		t.Fatal("expected nothing to be persisted")
	}
}

func TestSubmissionHandlerSubmitStoreError(t *testing.T) {
	store := newMemStore()
	store.insertErr = errors.New("connection refused")
	handler := SubmissionHandler{Submissions: moderation.NewService(store)}

	body, _ := json.Marshal(submitRequest{Type: "message", Text: "hello"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Submit(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d got %d", http.StatusInternalServerError, rec.Code)
	}
}

func TestSubmissionHandlerFeedOnlyApproved(t *testing.T) {
	store := newMemStore()
	service := moderation.NewService(store)
	handler := SubmissionHandler{Submissions: service}

	pending, err := service.Create(context.Background(), "message", "waiting for review")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	approved, err := service.Create(context.Background(), "message", "on the wall")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := service.Approve(context.Background(), approved.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	rec := httptest.NewRecorder()

	handler.Feed(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var resp feedResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(resp.Items) != 1 || resp.Items[0].ID != approved.ID {
		t.Fatalf("expected only the approved submission, got %+v", resp.Items)
	}
	for _, item := range resp.Items {
		if item.ID == pending.ID {
			t.Fatal("pending submission leaked into the feed")
		}
	}
}

func TestSubmissionHandlerFeedIgnoresStatusParameter(t *testing.T) {
	store := newMemStore()
	service := moderation.NewService(store)
	handler := SubmissionHandler{Submissions: service}

	if _, err := service.Create(context.Background(), "message", "still pending"); err != nil {
		t.Fatalf("create: %v", err)
	}

	// A caller asking for pending rows must still see only approved ones.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?status=pending", nil)
	rec := httptest.NewRecorder()

	handler.Feed(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var resp feedResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 0 {
		t.Fatalf("expected empty feed, got %+v", resp.Items)
	}
}

func TestSubmissionHandlerFeedEmptyIsArray(t *testing.T) {
	handler := SubmissionHandler{Submissions: moderation.NewService(newMemStore())}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	rec := httptest.NewRecorder()

	handler.Feed(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty items array, got %s", rec.Body.String())
	}
}

func TestSubmissionHandlerFeedInvalidTypeFilter(t *testing.T) {
	handler := SubmissionHandler{Submissions: moderation.NewService(newMemStore())}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?type=graffiti", nil)
	rec := httptest.NewRecorder()

	handler.Feed(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestSubmissionHandlerFeedStoreError(t *testing.T) {
	store := newMemStore()
	store.listErr = errors.New("connection refused")
	handler := SubmissionHandler{Submissions: moderation.NewService(store)}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	rec := httptest.NewRecorder()

	handler.Feed(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d got %d", http.StatusInternalServerError, rec.Code)
	}
}
