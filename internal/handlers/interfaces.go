package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/brightwall/backend/internal/models"
)

// SubmissionService captures the moderation core operations required by the
// HTTP handlers.
type SubmissionService interface {
	Create(ctx context.Context, submissionType, text string) (models.Submission, error)
	Approve(ctx context.Context, id string) (models.Submission, error)
	Reject(ctx context.Context, id string) (models.Submission, error)
	ListForModeration(ctx context.Context, status, submissionType string) ([]models.Submission, error)
	ListForPublic(ctx context.Context, submissionType string, limit int) ([]models.Submission, error)
}

// SessionIssuer mints admin session tokens for the login endpoint.
type SessionIssuer interface {
	Mint() (string, error)
	TTL() time.Duration
}

// Authorizer decides whether a request may perform moderation operations.
type Authorizer interface {
	Authorize(r *http.Request) bool
}
