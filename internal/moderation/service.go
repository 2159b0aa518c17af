package moderation

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/brightwall/backend/internal/logging"
	"github.com/brightwall/backend/internal/models"
	"github.com/brightwall/backend/internal/repositories"
)

// MaxContentLength bounds submission text, measured in runes after trimming.
const MaxContentLength = 2000

// Service owns the submission lifecycle: public creation into the pending
// state, moderator transitions between states, and the visibility split
// between the moderation queue and the public wall.
type Service struct {
	store repositories.SubmissionStore
}

// NewService constructs the moderation service over the provided store.
func NewService(store repositories.SubmissionStore) *Service {
	if store == nil {
		panic("moderation: submission store must not be nil")
	}
	return &Service{store: store}
}

// Create validates and persists a new submission. Every accepted submission
// starts out pending; there is no way to create one in any other state.
// This is the public write path and requires no authorization.
func (s *Service) Create(ctx context.Context, submissionType, text string) (models.Submission, error) {
	ctx, span := logging.StartSpan(ctx, "submission.create")
	defer span.End()

	normalized := NormalizeType(submissionType)
	if !models.ValidType(normalized) {
		return models.Submission{}, fmt.Errorf("%w: %q", ErrInvalidType, submissionType)
	}

	content := strings.TrimSpace(text)
	if content == "" || utf8.RuneCountInString(content) > MaxContentLength {
		return models.Submission{}, ErrInvalidContent
	}

	return s.store.Insert(ctx, normalized, content)
}

// Approve marks the submission approved. Approving an already-approved
// submission succeeds and returns the unchanged row.
func (s *Service) Approve(ctx context.Context, id string) (models.Submission, error) {
	return s.transition(ctx, id, models.StatusApproved)
}

// Reject marks the submission rejected. Like Approve it is idempotent, and
// a moderator may flip an approved submission to rejected or back; mistakes
// must be correctable.
func (s *Service) Reject(ctx context.Context, id string) (models.Submission, error) {
	return s.transition(ctx, id, models.StatusRejected)
}

func (s *Service) transition(ctx context.Context, id, status string) (models.Submission, error) {
	ctx, span := logging.StartSpan(ctx, "submission."+status)
	defer span.End()

	if strings.TrimSpace(id) == "" {
		return models.Submission{}, repositories.ErrNotFound
	}

	return s.store.SetStatus(ctx, id, status)
}

// ListForModeration composes the moderation queue listing. Any status may
// be requested, including none for "all"; callers must already be
// authorized.
func (s *Service) ListForModeration(ctx context.Context, status, submissionType string) ([]models.Submission, error) {
	ctx, span := logging.StartSpan(ctx, "submission.list_moderation")
	defer span.End()

	filter := repositories.ListFilter{}
	if status != "" {
		if !models.ValidStatus(status) {
			return nil, fmt.Errorf("%w: status %q", ErrInvalidFilter, status)
		}
		filter.Status = status
	}
	if err := applyTypeFilter(&filter, submissionType); err != nil {
		return nil, err
	}

	return s.store.List(ctx, filter)
}

// ListForPublic composes the public wall listing. The approved-only
// restriction is forced unconditionally; no caller input can widen it.
func (s *Service) ListForPublic(ctx context.Context, submissionType string, limit int) ([]models.Submission, error) {
	ctx, span := logging.StartSpan(ctx, "submission.list_public")
	defer span.End()

	filter := repositories.ListFilter{
		Status: models.StatusApproved,
		Limit:  limit,
	}
	if err := applyTypeFilter(&filter, submissionType); err != nil {
		return nil, err
	}

	return s.store.List(ctx, filter)
}

func applyTypeFilter(filter *repositories.ListFilter, submissionType string) error {
	if submissionType == "" {
		return nil
	}
	normalized := NormalizeType(submissionType)
	if !models.ValidType(normalized) {
		return fmt.Errorf("%w: type %q", ErrInvalidFilter, submissionType)
	}
	filter.Type = normalized
	return nil
}

// NormalizeType lowercases a caller-supplied type and maps the friendly
// aliases accepted on the submit form onto canonical types.
func NormalizeType(submissionType string) string {
	switch t := strings.ToLower(strings.TrimSpace(submissionType)); t {
	case "prompt":
		return models.TypeMessage
	case "letter":
		return models.TypeReview
	default:
		return t
	}
}
