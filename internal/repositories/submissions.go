package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/brightwall/backend/internal/db"
	"github.com/brightwall/backend/internal/models"
)

// Listing bounds enforced by the adapter regardless of what callers ask for.
const (
	DefaultListLimit = 200
	MaxListLimit     = 500
)

// ListFilter narrows and bounds a submission listing. Empty fields match
// everything; Limit is capped at MaxListLimit and defaults to
// DefaultListLimit when unset.
type ListFilter struct {
	Status string
	Type   string
	Limit  int
}

// SubmissionStore captures the persistence operations the moderation core
// requires. Everything above the adapter funnels through it.
type SubmissionStore interface {
	Insert(ctx context.Context, submissionType, content string) (models.Submission, error)
	List(ctx context.Context, filter ListFilter) ([]models.Submission, error)
	SetStatus(ctx context.Context, id, status string) (models.Submission, error)
}

// PostgresSubmissionRepository provides PostgreSQL-backed persistence for
// wall submissions.
type PostgresSubmissionRepository struct {
	pool db.Pool
}

// NewPostgresSubmissionRepository constructs a submission repository backed by PostgreSQL.
func NewPostgresSubmissionRepository(pool db.Pool) *PostgresSubmissionRepository {
	return &PostgresSubmissionRepository{pool: pool}
}

// Insert persists a new submission in the pending state with a
// server-assigned identifier and creation time.
func (r *PostgresSubmissionRepository) Insert(ctx context.Context, submissionType, content string) (models.Submission, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Submission{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	submission := models.Submission{
		ID:        uuid.NewString(),
		Type:      submissionType,
		Content:   content,
		Status:    models.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	_, err = conn.Exec(ctx, `
        INSERT INTO submissions (id, type, content, status, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `, submission.ID, submission.Type, submission.Content, submission.Status, submission.CreatedAt)
	if err != nil {
		return models.Submission{}, fmt.Errorf("insert submission: %w", err)
	}

	return submission, nil
}

// List returns submissions ordered newest first, optionally restricted by
// exact-match status and type.
func (r *PostgresSubmissionRepository) List(ctx context.Context, filter ListFilter) ([]models.Submission, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	query := `
        SELECT id, type, content, status, created_at
        FROM submissions
    `

	var (
		clauses []string
		args    []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		clauses = append(clauses, fmt.Sprintf("type = $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	args = append(args, CapLimit(filter.Limit))
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []models.Submission
	for rows.Next() {
		var submission models.Submission
		if err := rows.Scan(&submission.ID, &submission.Type, &submission.Content, &submission.Status, &submission.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		submission.CreatedAt = submission.CreatedAt.UTC()
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}

	return submissions, nil
}

// SetStatus updates exactly one submission's status by id and returns the
// resulting row. Setting a status the row already has is a no-op success.
func (r *PostgresSubmissionRepository) SetStatus(ctx context.Context, id, status string) (models.Submission, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return models.Submission{}, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	row := conn.QueryRow(ctx, `
        UPDATE submissions
        SET status = $2
        WHERE id = $1
        RETURNING id, type, content, status, created_at
    `, id, status)

	var submission models.Submission
	if err := row.Scan(&submission.ID, &submission.Type, &submission.Content, &submission.Status, &submission.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Submission{}, ErrNotFound
		}
		return models.Submission{}, fmt.Errorf("update submission status: %w", err)
	}

	submission.CreatedAt = submission.CreatedAt.UTC()
	return submission, nil
}

// CapLimit clamps a caller-requested limit to the adapter's bounds.
func CapLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}

var _ SubmissionStore = (*PostgresSubmissionRepository)(nil)
