package app

import (
	"github.com/brightwall/backend/internal/auth"
	"github.com/brightwall/backend/internal/config"
	"github.com/brightwall/backend/internal/db"
	"github.com/brightwall/backend/internal/handlers"
	"github.com/brightwall/backend/internal/moderation"
	"github.com/brightwall/backend/internal/repositories"
)

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(pool db.Pool, cfg config.Config) handlers.Dependencies {
	store := repositories.NewPostgresSubmissionRepository(pool)
	codec := auth.NewCodec(cfg.SessionSecret, cfg.SessionTTL)

	return handlers.Dependencies{
		Submissions:       moderation.NewService(store),
		Tokens:            codec,
		Guard:             auth.Guard{Tokens: codec},
		AdminPassword:     cfg.AdminPassword,
		AdminPasswordHash: cfg.AdminPasswordHash,
	}
}
