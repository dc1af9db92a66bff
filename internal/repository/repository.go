package repository

import (
	"context"
	"database/sql"
	"time"

	"settingshub/internal/models"
)

// Sessions is the durable token storage. One row per browser session,
// keyed by the opaque cookie id.
type Sessions interface {
	Save(ctx context.Context, s models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type Repository struct {
	Sessions Sessions
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Sessions: NewSessionSQLite(db),
	}
}
