package ports

import (
	"context"

	"streamvault/internal/core/domain"
)

type StreamRepository interface {
	// Create inserts the stream and fills in its store-assigned ID.
	Create(ctx context.Context, stream *domain.Stream) error
	GetByID(ctx context.Context, id domain.StreamID) (*domain.Stream, error)
	// UpdateByID applies the non-nil fields of update and returns the
	// resulting record. No concurrency check: last write wins.
	UpdateByID(ctx context.Context, id domain.StreamID, update domain.StreamUpdate) (*domain.Stream, error)
	DeleteByID(ctx context.Context, id domain.StreamID) error
	List(ctx context.Context) ([]*domain.Stream, error)
}

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create is used by startup bootstrap and tests only; no HTTP route
	// creates users.
	Create(ctx context.Context, user *domain.User) error
}
