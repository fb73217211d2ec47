package ports

import (
	"context"

	"streamvault/internal/core/domain"
)

type StreamService interface {
	CreateStream(ctx context.Context, input domain.StreamInput) (*domain.Stream, error)
	GetStream(ctx context.Context, id domain.StreamID) (*domain.Stream, error)
	UpdateStream(ctx context.Context, id domain.StreamID, update domain.StreamUpdate) (*domain.Stream, error)
	DeleteStream(ctx context.Context, id domain.StreamID) error
	ListStreams(ctx context.Context) ([]*domain.Stream, error)
}
