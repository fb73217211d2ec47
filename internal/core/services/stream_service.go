package services

import (
	"context"

	"streamvault/internal/core/domain"
	"streamvault/internal/core/ports"
)

type streamService struct {
	streamRepo ports.StreamRepository
}

func NewStreamService(streamRepo ports.StreamRepository) ports.StreamService {
	return &streamService{
		streamRepo: streamRepo,
	}
}

func (s *streamService) CreateStream(ctx context.Context, input domain.StreamInput) (*domain.Stream, error) {
	stream, err := domain.NewStream(input)
	if err != nil {
		return nil, err
	}

	if err := s.streamRepo.Create(ctx, stream); err != nil {
		return nil, err
	}

	return stream, nil
}

func (s *streamService) GetStream(ctx context.Context, id domain.StreamID) (*domain.Stream, error) {
	return s.streamRepo.GetByID(ctx, id)
}

func (s *streamService) UpdateStream(ctx context.Context, id domain.StreamID, update domain.StreamUpdate) (*domain.Stream, error) {
	if update.IsEmpty() {
		// Nothing to write; behave like a read so the caller still gets
		// the current record or a not-found.
		return s.streamRepo.GetByID(ctx, id)
	}
	return s.streamRepo.UpdateByID(ctx, id, update)
}

func (s *streamService) DeleteStream(ctx context.Context, id domain.StreamID) error {
	return s.streamRepo.DeleteByID(ctx, id)
}

func (s *streamService) ListStreams(ctx context.Context) ([]*domain.Stream, error) {
	return s.streamRepo.List(ctx)
}
