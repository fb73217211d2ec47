package memory

import (
	"context"
	"sync"

	"streamvault/internal/core/domain"
	"streamvault/internal/core/ports"

	"github.com/google/uuid"
)

type MemoryStreamRepository struct {
	streams map[domain.StreamID]*domain.Stream
	order   []domain.StreamID
	mu      sync.RWMutex
}

func NewMemoryStreamRepository() ports.StreamRepository {
	return &MemoryStreamRepository{
		streams: make(map[domain.StreamID]*domain.Stream),
	}
}

func (r *MemoryStreamRepository) Create(ctx context.Context, stream *domain.Stream) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stream.ID == "" {
		stream.ID = domain.StreamID(uuid.New().String())
	}

	copied := *stream
	r.streams[stream.ID] = &copied
	r.order = append(r.order, stream.ID)
	return nil
}

func (r *MemoryStreamRepository) GetByID(ctx context.Context, id domain.StreamID) (*domain.Stream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stream, exists := r.streams[id]
	if !exists {
		return nil, domain.ErrStreamNotFound
	}

	copied := *stream
	return &copied, nil
}

func (r *MemoryStreamRepository) UpdateByID(ctx context.Context, id domain.StreamID, update domain.StreamUpdate) (*domain.Stream, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stream, exists := r.streams[id]
	if !exists {
		return nil, domain.ErrStreamNotFound
	}

	if update.Title != nil {
		stream.Title = *update.Title
	}
	if update.Description != nil {
		stream.Description = *update.Description
	}
	if update.Thumbnail != nil {
		stream.Thumbnail = *update.Thumbnail
	}
	if update.StreamURL != nil {
		stream.StreamURL = *update.StreamURL
	}
	if update.IsLive != nil {
		stream.IsLive = *update.IsLive
	}
	if update.Tags != nil {
		stream.Tags = *update.Tags
	}
	if update.Category != nil {
		stream.Category = *update.Category
	}

	copied := *stream
	return &copied, nil
}

func (r *MemoryStreamRepository) DeleteByID(ctx context.Context, id domain.StreamID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.streams[id]; !exists {
		return domain.ErrStreamNotFound
	}

	delete(r.streams, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryStreamRepository) List(ctx context.Context) ([]*domain.Stream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	streams := make([]*domain.Stream, 0, len(r.order))
	for _, id := range r.order {
		if stream, exists := r.streams[id]; exists {
			copied := *stream
			streams = append(streams, &copied)
		}
	}
	return streams, nil
}
