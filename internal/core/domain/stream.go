package domain

import (
	"time"
)

type StreamID string

// DefaultCategory is applied to streams created without a category.
const DefaultCategory = "General"

type Stream struct {
	ID          StreamID  `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	StreamURL   string    `json:"streamUrl"`
	IsLive      bool      `json:"isLive"`
	Tags        []string  `json:"tags"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StreamInput carries the caller-supplied fields for a new stream.
type StreamInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Thumbnail   string   `json:"thumbnail"`
	StreamURL   string   `json:"streamUrl"`
	IsLive      *bool    `json:"isLive"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
}

// StreamUpdate is a partial patch. Nil fields are left untouched.
type StreamUpdate struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Thumbnail   *string   `json:"thumbnail"`
	StreamURL   *string   `json:"streamUrl"`
	IsLive      *bool     `json:"isLive"`
	Tags        *[]string `json:"tags"`
	Category    *string   `json:"category"`
}

// NewStream builds a stream from input, applying defaults. The ID is left
// empty; the repository assigns it on insert.
func NewStream(input StreamInput) (*Stream, error) {
	if input.Title == "" {
		return nil, NewMissingFieldError("title")
	}
	if input.Description == "" {
		return nil, NewMissingFieldError("description")
	}
	if input.Thumbnail == "" {
		return nil, NewMissingFieldError("thumbnail")
	}
	if input.StreamURL == "" {
		return nil, NewMissingFieldError("streamUrl")
	}

	stream := &Stream{
		Title:       input.Title,
		Description: input.Description,
		Thumbnail:   input.Thumbnail,
		StreamURL:   input.StreamURL,
		Tags:        input.Tags,
		Category:    input.Category,
		CreatedAt:   time.Now().UTC(),
	}

	if input.IsLive != nil {
		stream.IsLive = *input.IsLive
	}
	if stream.Tags == nil {
		stream.Tags = []string{}
	}
	if stream.Category == "" {
		stream.Category = DefaultCategory
	}

	return stream, nil
}

// IsEmpty reports whether the patch sets no fields at all.
func (u StreamUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Thumbnail == nil &&
		u.StreamURL == nil && u.IsLive == nil && u.Tags == nil && u.Category == nil
}
