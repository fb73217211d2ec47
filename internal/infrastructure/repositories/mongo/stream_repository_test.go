package mongo

import (
	"testing"
	"time"

	"streamvault/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseStreamID_Malformed(t *testing.T) {
	// A malformed id must be distinguishable from a missing record.
	for _, id := range []string{"", "not-hex", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := parseStreamID(domain.StreamID(id))
		assert.ErrorIs(t, err, domain.ErrInvalidStreamID, "id %q", id)
	}
}

func TestParseStreamID_Valid(t *testing.T) {
	oid := primitive.NewObjectID()

	parsed, err := parseStreamID(domain.StreamID(oid.Hex()))
	require.NoError(t, err)
	assert.Equal(t, oid, parsed)
}

func TestStreamDocument_ToDomain(t *testing.T) {
	oid := primitive.NewObjectID()
	created := time.Now().UTC().Truncate(time.Millisecond)

	doc := streamDocument{
		ID:          oid,
		Title:       "T",
		Description: "D",
		Thumbnail:   "th.png",
		StreamURL:   "u.m3u8",
		IsLive:      true,
		Tags:        []string{"music"},
		Category:    "Music",
		CreatedAt:   created,
	}

	stream := doc.toDomain()
	assert.Equal(t, domain.StreamID(oid.Hex()), stream.ID)
	assert.Equal(t, "T", stream.Title)
	assert.True(t, stream.IsLive)
	assert.Equal(t, []string{"music"}, stream.Tags)
	assert.Equal(t, created, stream.CreatedAt)
}

func TestStreamDocument_ToDomain_NilTags(t *testing.T) {
	doc := streamDocument{ID: primitive.NewObjectID()}

	stream := doc.toDomain()
	// Records written without tags still serialize as [] over HTTP.
	require.NotNil(t, stream.Tags)
	assert.Empty(t, stream.Tags)
}
