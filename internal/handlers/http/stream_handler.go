package http

import (
	"errors"
	"net/http"

	"streamvault/internal/core/domain"
	"streamvault/internal/core/ports"
	"streamvault/internal/infrastructure/monitoring"

	"github.com/gin-gonic/gin"
)

type StreamHandler struct {
	streamService ports.StreamService
	collector     *monitoring.PrometheusCollector
}

// NewStreamHandler creates the stream endpoints. The collector may be nil
// when metrics are disabled.
func NewStreamHandler(streamService ports.StreamService, collector *monitoring.PrometheusCollector) *StreamHandler {
	return &StreamHandler{
		streamService: streamService,
		collector:     collector,
	}
}

func (h *StreamHandler) ListStreams(c *gin.Context) {
	streams, err := h.streamService.ListStreams(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if h.collector != nil {
		h.collector.SetStreamsTotal(len(streams))
	}

	c.JSON(http.StatusOK, streams)
}

func (h *StreamHandler) GetStream(c *gin.Context) {
	id := domain.StreamID(c.Param("id"))

	stream, err := h.streamService.GetStream(c.Request.Context(), id)
	if err != nil {
		h.respondStreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, stream)
}

func (h *StreamHandler) CreateStream(c *gin.Context) {
	var input domain.StreamInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	stream, err := h.streamService.CreateStream(c.Request.Context(), input)
	if err != nil {
		if domain.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, stream)
}

func (h *StreamHandler) UpdateStream(c *gin.Context) {
	id := domain.StreamID(c.Param("id"))

	var update domain.StreamUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	stream, err := h.streamService.UpdateStream(c.Request.Context(), id, update)
	if err != nil {
		h.respondStreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, stream)
}

func (h *StreamHandler) DeleteStream(c *gin.Context) {
	id := domain.StreamID(c.Param("id"))

	if err := h.streamService.DeleteStream(c.Request.Context(), id); err != nil {
		h.respondStreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stream deleted"})
}

// respondStreamError maps store errors onto the HTTP contract: malformed
// id 400, absent record 404, anything else 500.
func (h *StreamHandler) respondStreamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidStreamID):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrStreamNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Stream not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}
