package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/admission-relay/internal/response"
	"github.com/stemsi/admission-relay/internal/service"
	"github.com/stemsi/admission-relay/internal/validator"
)

// MsgSubmitted is the relay's static confirmation message.
const MsgSubmitted = "Application submitted successfully"

// RelayHandler exposes the submission relay.
type RelayHandler struct {
	relayService *service.RelayService
	log          zerolog.Logger
}

// NewRelayHandler creates a new RelayHandler.
func NewRelayHandler(relayService *service.RelayService, log zerolog.Logger) *RelayHandler {
	return &RelayHandler{
		relayService: relayService,
		log:          log.With().Str("component", "relay_handler").Logger(),
	}
}

// SubmitApplication godoc
// POST /api/submit-application
// Forwards the JSON application to the configured webhook. Upstream
// failures are reported with a generic message only.
func (h *RelayHandler) SubmitApplication(c *gin.Context) {
	var payload map[string]interface{}
	if err := validator.Bind(c, &payload); err != nil {
		h.log.Warn().Err(err).Str("request_id", response.RequestID(c)).Msg("rejected malformed payload")
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}
	if payload == nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	if err := h.relayService.Relay(c.Request.Context(), payload); err != nil {
		switch {
		case errors.Is(err, service.ErrDestinationNotConfigured):
			response.Fail(c, http.StatusInternalServerError, response.ErrNotConfigured)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrSubmissionFailed)
		}
		return
	}

	response.Success(c, http.StatusOK, MsgSubmitted)
}
