package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "campusai/internal/errors"
	"campusai/internal/metrics"
	"campusai/internal/service"
)

// AskHandler handles the AI relay endpoint.
type AskHandler struct {
	askService service.AskService
}

// NewAskHandler creates a new ask handler.
func NewAskHandler(askService service.AskService) *AskHandler {
	return &AskHandler{askService: askService}
}

// AskRequest represents a question for the assistant.
type AskRequest struct {
	Question string `json:"question" example:"What is the second law of thermodynamics?"`
}

// AskResponse carries the assistant's answer.
type AskResponse struct {
	Answer string `json:"answer"`
}

// Ask godoc
// @Summary Ask the academic assistant
// @Tags ai
// @Accept json
// @Produce json
// @Param request body AskRequest true "Question"
// @Success 200 {object} AskResponse
// @Failure 400 {object} errors.AIErrorResponse
// @Failure 500 {object} errors.AIErrorResponse
// @Router /ask-ai [post]
func (h *AskHandler) Ask(c echo.Context) error {
	var req AskRequest
	if err := c.Bind(&req); err != nil {
		metrics.AIRequests.WithLabelValues(metrics.OutcomeInvalidInput).Inc()
		return c.JSON(http.StatusBadRequest, errInvalidBody.ToAIErrorResponse())
	}

	answer, err := h.askService.Ask(c.Request().Context(), req.Question)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		outcome := metrics.OutcomeForStatus(httpErr.StatusCode)
		var providerErr *apperrors.ProviderError
		if errors.As(err, &providerErr) {
			outcome = string(providerErr.Kind)
		}
		metrics.AIRequests.WithLabelValues(outcome).Inc()
		return c.JSON(httpErr.StatusCode, httpErr.ToAIErrorResponse())
	}

	metrics.AIRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return c.JSON(http.StatusOK, AskResponse{Answer: answer})
}
