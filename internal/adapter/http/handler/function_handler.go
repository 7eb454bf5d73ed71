package handler

import (
	"errors"
	"io"

	"payline-connector/internal/adapter/http/dto"
	"payline-connector/pkg/apperror"
	"payline-connector/pkg/response"

	"github.com/gin-gonic/gin"
)

// FunctionHandler exposes the entry adapter over HTTP.
type FunctionHandler struct {
	events *EventHandler
}

// NewFunctionHandler creates a new FunctionHandler.
func NewFunctionHandler(events *EventHandler) *FunctionHandler {
	return &FunctionHandler{events: events}
}

// Invoke handles POST /api/v1/functions/:name.
func (h *FunctionHandler) Invoke(c *gin.Context) {
	var ev dto.Event
	if err := c.ShouldBindJSON(&ev); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	h.events.Invoke(c.Request.Context(), c.Param("name"), &ev, func(err error, result any) {
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, result)
	})
}

// List handles GET /api/v1/functions.
func (h *FunctionHandler) List(c *gin.Context) {
	response.OK(c, dto.FunctionList{Functions: h.events.Functions()})
}
