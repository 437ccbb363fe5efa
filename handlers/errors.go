package handlers

import (
	"net/http"

	"github.com/pkg/errors"

	"antworld/messages"
	"antworld/services"
)

// errorResponse maps a simulation error to a wire code and HTTP status
func errorResponse(err error) (messages.ErrorMessage, int) {
	switch {
	case errors.Is(err, services.ErrOutOfBounds):
		return messages.ErrorMessage{Code: messages.CodeOutOfBounds, Message: err.Error()}, http.StatusBadRequest
	case errors.Is(err, services.ErrUnknownIntent):
		return messages.ErrorMessage{Code: messages.CodeUnknownIntent, Message: err.Error()}, http.StatusBadRequest
	default:
		return messages.ErrorMessage{Code: messages.CodeInternal, Message: err.Error()}, http.StatusInternalServerError
	}
}
