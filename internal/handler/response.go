package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/repository"
	"marketplace/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Invalid input - Bad Request
	case errors.Is(err, service.ErrInvalidUserID),
		errors.Is(err, service.ErrInvalidOrderID),
		errors.Is(err, service.ErrInvalidUserName),
		errors.Is(err, service.ErrInvalidPhone),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidPickupLocation),
		errors.Is(err, service.ErrInvalidDestinationLocation),
		errors.Is(err, service.ErrInvalidFareConfig),
		errors.Is(err, service.ErrInvalidAddress),
		errors.Is(err, service.ErrNotesTooLong),
		errors.Is(err, service.ErrCancellationReasonRequired),
		errors.Is(err, service.ErrCancellationReasonTooLong),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidTransactionType),
		errors.Is(err, service.ErrInvalidTransactionCategory),
		errors.Is(err, service.ErrNotADriver):
		return http.StatusBadRequest

	// Business-rule conflicts
	case errors.Is(err, service.ErrIllegalTransition),
		errors.Is(err, service.ErrInsufficientFunds),
		errors.Is(err, service.ErrWalletInactive),
		errors.Is(err, service.ErrWalletBusy),
		errors.Is(err, service.ErrPhoneAlreadyRegistered),
		errors.Is(err, repository.ErrStaleStatus),
		errors.Is(err, repository.ErrVersionConflict),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
