package httpserver

import (
	"errors"
	"net/http"

	"animateme/internal/catalog"
	"animateme/internal/domain"
	"animateme/internal/service/auth"
	"animateme/internal/service/checkout"
	"animateme/internal/service/manager"
	"animateme/internal/service/quote"
	"animateme/internal/service/usermgmt"
	"animateme/internal/storage"
	"github.com/gin-gonic/gin"
)

var errBadRequest = errors.New("malformed request body")

// writeError maps service errors to a status and an {"error": ...} body.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}

	var verr *manager.ValidationError
	if errors.As(err, &verr) {
		body["fields"] = verr.Fields
		if verr.Index != nil {
			body["index"] = *verr.Index
		}
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		if status == http.StatusInternalServerError {
			body["error"] = "internal error"
		}
	}
	c.AbortWithStatusJSON(status, body)
}

func statusFor(err error) int {
	var (
		verr *manager.ValidationError
		uerr *manager.UploadError
		merr *http.MaxBytesError
	)
	switch {
	case errors.As(err, &merr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &verr),
		errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidReference),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrEmailRequired),
		errors.Is(err, quote.ErrNoEstimate),
		errors.Is(err, checkout.ErrInvalidStatus),
		errors.Is(err, usermgmt.ErrInvalidRole),
		errors.Is(err, usermgmt.ErrUnknownAction),
		errors.Is(err, usermgmt.ErrUserRequired),
		errors.Is(err, usermgmt.ErrSelfDelete),
		errors.Is(err, usermgmt.ErrSelfDemote),
		errors.Is(err, manager.ErrUnsupported):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, usermgmt.ErrForbidden), errors.Is(err, auth.ErrSignupClosed):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict
	case errors.As(err, &uerr), errors.Is(err, storage.ErrTooLarge), errors.Is(err, storage.ErrEmpty):
		return http.StatusUnprocessableEntity
	case errors.Is(err, checkout.ErrWhatsAppNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, catalog.ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
