package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/database"
	"github.com/princinho/stonevitrine/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// ValidationError is a malformed or missing field; its message goes back to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is returned when an id does not resolve to a document.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == database.ErrNotFound }

// AuthError rejects a request before any handler logic runs.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string { return e.Message }

var (
	ErrNotAuthenticated   = &AuthError{Status: http.StatusUnauthorized, Message: "not authorized, no token"}
	ErrInvalidToken       = &AuthError{Status: http.StatusUnauthorized, Message: "not authorized, invalid or expired token"}
	ErrInvalidCredentials = &AuthError{Status: http.StatusUnauthorized, Message: "invalid credentials"}
)

// UpstreamError wraps a failed call to an external collaborator (asset host, SMTP relay).
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string { return e.Service + ": " + e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

// OrNotFound turns a store miss into a NotFoundError naming the resource.
func OrNotFound(err error, resource string) error {
	if errors.Is(err, database.ErrNotFound) {
		return &NotFoundError{Resource: resource}
	}
	return err
}

func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, database.ErrDuplicateKey) || mongo.IsDuplicateKeyError(err) {
		return true
	}
	return strings.Contains(err.Error(), "E11000 duplicate key error")
}

// RespondError maps an error to its status code and a {message} body.
// Store failures are logged and hidden behind a generic message.
func RespondError(c *gin.Context, err error) {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		auth       *AuthError
		upstream   *UpstreamError
	)
	switch {
	case errors.As(err, &validation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": validation.Message})
	case errors.As(err, &notFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": notFound.Error()})
	case errors.Is(err, database.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.As(err, &auth):
		c.AbortWithStatusJSON(auth.Status, gin.H{"message": auth.Message})
	case IsDuplicateKey(err):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"message": "already exists"})
	case errors.As(err, &upstream):
		logger.App().WithFields(logrus.Fields{
			"service":   upstream.Service,
			"requestId": logger.RequestIDFrom(c.Request.Context()),
		}).WithError(upstream.Err).Error("upstream call failed")
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"message": upstream.Service + " unavailable"})
	default:
		logger.App().WithFields(logrus.Fields{
			"path":      c.Request.URL.Path,
			"requestId": logger.RequestIDFrom(c.Request.Context()),
		}).WithError(err).Error("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
