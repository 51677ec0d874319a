package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind is the machine-readable failure class returned to clients.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "NotFound"
	KindForbidden         ErrorKind = "Forbidden"
	KindUnauthorized      ErrorKind = "Unauthorized"
	KindInvalidDateRange  ErrorKind = "InvalidDateRange"
	KindCarUnavailable    ErrorKind = "CarUnavailable"
	KindUnsupportedMethod ErrorKind = "UnsupportedMethod"
	KindInvalidSignature  ErrorKind = "InvalidSignature"
	KindValidation        ErrorKind = "ValidationError"
	KindInvalidTransition ErrorKind = "InvalidTransition"
	KindConflict          ErrorKind = "Conflict"
	KindInternal          ErrorKind = "Internal"
)

var kindStatus = map[ErrorKind]int{
	KindNotFound:          http.StatusNotFound,
	KindForbidden:         http.StatusForbidden,
	KindUnauthorized:      http.StatusUnauthorized,
	KindInvalidDateRange:  http.StatusBadRequest,
	KindCarUnavailable:    http.StatusBadRequest,
	KindUnsupportedMethod: http.StatusBadRequest,
	KindInvalidSignature:  http.StatusBadRequest,
	KindValidation:        http.StatusBadRequest,
	KindInvalidTransition: http.StatusConflict,
	KindConflict:          http.StatusConflict,
	KindInternal:          http.StatusInternalServerError,
}

// HTTPStatus maps an error kind to its response status.
func (k ErrorKind) HTTPStatus() int {
	if s, ok := kindStatus[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// AppError is the structured failure every service returns to the request boundary.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is lets errors.Is match on kind alone, e.g. errors.Is(err, &AppError{Kind: KindForbidden}).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func NewError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func WrapError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NotFound(resource string) *AppError {
	return NewError(KindNotFound, resource+" not found")
}

func Forbidden(message string) *AppError {
	if message == "" {
		message = "Not authorized"
	}
	return NewError(KindForbidden, message)
}

func Validation(message string) *AppError {
	return NewError(KindValidation, message)
}

func Internal(message string, err error) *AppError {
	return WrapError(KindInternal, message, err)
}

// KindOf extracts the kind of err, defaulting to KindInternal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Kind:    KindInternal,
					Message: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response for err.
// Internal errors are logged with their cause and answered with a generic message.
func JSONError(c *gin.Context, err error) {
	logger := GetLogger()

	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = Internal("internal server error", err)
	}

	if appErr.Kind == KindInternal {
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.String("requestID", c.GetString(ContextRequestIDKey)),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Kind: KindInternal, Message: appErr.Message})
		return
	}

	logger.Warn(appErr.Message, zap.String("kind", string(appErr.Kind)), zap.String("path", c.FullPath()))
	c.AbortWithStatusJSON(appErr.Kind.HTTPStatus(), ErrorResponse{Kind: appErr.Kind, Message: appErr.Message})
}
