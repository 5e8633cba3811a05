// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	domainerror "github.com/controle-financeiro/api/internal/domain/error"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/dto"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/validation"
)

const (
	validationMessage = "Erros de validação nos campos"
	internalMessage   = "Ocorreu um erro interno no servidor"
)

// MalformedRequestError is raised when a request body, path or query parameter cannot be read.
type MalformedRequestError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *MalformedRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *MalformedRequestError) Unwrap() error {
	return e.Err
}

// NewMalformedRequestError creates a new MalformedRequestError.
func NewMalformedRequestError(message string, err error) *MalformedRequestError {
	return &MalformedRequestError{Message: message, Err: err}
}

// BindError classifies an error returned by gin's binding: rule violations stay
// validation errors, anything else means the body could not be read.
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return NewMalformedRequestError("Corpo da requisição inválido", err)
}

// ErrorHandler converts the last error attached to the gin context into the uniform error body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var (
			malformed *MalformedRequestError
			verrs     validator.ValidationErrors
			business  *domainerror.BusinessError
			notFound  *domainerror.NotFoundError
		)

		switch {
		case errors.As(err, &malformed):
			writeError(c, http.StatusBadRequest, "Bad Request", malformed.Error(), nil)
		case errors.As(err, &verrs):
			writeError(c, http.StatusBadRequest, "Validation Error", validationMessage, validation.Messages(verrs))
		case errors.As(err, &business):
			writeError(c, http.StatusBadRequest, "Bad Request", business.Message, nil)
		case errors.As(err, &notFound):
			writeError(c, http.StatusNotFound, "Not Found", notFound.Error(), nil)
		default:
			LoggerFromContext(c).Error("Unhandled request error",
				"error", err,
				"type", fmt.Sprintf("%T", err),
			)
			writeError(c, http.StatusInternalServerError, "Internal Server Error", internalMessage, nil)
		}
	}
}

// Recovery turns panics into the uniform 500 body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		LoggerFromContext(c).Error("Recovered from panic",
			"panic", recovered,
			"type", fmt.Sprintf("%T", recovered),
		)
		writeError(c, http.StatusInternalServerError, "Internal Server Error", internalMessage, nil)
	})
}

func writeError(c *gin.Context, status int, title, message string, fieldErrors []string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     title,
		Message:   message,
		Path:      c.Request.URL.RequestURI(),
		Errors:    fieldErrors,
	})
}

// NoRoute answers unknown routes with the uniform 404 body.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		writeError(c, http.StatusNotFound, "Not Found", "Recurso não encontrado", nil)
	}
}
