// Package apperr maps request outcomes to HTTP status codes and JSON error
// bodies. Only validation errors carry detail; the rest use fixed messages.
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/monocle-dev/notes/internal/store"
)

var ErrUnauthorized = errors.New("unauthorized")

const (
	MessageUnauthorized = "Unauthorized"
	MessageNotFound     = "Not found"
	MessageUserExists   = "User already exists"
	MessageInternal     = "Internal error"
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ForbiddenError is a policy denial; Message is shown to the client.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func Forbidden(message string) error {
	return &ForbiddenError{Message: message}
}

// Status returns the HTTP status and client-facing message for err.
func Status(err error) (int, string) {
	var validationErr *ValidationError
	var forbiddenErr *ForbiddenError

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Error()
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, MessageUnauthorized
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden, forbiddenErr.Message
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, MessageNotFound
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict, MessageUserExists
	default:
		return http.StatusInternalServerError, MessageInternal
	}
}

// Abort writes the error response for err and stops the handler chain.
// Internal errors are logged, never returned to the client.
func Abort(ctx *gin.Context, err error) {
	status, message := Status(err)

	if status == http.StatusInternalServerError {
		log.Printf("Internal error on %s %s: %v", ctx.Request.Method, ctx.FullPath(), err)
	}

	ctx.AbortWithStatusJSON(status, gin.H{"error": message})
}

// FromBinding converts a gin binding failure into a ValidationError.
func FromBinding(err error) error {
	var fieldErrs validator.ValidationErrors
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		return fieldError(fieldErrs[0])
	case errors.Is(err, io.EOF):
		return Invalid("body", "must be a JSON object")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return Invalid("body", "malformed JSON")
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return Invalid(field, "must be of type "+jsonKind(typeErr.Type.Kind().String()))
	default:
		return Invalid("body", err.Error())
	}
}

func fieldError(fe validator.FieldError) error {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return Invalid(field, "is required")
	case "min":
		return Invalid(field, "must not be empty")
	case "max":
		return Invalid(field, "must be at most "+fe.Param()+" characters")
	case "excludes":
		return Invalid(field, fmt.Sprintf("must not contain %q", fe.Param()))
	case "notblank":
		return Invalid(field, "must not be blank")
	case "oneof":
		return Invalid(field, "must be one of "+strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return Invalid(field, fmt.Sprintf("failed %q validation", fe.Tag()))
	}
}

func jsonKind(goKind string) string {
	switch goKind {
	case "string":
		return "string"
	case "bool":
		return "boolean"
	case "struct", "map":
		return "object"
	case "slice", "array":
		return "array"
	default:
		return "number"
	}
}
