package apperr

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/monocle-dev/notes/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", Invalid("text", "is required"), http.StatusBadRequest, "text: is required"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", Forbidden("nope"), http.StatusForbidden, "nope"},
		{"not found", store.ErrNotFound, http.StatusNotFound, "Not found"},
		{"wrapped not found", fmt.Errorf("get: %w", store.ErrNotFound), http.StatusNotFound, "Not found"},
		{"conflict", store.ErrConflict, http.StatusConflict, "User already exists"},
		{"internal", fmt.Errorf("connection refused"), http.StatusInternalServerError, "Internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := Status(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestFromBinding_DecodeErrors(t *testing.T) {
	assert.EqualError(t, FromBinding(io.EOF), "body: must be a JSON object")

	var target struct {
		Private bool `json:"private"`
	}
	err := json.Unmarshal([]byte(`{"private":"yes"}`), &target)
	assert.EqualError(t, FromBinding(err), "private: must be of type boolean")

	err = json.Unmarshal([]byte(`{"private":`), &target)
	assert.EqualError(t, FromBinding(err), "body: malformed JSON")
}
