package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/notes/internal/apperr"
	"github.com/monocle-dev/notes/internal/auth"
)

// Handler carries the collaborators that are fixed for the life of the
// process. The store travels with each request instead.
type Handler struct {
	hasher auth.Hasher
	tokens *auth.TokenIssuer
}

func New(hasher auth.Hasher, tokens *auth.TokenIssuer) *Handler {
	return &Handler{hasher: hasher, tokens: tokens}
}

func bindJSON(ctx *gin.Context, dst interface{}) bool {
	if err := ctx.ShouldBindJSON(dst); err != nil {
		apperr.Abort(ctx, apperr.FromBinding(err))
		return false
	}

	return true
}
