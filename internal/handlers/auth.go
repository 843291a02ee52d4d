package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/notes/internal/apperr"
	"github.com/monocle-dev/notes/internal/store"
	"github.com/monocle-dev/notes/internal/types"
	"github.com/monocle-dev/notes/internal/utils"
)

// IssueToken exchanges Basic credentials for a bearer token. A bearer token
// cannot be used to obtain another one.
func (h *Handler) IssueToken(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		apperr.Abort(ctx, err)
		return
	}

	if result, ok := utils.GetAuthResult(ctx); !ok || result.Claims != nil {
		ctx.Header("WWW-Authenticate", `Basic realm="notes"`)
		apperr.Abort(ctx, apperr.ErrUnauthorized)
		return
	}

	if h.tokens == nil {
		apperr.Abort(ctx, store.ErrNotFound)
		return
	}

	token, expiresAt, err := h.tokens.Issue(ctx.Request.Context(), currentUser.ID)
	if err != nil {
		apperr.Abort(ctx, fmt.Errorf("issue token: %w", err))
		return
	}

	ctx.JSON(http.StatusCreated, types.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
	})
}

// RevokeToken invalidates the bearer token the request was made with.
func (h *Handler) RevokeToken(ctx *gin.Context) {
	result, ok := utils.GetAuthResult(ctx)
	if !ok {
		apperr.Abort(ctx, apperr.ErrUnauthorized)
		return
	}

	if result.Claims == nil || h.tokens == nil {
		apperr.Abort(ctx, apperr.Invalid("authorization", "a bearer token is required"))
		return
	}

	if err := h.tokens.Revoke(ctx.Request.Context(), result.Claims); err != nil {
		apperr.Abort(ctx, fmt.Errorf("revoke token: %w", err))
		return
	}

	ctx.JSON(http.StatusOK, types.MessageResponse{Message: "Token has revoked"})
}
