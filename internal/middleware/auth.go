package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/notes/internal/apperr"
	"github.com/monocle-dev/notes/internal/auth"
	"github.com/monocle-dev/notes/internal/store"
	"github.com/monocle-dev/notes/internal/types"
	"github.com/monocle-dev/notes/internal/utils"
)

// Store attaches the persistence handle to every request.
func Store(s store.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(types.ContextStoreKey, s)
		ctx.Next()
	}
}

// AuthMiddleware resolves the Authorization header and attaches the result.
// Anything short of an authenticated user ends the request with 401.
func AuthMiddleware(authenticator *auth.Authenticator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		s, err := utils.GetStore(ctx)
		if err != nil {
			apperr.Abort(ctx, err)
			return
		}

		result, err := authenticator.Authenticate(ctx.Request.Context(), s, ctx.GetHeader("Authorization"))
		if err != nil {
			apperr.Abort(ctx, err)
			return
		}

		ctx.Set(types.ContextAuthKey, result)

		if result.Status != auth.Authenticated {
			ctx.Header("WWW-Authenticate", `Basic realm="notes"`)
			apperr.Abort(ctx, apperr.ErrUnauthorized)
			return
		}

		ctx.Set(types.ContextUserKey, result.User)
		ctx.Next()
	}
}
