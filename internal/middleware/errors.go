package middleware

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/notes/internal/apperr"
	"github.com/monocle-dev/notes/internal/store"
)

// Recovery turns panics into the generic 500 body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		log.Printf("Recovered from panic on %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, recovered)
		apperr.Abort(ctx, errors.New("panic"))
	})
}

// NotFound renders unknown routes the same way as missing entities.
func NotFound(ctx *gin.Context) {
	apperr.Abort(ctx, store.ErrNotFound)
}
