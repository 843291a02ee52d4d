package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/notes/internal/apperr"
	"github.com/monocle-dev/notes/internal/auth"
	"github.com/monocle-dev/notes/internal/models"
	"github.com/monocle-dev/notes/internal/store"
	"github.com/monocle-dev/notes/internal/types"
)

func GetStore(ctx *gin.Context) (store.Store, error) {
	value, exists := ctx.Get(types.ContextStoreKey)

	if !exists {
		return nil, fmt.Errorf("store not attached to request")
	}

	s, ok := value.(store.Store)

	if !ok {
		return nil, fmt.Errorf("invalid store type in context")
	}

	return s, nil
}

// GetCurrentUser returns apperr.ErrUnauthorized when no user is attached.
func GetCurrentUser(ctx *gin.Context) (*models.User, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return nil, apperr.ErrUnauthorized
	}

	user, ok := value.(*models.User)

	if !ok || user == nil {
		return nil, apperr.ErrUnauthorized
	}

	return user, nil
}

func GetAuthResult(ctx *gin.Context) (auth.Result, bool) {
	value, exists := ctx.Get(types.ContextAuthKey)

	if !exists {
		return auth.Result{}, false
	}

	result, ok := value.(auth.Result)
	return result, ok
}

// ParseID reads a decimal path parameter. Malformed ids are reported as
// store.ErrNotFound since no entity can have them.
func ParseID(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, strconv.IntSize)

	if err != nil {
		return 0, store.ErrNotFound
	}

	return uint(id), nil
}
