package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/notes/internal/utils"
)

const healthTimeout = 2 * time.Second

// Health reports liveness plus whether the database answers. It never
// requires credentials.
func Health(ctx *gin.Context) {
	status, state, database := http.StatusOK, "ok", "ok"

	if err := pingStore(ctx); err != nil {
		log.Printf("health: database ping failed: %v", err)
		status, state, database = http.StatusServiceUnavailable, "degraded", "unreachable"
	}

	ctx.JSON(status, gin.H{
		"status":    state,
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func pingStore(ctx *gin.Context) error {
	s, err := utils.GetStore(ctx)
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthTimeout)
	defer cancel()

	return s.Ping(pingCtx)
}
