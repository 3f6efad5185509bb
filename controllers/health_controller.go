package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is anything that can report whether its backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	DB Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{DB: db}
}

func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := hc.DB.Ping(ctx); err != nil {
		_ = c.Error(err)
		RespondError(c, NewHTTPError(http.StatusServiceUnavailable, CodeDBConnectionError, "database unreachable"))
		return
	}
	respond(c, http.StatusOK, "ok", gin.H{"status": "ok", "database": "ok"})
}
