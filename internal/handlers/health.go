package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/0CyberGhost0/BotIo/internal/apperr"
)

func Healthz(c *gin.Context) {
  c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps a service error to its HTTP status with the
// standard error body.
func respondError(c *gin.Context, err error) {
  c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
}
