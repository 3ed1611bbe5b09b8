package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"status":    "alive",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	storageStatus := "ok"
	if s.storage != nil {
		if err := s.storage.Ping(c.Request.Context()); err != nil {
			storageStatus = "error: " + err.Error()
		}
	} else {
		storageStatus = "using_memory"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"health":  "ok",
		"backend": s.backend,
		"storage": storageStatus,
		"time":    time.Now().Format(time.RFC3339),
	})
}
