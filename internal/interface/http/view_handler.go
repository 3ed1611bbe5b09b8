package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleRanking(c *gin.Context) {
	rows, err := s.svc.Ranking(c.Request.Context(), c.Query("q"))
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "items": rows, "total": len(rows)})
}

func (s *Server) handleDashboard(c *gin.Context) {
	rows, err := s.svc.Dashboard(c.Request.Context())
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"today":   s.svc.Today().String(),
		"items":   rows,
	})
}
