package httpapi

import (
	"github.com/gin-gonic/gin"
)

func (s *Server) registerRoutes() {
	r := s.engine
	if s.metrics != nil {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := r.Group("/api")
	api.GET("/ping", s.handlePing)
	api.GET("/health", s.handleHealth)

	api.GET("/data", s.handleGetData)
	api.POST("/data", s.handleReplaceData)

	api.GET("/ranking", s.handleRanking)
	api.GET("/dashboard", s.handleDashboard)

	members := api.Group("/members")
	members.POST("", s.handleUpsertMember)
	members.POST("/import", s.handleImport)
	members.POST("/reorder", s.handleReorder)
	members.GET("/:id", s.handleGetMember)
	members.DELETE("/:id", s.handleDeleteMember)
	members.POST("/:id/score", s.handleRecordScore)
	members.GET("/:id/score-history", s.handleScoreHistory)
	members.PUT("/:id/task", s.handleUpdateTask)
	members.POST("/:id/task/archive", s.handleArchiveTask)
}
