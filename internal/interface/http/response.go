package httpapi

import (
	"errors"
	"net/http"

	"uav-roster/internal/domain/member"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

func writeError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{
		Success:   false,
		Error:     msg,
		ErrorCode: code,
	})
}

// writeDomainError 依錯誤種類決定狀態碼與錯誤代碼。
func (s *Server) writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, member.ErrParse):
		writeError(c, http.StatusUnprocessableEntity, errCodeImportFailed, err.Error())
	case errors.Is(err, member.ErrValidation):
		writeError(c, http.StatusBadRequest, errCodeValidation, err.Error())
	case errors.Is(err, member.ErrNotFound):
		writeError(c, http.StatusNotFound, errCodeNotFound, err.Error())
	case errors.Is(err, member.ErrPersistence):
		writeError(c, http.StatusInternalServerError, errCodePersistence, "failed to save roster")
	default:
		s.logger.Error("unhandled request error", "path", c.FullPath(), "error", err.Error())
		writeError(c, http.StatusInternalServerError, errCodeInternal, "internal error")
	}
}
