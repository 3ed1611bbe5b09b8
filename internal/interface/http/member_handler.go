package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"uav-roster/internal/application/ledger"
	"uav-roster/internal/domain/member"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleGetData(c *gin.Context) {
	data, err := s.svc.Snapshot(c.Request.Context())
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// handleReplaceData 以整份文件取代名單（前端自行編輯後回存）。
func (s *Server) handleReplaceData(c *gin.Context) {
	var req replaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "invalid json body")
		return
	}
	data, err := s.svc.ReplaceAll(c.Request.Context(), req.Members)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (s *Server) handleUpsertMember(c *gin.Context) {
	raw, ok := s.readBody(c)
	if !ok {
		return
	}
	var req memberRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "invalid json body")
		return
	}

	cf := s.confirmation(c, raw)
	res, err := s.svc.AddMember(c.Request.Context(), req.profile(), strings.TrimSpace(req.EditID), cf.confirm)
	s.writeResult(c, cf, res, err)
}

// handleImport 接受 text/csv 內容或 multipart 的 file 欄位。
func (s *Server) handleImport(c *gin.Context) {
	var raw []byte
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			writeError(c, http.StatusBadRequest, errCodeBadRequest, "missing file field")
			return
		}
		if fh.Size > s.maxUpload {
			writeError(c, http.StatusRequestEntityTooLarge, errCodeBadRequest, "file too large")
			return
		}
		f, err := fh.Open()
		if err != nil {
			writeError(c, http.StatusBadRequest, errCodeBadRequest, "cannot open file")
			return
		}
		defer f.Close()
		raw, err = io.ReadAll(io.LimitReader(f, s.maxUpload))
		if err != nil {
			writeError(c, http.StatusBadRequest, errCodeBadRequest, "cannot read file")
			return
		}
	} else {
		var ok bool
		if raw, ok = s.readBody(c); !ok {
			return
		}
	}

	cf := s.confirmation(c, raw)
	res, err := s.svc.ImportCSV(c.Request.Context(), bytes.NewReader(raw), cf.confirm)
	s.writeResult(c, cf, res, err)
}

func (s *Server) handleDeleteMember(c *gin.Context) {
	cf := s.confirmation(c, nil)
	res, err := s.svc.DeleteMember(c.Request.Context(), c.Param("id"), cf.confirm)
	s.writeResult(c, cf, res, err)
}

func (s *Server) handleGetMember(c *gin.Context) {
	m, err := s.svc.Member(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "member": m})
}

func (s *Server) handleRecordScore(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "invalid json body")
		return
	}
	m, err := s.svc.RecordScore(c.Request.Context(), c.Param("id"), ledger.Adjustment{
		Delta:    req.Change,
		Reason:   req.Reason,
		Recorder: req.Recorder,
	})
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "member": m})
}

func (s *Server) handleScoreHistory(c *gin.Context) {
	m, err := s.svc.Member(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      m.ID,
		"name":    m.Name,
		"score":   m.Score,
		"history": m.ScoreHistory,
	})
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var task member.Task
	if err := c.ShouldBindJSON(&task); err != nil {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "invalid json body")
		return
	}
	m, err := s.svc.UpdateTask(c.Request.Context(), c.Param("id"), task)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "member": m})
}

func (s *Server) handleArchiveTask(c *gin.Context) {
	var req archiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "invalid json body")
		return
	}
	next := member.PlaceholderTask(s.svc.Today(), "")
	if req.Next != nil {
		next = *req.Next
	}
	m, err := s.svc.ArchiveTask(c.Request.Context(), c.Param("id"), req.Outcome, next)
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "member": m})
}

func (s *Server) handleReorder(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.valid() {
		writeError(c, http.StatusBadRequest, errCodeBadRequest, "moved_id and exactly one of over_id or target_position are required")
		return
	}
	var (
		data member.AppData
		err  error
	)
	if req.TargetPosition != nil {
		data, err = s.svc.Reorder(c.Request.Context(), req.MovedID, *req.TargetPosition)
	} else {
		data, err = s.svc.ReorderOver(c.Request.Context(), req.MovedID, req.OverID)
	}
	if err != nil {
		s.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// readBody 讀取受大小限制的原始內容，確認憑證以此計算摘要。
func (s *Server) readBody(c *gin.Context) ([]byte, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload))
	if err != nil {
		writeError(c, http.StatusRequestEntityTooLarge, errCodeBadRequest, "request body too large or unreadable")
		return nil, false
	}
	return raw, true
}
