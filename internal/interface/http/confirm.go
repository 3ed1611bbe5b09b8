package httpapi

import (
	"errors"
	"net/http"
	"time"

	"uav-roster/internal/application/club"
	"uav-roster/internal/domain/member"

	"github.com/gin-gonic/gin"
)

const confirmTokenParam = "confirm_token"

// confirmation 將 club.Confirm 對應到「帶著先前簽發的憑證重送同一請求」。
type confirmation struct {
	server  *Server
	token   string
	payload []byte
}

func (s *Server) confirmation(c *gin.Context, payload []byte) *confirmation {
	return &confirmation{server: s, token: c.Query(confirmTokenParam), payload: payload}
}

func (cf *confirmation) confirm(p club.Plan) bool {
	if cf.token == "" || cf.server.tickets == nil {
		return false
	}
	err := cf.server.tickets.Verify(cf.token, string(p.Kind), p.TargetID, cf.payload)
	if err != nil {
		cf.server.logger.Info("confirmation ticket rejected", "kind", p.Kind, "error", err.Error())
		return false
	}
	return true
}

// writeResult 回應提交結果；未確認時簽發新憑證並回 409。
func (s *Server) writeResult(c *gin.Context, cf *confirmation, res club.Result, err error) {
	if err == nil {
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"kind":        res.Plan.Kind,
			"description": res.Plan.Description,
			"count":       res.Plan.Count,
			"data":        res.Data,
		})
		return
	}
	if !errors.Is(err, member.ErrConfirmationRequired) {
		s.writeDomainError(c, err)
		return
	}
	if s.tickets == nil {
		writeError(c, http.StatusInternalServerError, errCodeInternal, "confirmation is not configured")
		return
	}

	plan := res.Plan
	token, exp, terr := s.tickets.Issue(string(plan.Kind), plan.TargetID, cf.payload)
	if terr != nil {
		s.writeDomainError(c, terr)
		return
	}
	c.AbortWithStatusJSON(http.StatusConflict, confirmationResponse{
		Success:      false,
		Error:        "confirmation required",
		ErrorCode:    errCodeConfirmationRequired,
		Kind:         string(plan.Kind),
		TargetID:     plan.TargetID,
		Description:  plan.Description,
		Count:        plan.Count,
		ConfirmToken: token,
		ExpiresAt:    exp.UTC().Format(time.RFC3339),
	})
}
