package httpapi

import (
	"strings"

	"uav-roster/internal/application/roster"
	"uav-roster/internal/domain/member"
)

type memberRequest struct {
	EditID    string       `json:"edit_id"`
	Name      string       `json:"name"`
	StudentID string       `json:"student_id"`
	Phone     string       `json:"phone"`
	Email     string       `json:"email"`
	Account   string       `json:"account"`
	Group     string       `json:"group"`
	Remarks   string       `json:"remarks"`
	Task      *member.Task `json:"task"`
}

func (r memberRequest) profile() roster.Profile {
	return roster.Profile{
		Name:      r.Name,
		StudentID: r.StudentID,
		Phone:     r.Phone,
		Email:     r.Email,
		Account:   r.Account,
		Group:     r.Group,
		Remarks:   r.Remarks,
		Task:      r.Task,
	}
}

type replaceRequest struct {
	Members []member.Member `json:"members"`
}

type scoreRequest struct {
	Change   int    `json:"change"`
	Reason   string `json:"reason"`
	Recorder string `json:"recorder"`
}

type archiveRequest struct {
	Outcome member.Outcome `json:"outcome"`
	Next    *member.Task   `json:"next"`
}

// reorderRequest 以 over_id（拖放目標）或 target_position 指定新位置。
type reorderRequest struct {
	MovedID        string `json:"moved_id"`
	OverID         string `json:"over_id"`
	TargetPosition *int   `json:"target_position"`
}

func (r reorderRequest) valid() bool {
	if strings.TrimSpace(r.MovedID) == "" {
		return false
	}
	return (r.OverID != "") != (r.TargetPosition != nil)
}

type confirmationResponse struct {
	Success      bool   `json:"success"`
	Error        string `json:"error"`
	ErrorCode    string `json:"error_code"`
	Kind         string `json:"kind"`
	TargetID     string `json:"target_id,omitempty"`
	Description  string `json:"description"`
	Count        int    `json:"count"`
	ConfirmToken string `json:"confirm_token"`
	ExpiresAt    string `json:"expires_at"`
}
