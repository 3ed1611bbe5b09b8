package taskboard

import (
	"fmt"
	"strings"

	"uav-roster/internal/domain/member"
)

// UpdateTask 取代目前任務（標題、期限、組別、進度），不動歷史、統計與積分。
func UpdateTask(m member.Member, t member.Task) (member.Member, error) {
	t.Title = strings.TrimSpace(t.Title)
	if strings.TrimSpace(t.Group) == "" {
		t.Group = m.Group
	}
	if t.Outcome != member.OutcomeNone {
		return m, fmt.Errorf("%w: outcome is set when archiving, not on the current task", member.ErrValidation)
	}
	if err := t.Validate(); err != nil {
		return m, err
	}
	out := m.Clone()
	out.CurrentTask = t
	return out, nil
}

// Archive 由呼叫端明確觸發：目前任務標上結果後移入歷史（新到舊），統計加一，並換上下一個任務。
func Archive(m member.Member, outcome member.Outcome, next member.Task) (member.Member, error) {
	if outcome != member.OutcomeSuccess && outcome != member.OutcomeFailed {
		return m, fmt.Errorf("%w: outcome must be %s or %s", member.ErrValidation, member.OutcomeSuccess, member.OutcomeFailed)
	}
	updated, err := UpdateTask(m, next)
	if err != nil {
		return m, err
	}

	done := m.CurrentTask
	done.Outcome = outcome
	updated.History = append([]member.Task{done}, m.History...)
	switch outcome {
	case member.OutcomeSuccess:
		updated.Stats.Success++
	case member.OutcomeFailed:
		updated.Stats.Failed++
	}
	return updated, nil
}
