package member

import "strings"

// Normalize 於載入邊界補齊欄位預設值，之後的邏輯不再需要判斷欄位是否缺漏。
//
// 缺漏的 id 或重複的 id 會以 newID 重新配發；空白姓名補為 DefaultMemberName，
// 保留該筆的積分與歷程。score 不會依 scoreHistory 重算。
func Normalize(d AppData, today Date, newID func() string) AppData {
	out := AppData{Members: make([]Member, 0, len(d.Members))}
	seen := make(map[string]struct{}, len(d.Members))
	for _, m := range d.Members {
		m = m.Clone()

		m.ID = strings.TrimSpace(m.ID)
		if _, dup := seen[m.ID]; m.ID == "" || dup {
			m.ID = newID()
		}
		seen[m.ID] = struct{}{}

		if strings.TrimSpace(m.Name) == "" {
			m.Name = DefaultMemberName
		}

		if strings.TrimSpace(m.Group) == "" {
			m.Group = strings.TrimSpace(m.CurrentTask.Group)
		}
		if m.Group == "" {
			m.Group = DefaultGroup
		}

		m.CurrentTask = normalizeTask(m.CurrentTask, m.Group, today)
		for i := range m.History {
			m.History[i] = normalizeTask(m.History[i], m.Group, today)
		}
		for i := range m.ScoreHistory {
			if strings.TrimSpace(m.ScoreHistory[i].Reason) == "" {
				m.ScoreHistory[i].Reason = DefaultScoreReason
			}
		}
		out.Members = append(out.Members, m)
	}
	return out
}

func normalizeTask(t Task, group string, today Date) Task {
	if strings.TrimSpace(t.Title) == "" {
		t.Title = DefaultTaskTitle
	}
	if strings.TrimSpace(t.Group) == "" {
		t.Group = group
	}
	if t.Deadline.IsZero() {
		t.Deadline = today
	}
	switch {
	case t.Progress < 0:
		t.Progress = 0
	case t.Progress > 100:
		t.Progress = 100
	}
	if !t.Outcome.Valid() {
		t.Outcome = OutcomeNone
	}
	return t
}
