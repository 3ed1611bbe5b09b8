package view

import (
	"sort"
	"strings"

	"uav-roster/internal/domain/member"
)

// RankedMember 為積分排行的一列，Rank 由 1 起算且只依排序位置決定。
type RankedMember struct {
	Rank   int           `json:"rank"`
	Member member.Member `json:"member"`
}

// DashboardRow 為任務表的一列，依名單原本的順序排列。
type DashboardRow struct {
	Position int           `json:"position"`
	Member   member.Member `json:"member"`
	Overdue  bool          `json:"overdue"`
}

// Ranked 依姓名（不分大小寫）篩選後以積分由高到低排序；同分維持原順序。
func Ranked(members []member.Member, search string) []RankedMember {
	needle := strings.ToLower(search)
	filtered := make([]member.Member, 0, len(members))
	for _, m := range members {
		if needle == "" || strings.Contains(strings.ToLower(m.Name), needle) {
			filtered = append(filtered, m)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Score > filtered[j].Score
	})

	out := make([]RankedMember, len(filtered))
	for i, m := range filtered {
		out[i] = RankedMember{Rank: i + 1, Member: m}
	}
	return out
}

// IsOverdue 期限早於今天且進度未滿 100% 即為逾期。
func IsOverdue(t member.Task, today member.Date) bool {
	return t.Deadline.Before(today) && t.Progress < 100
}

// Dashboard 依儲存順序列出成員並計算逾期旗標，不受積分影響。
func Dashboard(members []member.Member, today member.Date) []DashboardRow {
	out := make([]DashboardRow, len(members))
	for i, m := range members {
		out[i] = DashboardRow{
			Position: i,
			Member:   m,
			Overdue:  IsOverdue(m.CurrentTask, today),
		}
	}
	return out
}
