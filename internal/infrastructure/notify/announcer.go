package notify

import (
	"context"
	"fmt"

	"uav-roster/internal/domain/member"
)

// ScoreAnnouncer 在積分異動後通知社團群組。
type ScoreAnnouncer struct {
	sender Sender
}

func NewScoreAnnouncer(sender Sender) *ScoreAnnouncer {
	return &ScoreAnnouncer{sender: sender}
}

// AnnounceScore 送出例如「Alice +3 (Wing done) → total 12」的訊息。
func (a *ScoreAnnouncer) AnnounceScore(ctx context.Context, m member.Member, rec member.ScoreRecord) error {
	if a == nil || a.sender == nil {
		return nil
	}
	return a.sender.SendMessage(ctx, FormatScore(m, rec))
}

// FormatScore 組出積分通知文字。
func FormatScore(m member.Member, rec member.ScoreRecord) string {
	msg := fmt.Sprintf("%s %+d (%s) → total %d", m.Name, rec.Change, rec.Reason, m.Score)
	if rec.Recorder != "" {
		msg += fmt.Sprintf(" by %s", rec.Recorder)
	}
	return msg
}
