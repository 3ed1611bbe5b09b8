package roster

import (
	"fmt"

	"uav-roster/internal/domain/member"
)

// Reorder 將 movedID 移到 target 原本所在的位置，中間的成員依序位移一格。
// 只改變順序，不碰任何成員欄位；已在目標位置時原樣回傳。
func Reorder(members []member.Member, movedID string, target int) ([]member.Member, error) {
	from := IndexOf(members, movedID)
	if from < 0 {
		return nil, fmt.Errorf("%w: %s", member.ErrNotFound, movedID)
	}
	if target < 0 || target >= len(members) {
		return nil, fmt.Errorf("%w: target position %d out of range [0,%d)", member.ErrValidation, target, len(members))
	}

	out := make([]member.Member, 0, len(members))
	for _, m := range members {
		out = append(out, m.Clone())
	}
	if from == target {
		return out, nil
	}

	moved := out[from]
	if from < target {
		copy(out[from:target], out[from+1:target+1])
	} else {
		copy(out[target+1:from+1], out[target:from])
	}
	out[target] = moved
	return out, nil
}
