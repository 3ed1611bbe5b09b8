package metrics

import (
	"errors"

	"uav-roster/internal/domain/member"
)

func mutationResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, member.ErrConfirmationRequired):
		return "confirm"
	default:
		return "error"
	}
}
