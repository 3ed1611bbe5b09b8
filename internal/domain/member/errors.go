package member

import (
	"errors"
	"fmt"
)

// 錯誤分類；呼叫端以 errors.Is 判斷。
var (
	ErrValidation           = errors.New("validation failed")
	ErrParse                = errors.New("parse failed")
	ErrNotFound             = errors.New("member not found")
	ErrPersistence          = errors.New("persistence failed")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrNoValidRecords       = fmt.Errorf("%w: no valid members found", ErrParse)
)
