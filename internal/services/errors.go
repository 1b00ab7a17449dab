package services

import "errors"

// 服務層錯誤分類，由 handlers 映射為 HTTP 狀態碼
var (
	ErrValidation      = errors.New("validation failed")
	ErrTargetNotFound  = errors.New("target not found")
	ErrVoteNotFound    = errors.New("vote not found")
	ErrNotFound        = errors.New("not found")
	ErrDuplicateReport = errors.New("duplicate report")
)
