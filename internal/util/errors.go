package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailRegistered        = errors.New("该邮箱已被注册")
	ErrUsernameTaken          = errors.New("该用户名已被占用")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrQuestionBankNotFound   = errors.New("question bank not found")
	ErrQuestionNotFound       = errors.New("question not found")
	ErrExamNotFound           = errors.New("exam not found")
	ErrExamClosed             = errors.New("the exam has ended")
	ErrExamNotStarted         = errors.New("the exam has not started yet")
	ErrSectionNotFound        = errors.New("section not found in the exam")
	ErrAnswerAlreadySubmitted = errors.New("answer already submitted and evaluated")
	ErrNoAnswersFound         = errors.New("no answers found for this student in the exam")
)

// SectionError 分区配置/抽题失败时携带出错的分区名
type SectionError struct {
	Section string
	Reason  string
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("section '%s': %s", e.Section, e.Reason)
}

func NewSectionError(section, reason string) *SectionError {
	return &SectionError{Section: section, Reason: reason}
}
