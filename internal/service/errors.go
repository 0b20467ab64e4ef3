package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrListingNotFound      = errors.New("listing not found")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbidden            = errors.New("permission denied")
	ErrLogoutFailed         = errors.New("logout failed")
	ErrInternalServer       = errors.New("internal server error")
)

// 常用的字段错误信息
const (
	MsgRequired         = "Este campo é obrigatório."
	MsgPasswordMismatch = "As senhas não conferem."
	MsgUsernameTaken    = "Um usuário com este nome de usuário já existe."
)

// ValidationError 表示请求数据未通过业务校验，Fields 为字段名到错误信息列表的映射
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError 创建只包含一个字段错误的 ValidationError
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {msg}}}
}

// Add 追加一条字段错误
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty 判断是否没有任何错误
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
