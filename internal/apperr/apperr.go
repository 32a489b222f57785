package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code 动作层的失败分类
type Code int

const (
	CodeUnauthorized Code = iota + 1
	CodeValidation
	CodeNotFound
	CodeForbidden
	CodeConflict
	CodeInternal
)

type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Unauthorized(msg string) *Error { return &Error{Code: CodeUnauthorized, Msg: msg} }
func Validation(msg string) *Error   { return &Error{Code: CodeValidation, Msg: msg} }
func NotFound(msg string) *Error     { return &Error{Code: CodeNotFound, Msg: msg} }
func Forbidden(msg string) *Error    { return &Error{Code: CodeForbidden, Msg: msg} }
func Conflict(msg string) *Error     { return &Error{Code: CodeConflict, Msg: msg} }

// Internal 包装存储/下游失败，细节只进日志，不回给调用方
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Msg: "internal error", Err: err}
}

// HTTPStatus 错误码到 HTTP 状态的映射；非 *Error 一律按 500 处理
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Code {
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Is 判断 err 是否属于某一分类
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
