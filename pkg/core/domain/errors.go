package domain

import (
	"errors"
	"fmt"
)

// Kind 错误类别，供调用方通过 errors.Is / KindOf 做程序化分支
// 不要匹配 Error() 的字符串内容
type Kind string

const (
	KindUnitNotFound    Kind = "UnitNotFound"
	KindAmbiguousUnit   Kind = "AmbiguousUnit"
	KindBadUnit         Kind = "BadUnit"
	KindDivisionByZero  Kind = "DivisionByZero"
	KindArithmetic      Kind = "Arithmetic"
	KindInvalidArgument Kind = "InvalidArgument"
	KindInvalidState    Kind = "InvalidState"
)

// Error 是库内统一的结构化错误
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// 哨兵错误: errors.Is(err, ErrUnitNotFound) 按 Kind 匹配
var (
	ErrUnitNotFound    = &Error{Kind: KindUnitNotFound}
	ErrAmbiguousUnit   = &Error{Kind: KindAmbiguousUnit}
	ErrBadUnit         = &Error{Kind: KindBadUnit}
	ErrDivisionByZero  = &Error{Kind: KindDivisionByZero}
	ErrArithmetic      = &Error{Kind: KindArithmetic}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrInvalidState    = &Error{Kind: KindInvalidState}
)

// NewError 创建指定类别的错误，支持 fmt 格式化
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError 创建带底层原因的错误
func WrapError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is 让哨兵错误按 Kind 匹配
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return t.Message == "" && t.Cause == nil && t.Kind == e.Kind
}

// KindOf 返回错误链中第一个 *Error 的类别；非本库错误返回空字符串
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
