// Package code defines the closed set of error variants used across layers.
// Package code 定义跨层使用的错误变体闭集
package code

import (
	"errors"
	"fmt"
)

// Code is a tagged error variant carrying a transport status code.
// Code 是携带传输状态码的错误变体
type Code struct {
	name       string
	statusCode int
	msg        string
	details    []string
}

var codes = map[string]int{}

// NewError registers an error variant. Names must be unique.
// NewError 注册一个错误变体，名称必须唯一
func NewError(name string, statusCode int, msg string) *Code {
	if _, ok := codes[name]; ok {
		panic(fmt.Sprintf("error code %q already exists", name))
	}
	codes[name] = statusCode
	return &Code{name: name, statusCode: statusCode, msg: msg}
}

func (e *Code) Error() string {
	return fmt.Sprintf("%s: %s", e.name, e.msg)
}

func (e *Code) Name() string {
	return e.name
}

func (e *Code) StatusCode() int {
	return e.statusCode
}

func (e *Code) Msg() string {
	return e.msg
}

func (e *Code) Details() []string {
	return e.details
}

// Clone creates a copy so the registered variants stay immutable.
// Clone 创建副本，保持注册的变体不可变
func (e *Code) Clone() *Code {
	c := *e
	c.details = append([]string(nil), e.details...)
	return &c
}

// WithMsg returns a copy carrying a specific message.
func (e *Code) WithMsg(msg string) *Code {
	c := e.Clone()
	c.msg = msg
	return c
}

// WithMsgf returns a copy carrying a formatted message.
func (e *Code) WithMsgf(format string, args ...any) *Code {
	return e.WithMsg(fmt.Sprintf(format, args...))
}

// WithDetails returns a copy carrying extra detail lines.
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.details = append(c.details, details...)
	return c
}

// Is matches variants by name so errors.Is works across WithMsg copies.
// Is 按名称匹配变体，使 errors.Is 能跨 WithMsg 副本工作
func (e *Code) Is(target error) bool {
	var t *Code
	if !errors.As(target, &t) {
		return false
	}
	return e.name == t.name
}

// FromError coerces any error to a *Code, defaulting to ErrorServerInternal.
// FromError 将任意错误归一为 *Code，默认为 ErrorServerInternal
func FromError(err error) *Code {
	var c *Code
	if errors.As(err, &c) {
		return c
	}
	return ErrorServerInternal.WithDetails(err.Error())
}
