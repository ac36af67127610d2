package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/sant0-9/mindppt/internal/llm"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindCredential
	KindQuota
	KindParse
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindCredential:
		return "credential"
	case KindQuota:
		return "quota"
	case KindParse:
		return "parse"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// User-facing messages shared by the HTTP API and the TUI.
const (
	MsgCredential = "智谱AI API密钥未配置或无效，请在环境变量中设置 ZHIPUAI_API_KEY 或 ZHIPU_API_KEY"
	MsgQuota      = "API调用次数已达上限，请检查账户余额或稍后重试"
	MsgParse      = "AI响应解析失败，请重试"
	MsgUpstream   = "AI服务暂时不可用，请稍后重试"
)

// Error carries a user-facing Message alongside the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Status maps the kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindQuota:
		return http.StatusTooManyRequests
	case KindUpstream:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Code is a stable machine-readable identifier for the kind.
func (e *Error) Code() string {
	return strings.ToUpper(e.Kind.String())
}

// Classify turns any error from an operation into an *Error. Errors that are
// already classified pass through; everything unrecognized becomes an
// internal error carrying fallback as its message.
func Classify(err error, fallback string) *Error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	var se *llm.StatusError
	isStatus := errors.As(err, &se)

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, llm.ErrMissingCredential), isStatus && se.Unauthorized():
		return New(KindCredential, MsgCredential, err)
	case isStatus && se.RateLimited(), mentionsQuota(err):
		return New(KindQuota, MsgQuota, err)
	case errors.Is(err, llm.ErrNoJSON), errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return New(KindParse, MsgParse, err)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests),
		errors.Is(err, context.DeadlineExceeded), isStatus && se.Status >= 500:
		return New(KindUpstream, MsgUpstream, err)
	default:
		return New(KindInternal, fallback, err)
	}
}

func mentionsQuota(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "余额不足")
}
