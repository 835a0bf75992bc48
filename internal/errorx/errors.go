package errorx

import (
	"context"
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// CodeError is a typed error that carries an HTTP status code.
// Logic functions return these so the global error handler can map
// them to the correct HTTP response.
type CodeError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *CodeError) Error() string {
	return e.Msg
}

// ErrNotFound returns a 404 error.
func ErrNotFound(msg string) error {
	return &CodeError{Code: http.StatusNotFound, Msg: msg}
}

// ErrBadRequest returns a 400 error.
func ErrBadRequest(msg string) error {
	return &CodeError{Code: http.StatusBadRequest, Msg: msg}
}

// ErrUnavailable returns a 503 error.
func ErrUnavailable(msg string) error {
	return &CodeError{Code: http.StatusServiceUnavailable, Msg: msg}
}

// RegisterErrorHandler installs Handle as the go-zero httpx error handler.
func RegisterErrorHandler() {
	httpx.SetErrorHandlerCtx(Handle)
}

// Handle maps a CodeError anywhere in err's chain to its status.
// Anything else becomes a 500 with a generic message.
func Handle(ctx context.Context, err error) (int, any) {
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce.Code, &CodeError{Code: ce.Code, Msg: ce.Msg}
	}

	logx.WithContext(ctx).Errorf("unexpected error: %v", err)
	return http.StatusInternalServerError, &CodeError{
		Code: http.StatusInternalServerError,
		Msg:  "internal server error",
	}
}
