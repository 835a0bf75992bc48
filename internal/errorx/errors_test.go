package errorx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandle(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"NotFound", ErrNotFound("font not found: a.woff2"), http.StatusNotFound, "font not found: a.woff2"},
		{"Wrapped", fmt.Errorf("search: %w", ErrUnavailable("catalog unavailable")), http.StatusServiceUnavailable, "catalog unavailable"},
		{"BadRequest", ErrBadRequest("limit must be between 1 and 500"), http.StatusBadRequest, "limit must be between 1 and 500"},
		{"Untyped", errors.New("disk full"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := Handle(context.Background(), tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, &CodeError{Code: tt.code, Msg: tt.msg}, body)
		})
	}
}
