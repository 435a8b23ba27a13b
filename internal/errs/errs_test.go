package errs

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"with op", Module("apply gtk", errors.New("boom")), "module error: apply gtk: boom"},
		{"without op", Config("", errors.New("bad")), "config error: bad"},
		{"nil cause", Timeout("wait", nil), "timeout error: wait: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestIsKind(t *testing.T) {
	base := IO("read", fs.ErrPermission)
	wrapped := fmt.Errorf("setup: %w", base)
	nested := Module("inject", base)

	assert.True(t, IsKind(base, KindIO))
	assert.True(t, IsKind(wrapped, KindIO))
	assert.True(t, IsKind(nested, KindModule))
	assert.True(t, IsKind(nested, KindIO), "inner kinds are visible through the chain")
	assert.False(t, IsKind(base, KindTimeout))
	assert.False(t, IsKind(errors.New("plain"), KindIO))
	assert.False(t, IsKind(nil, KindIO))
}

func TestErrNotFound(t *testing.T) {
	err := fmt.Errorf("cleanup: %w", NotFound("module", errors.New("foo")))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(Config("x", nil), ErrNotFound))
	assert.True(t, errors.Is(IO("read", fs.ErrPermission), fs.ErrPermission))
}
