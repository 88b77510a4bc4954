package err

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "all parts",
			err:  New("store", CodeNotFound, "get", "abc", errors.New("missing")),
			want: "[store][NOT_FOUND]: get: abc: missing",
		},
		{
			name: "no code",
			err:  New("index", "", "stage", "", nil),
			want: "[index]: stage",
		},
		{
			name: "only cause",
			err:  &Error{Err: errors.New("boom")},
			want: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_IsMatchesCodeThroughWrapping(t *testing.T) {
	leaf := New("store", CodeNotFound, "get", "", nil)
	wrapped := Wrap(fmt.Errorf("read commit: %w", leaf), "commitmanager", "get")

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrCorruptHistory))
	assert.True(t, IsCode(wrapped, CodeNotFound))
	assert.Equal(t, CodeNotFound, GetCode(wrapped))
	assert.Equal(t, "commitmanager", GetPackage(wrapped))
	assert.Equal(t, "get", GetOp(wrapped))
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "x", "y"))
	assert.NoError(t, WrapWithCode(nil, "x", CodeInternal, "y"))
}

func TestError_Context(t *testing.T) {
	e := New("walk", CodeCorruptHistory, "next", "", nil).
		WithContext("depth", 3).
		WithContext("digest", "ff")

	assert.Equal(t, 3, e.GetContext("depth"))
	assert.Equal(t, "ff", e.GetContext("digest"))
	assert.Nil(t, e.GetContext("missing"))
}
