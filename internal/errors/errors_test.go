package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsInnerCode(t *testing.T) {
	base := Storage("put", stderrors.New("connection reset"))
	wrapped := Wrap(base, "failed to write row 3")

	assert.Equal(t, CodeStorage, GetCode(wrapped))
	assert.Equal(t, "failed to write row 3: table store put failed: connection reset", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	err := Wrapf(stderrors.New("boom"), "step %d", 2)
	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.Equal(t, "step 2: boom", err.Error())
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "nothing"))
	assert.NoError(t, Wrapf(nil, "nothing %d", 1))
	assert.NoError(t, WithCode(CodeStorage, nil))
}

func TestGetCodeThroughFmtWrapping(t *testing.T) {
	inner := FileAccess("/tmp/missing.xlsx", stderrors.New("no such file"))
	outer := fmt.Errorf("loading: %w", inner)

	assert.True(t, IsAppError(outer))
	assert.Equal(t, CodeFileAccess, GetCode(outer))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidInput, stderrors.New("bad table name"))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, "bad table name", err.Error())
}
