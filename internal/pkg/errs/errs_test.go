//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"booking-orchestrator/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	sentinel := errs.New("sentinel")

	t.Run("marked error matches sentinel and keeps message", func(t *testing.T) {
		base := errors.New("connection reset")
		marked := errs.Mark(base, sentinel)

		assert.True(t, errors.Is(marked, sentinel))
		assert.True(t, errs.Is(marked, sentinel))
		assert.Contains(t, marked.Error(), "connection reset")
	})

	t.Run("nil error returns the sentinel itself", func(t *testing.T) {
		assert.Equal(t, sentinel, errs.Mark(nil, sentinel))
	})
}

func TestWrap(t *testing.T) {
	assert.Nil(t, errs.Wrap(nil, "ignored"))

	base := errors.New("boom")
	wrapped := errs.Wrap(base, "calling provider")
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, "calling provider: boom", wrapped.Error())
}

func TestExtractStackLines(t *testing.T) {
	assert.Nil(t, errs.ExtractStackLines(nil, 3))

	lines := errs.ExtractStackLines(errs.New("with stack"), 2)
	assert.Len(t, lines, 2)
	assert.Equal(t, "with stack", lines[0])
}
