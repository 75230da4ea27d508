package utils

import (
	"errors"
	"testing"

	"github.com/MrSnakeDoc/notary/internal/logger"
)

type closer struct {
	closed bool
	err    error
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestMustClose(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"clean close", nil},
		{"close error", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &closer{err: tt.err}
			MustClose(c, "test", logger.Nop())
			if !c.closed {
				t.Error("MustClose() did not close")
			}
		})
	}
}
