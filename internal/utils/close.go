package utils

import (
	"io"

	"github.com/MrSnakeDoc/notary/internal/logger"
)

// MustClose closes c and logs any error under name.
// Use for shutdown paths where we want to track close errors.
func MustClose(c io.Closer, name string, log logger.Logger) {
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("component", name), logger.Error(err))
		return
	}
	log.Debug("closed", logger.String("component", name))
}
