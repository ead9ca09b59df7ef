//go:build !js && !nogl

package gfx

import (
	"log/slog"

	"github.com/kjkrol/cleargl/internal/glcore"
)

func defaultGL(logger *slog.Logger) GL {
	return glcore.New(logger)
}
