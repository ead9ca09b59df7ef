//go:build js || nogl

package platform

import (
	"errors"
	"log/slog"
)

var ErrNoBackend = errors.New("platform: built without a windowing backend")

// NewPlatform fails in builds without a native backend. Callers inject their
// own Platform there.
func NewPlatform(logger *slog.Logger) (Platform, error) {
	return nil, ErrNoBackend
}

func Terminate() {}
