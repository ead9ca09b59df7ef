//go:build js || nogl

package gfx

import "log/slog"

// defaultGL has no binding to offer; windows must be built WithGL.
func defaultGL(*slog.Logger) GL {
	return nil
}
