package gfx

import "github.com/kjkrol/cleargl/internal/platform"

type Option func(*windowOptions)

type windowOptions struct {
	config      *Config
	platform    platform.Platform
	gl          GL
	newAnimator AnimatorFactory
}

// WithConfig supplies fps, icons, close mode and VR settings. NewWindow's
// explicit title, size and samples take precedence over the config's.
func WithConfig(cfg Config) Option {
	return func(o *windowOptions) { o.config = &cfg }
}

func WithPlatform(p platform.Platform) Option {
	return func(o *windowOptions) { o.platform = p }
}

func WithGL(gl GL) Option {
	return func(o *windowOptions) { o.gl = gl }
}

func WithAnimatorFactory(f AnimatorFactory) Option {
	return func(o *windowOptions) { o.newAnimator = f }
}
