package gfx

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvEnableVR enables monitor-targeted fullscreen when set, even to an
	// empty value. Unless EnvVRMonitor is set too, the value doubles as the
	// monitor index.
	EnvEnableVR  = "CLEARGL_ENABLE_VR"
	EnvVRMonitor = "CLEARGL_VR_MONITOR"
)

type CloseMode int

const (
	CloseModeDispose CloseMode = iota
	CloseModeDoNothing
)

func (m CloseMode) String() string {
	switch m {
	case CloseModeDispose:
		return "dispose"
	case CloseModeDoNothing:
		return "do_nothing"
	default:
		return fmt.Sprintf("CloseMode(%d)", int(m))
	}
}

func (m *CloseMode) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "", "dispose":
		*m = CloseModeDispose
	case "do_nothing", "nothing":
		*m = CloseModeDoNothing
	default:
		return fmt.Errorf("line %d: unknown close mode %q", value.Line, value.Value)
	}
	return nil
}

func (m CloseMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

// VRConfig selects the head-mounted display monitor used by SetFullscreen.
type VRConfig struct {
	Enabled bool   `yaml:"enabled"`
	Monitor string `yaml:"monitor"`
}

// MonitorIndex parses Monitor. Empty, non-numeric and negative values give
// index 0 and ok=false.
func (v VRConfig) MonitorIndex() (index int, ok bool) {
	n, err := strconv.Atoi(strings.TrimSpace(v.Monitor))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

type Config struct {
	Title     string    `yaml:"title"`
	Width     int       `yaml:"width"`
	Height    int       `yaml:"height"`
	Samples   int       `yaml:"samples"`
	FPS       int       `yaml:"fps"`
	Icons     []string  `yaml:"icons"`
	CloseMode CloseMode `yaml:"close_mode"`
	VR        VRConfig  `yaml:"vr"`
}

func DefaultConfig() Config {
	return Config{
		Title:   "cleargl",
		Width:   512,
		Height:  512,
		Samples: 16,
		FPS:     60,
	}
}

// ParseConfig decodes YAML on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// FromEnv overlays the VR environment toggles. A nil lookup reads the
// process environment.
func (c Config) FromEnv(lookup func(string) (string, bool)) Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvEnableVR); ok {
		c.VR.Enabled = true
		c.VR.Monitor = v
	}
	if v, ok := lookup(EnvVRMonitor); ok {
		c.VR.Monitor = v
	}
	return c
}
