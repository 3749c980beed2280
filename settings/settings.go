package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v2"

	"letitsnow/snow"
)

// Backend names
const (
	BackendWindow      = "window"
	BackendFramebuffer = "framebuffer"
	BackendTerminal    = "terminal"
)

// Settings is the on-disk overlay description
type Settings struct {
	Backend string `yaml:"backend"`
	FPS     int    `yaml:"fps"`
	Seed    int64  `yaml:"seed"` // 0 seeds from the clock

	// Device is the framebuffer device path
	Device string `yaml:"device"`

	// ProfileDir enables frame-drop CPU profiles when set
	ProfileDir string `yaml:"profile_dir"`

	LogConfig `yaml:",inline"`

	// Body is the page root; its box is the viewport (zero means use the screen)
	Body snow.Element `yaml:"body"`

	// Elements are the named regions the overlay may attach to
	Elements map[string]snow.Element `yaml:"elements"`
}

// LogConfig selects log verbosity and destination
type LogConfig struct {
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	LogShowCaller bool   `yaml:"log_show_caller"`
}

// Default returns settings for a full-viewport window overlay
func Default() Settings {
	return Settings{
		Backend: BackendWindow,
		FPS:     60,
		Device:  "/dev/fb0",
		LogConfig: LogConfig{
			LogLevel: "info",
		},
		Body: snow.Element{ID: "body"},
	}
}

// Load reads settings from a YAML file on top of Default.
// A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	source, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := Parse(source, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML into s, keeping fields the document leaves out
func Parse(source []byte, s *Settings) error {
	if err := yaml.Unmarshal(source, s); err != nil {
		return fmt.Errorf("parse settings: %w", err)
	}
	if s.FPS <= 0 {
		s.FPS = 60
	}
	if s.Backend == "" {
		s.Backend = BackendWindow
	}
	switch s.Backend {
	case BackendWindow, BackendFramebuffer, BackendTerminal:
	default:
		return fmt.Errorf("unknown backend %q", s.Backend)
	}
	return nil
}

// Page builds the page the host is resolved from
func (s Settings) Page() snow.Page {
	body := s.Body
	if body.ID == "" {
		body.ID = "body"
	}
	elements := make(map[string]snow.Element, len(s.Elements))
	for id, el := range s.Elements {
		el.ID = id
		elements[id] = el
	}
	return snow.Page{Body: body, Elements: elements}
}
