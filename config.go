package baseview

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ingo-dsp/baseview/dpi"
)

// optionsFile is the on-disk shape of a window options file.
type optionsFile struct {
	Title  string  `yaml:"title"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Scale is either "system" or a numeric factor like "1.5".
	Scale string `yaml:"scale,omitempty"`
}

// DefaultWindowOpenOptions returns the options used when no file overrides
// them.
func DefaultWindowOpenOptions() WindowOpenOptions {
	return WindowOpenOptions{
		Title: "baseview",
		Size:  dpi.NewSize(512, 512),
		Scale: SystemScaleFactor(),
	}
}

// LoadOptions reads window options from a YAML file, applying defaults for
// anything unset. A missing file yields the defaults without error.
func LoadOptions(path string) (WindowOpenOptions, error) {
	opts := DefaultWindowOpenOptions()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("failed to read options file: %w", err)
	}

	var file optionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return opts, fmt.Errorf("failed to parse options file: %w", err)
	}

	if file.Title != "" {
		opts.Title = file.Title
	}
	if file.Width != 0 || file.Height != 0 {
		if file.Width <= 0 || file.Height <= 0 {
			return opts, fmt.Errorf("invalid size %gx%g: both dimensions must be positive", file.Width, file.Height)
		}
		opts.Size = dpi.NewSize(file.Width, file.Height)
	}

	switch file.Scale {
	case "", "system":
		opts.Scale = SystemScaleFactor()
	default:
		factor, err := strconv.ParseFloat(file.Scale, 64)
		if err != nil {
			return opts, fmt.Errorf("invalid scale %q: must be \"system\" or a number", file.Scale)
		}
		if factor <= 0 {
			return opts, fmt.Errorf("invalid scale %q: factor must be positive", file.Scale)
		}
		opts.Scale = FixedScaleFactor(factor)
	}

	return opts, nil
}
