package baseview

import (
	"os"
	"path/filepath"
	"testing"
)

func writeOptionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "window.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write options file: %v", err)
	}
	return path
}

func TestLoadOptions_MissingFileYieldsDefaults(t *testing.T) {
	opts, err := LoadOptions(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	def := DefaultWindowOpenOptions()
	if opts.Title != def.Title || opts.Size != def.Size {
		t.Errorf("got %+v, want defaults %+v", opts, def)
	}
}

func TestLoadOptions_OverridesDefaults(t *testing.T) {
	path := writeOptionsFile(t, "title: plugin editor\nwidth: 1024\nheight: 640\nscale: \"2.0\"\n")

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions: %v", err)
	}
	if opts.Title != "plugin editor" {
		t.Errorf("title = %q, want %q", opts.Title, "plugin editor")
	}
	if opts.Size.Width != 1024 || opts.Size.Height != 640 {
		t.Errorf("size = %+v, want 1024x640", opts.Size)
	}
	if opts.Scale != FixedScaleFactor(2.0) {
		t.Errorf("scale = %+v, want fixed 2.0", opts.Scale)
	}
}

func TestLoadOptions_SystemScale(t *testing.T) {
	for _, scale := range []string{"", "system"} {
		path := writeOptionsFile(t, "scale: \""+scale+"\"\n")
		opts, err := LoadOptions(path)
		if err != nil {
			t.Fatalf("LoadOptions(scale=%q): %v", scale, err)
		}
		if opts.Scale != SystemScaleFactor() {
			t.Errorf("scale=%q: got %+v, want system policy", scale, opts.Scale)
		}
	}
}

func TestLoadOptions_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "title: [unclosed\n"},
		{"negative width", "width: -10\nheight: 100\n"},
		{"zero height", "width: 100\nheight: 0\n"},
		{"bad scale", "scale: \"huge\"\n"},
		{"negative scale", "scale: \"-1.5\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeOptionsFile(t, tt.content)
			if _, err := LoadOptions(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
