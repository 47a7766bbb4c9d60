// Package gpu attaches a host-provided GPU device to a window.
//
// The window engine does not create GPU devices. Following the gpucontext
// integration model, the embedding application supplies a
// gpucontext.DeviceProvider in the Config; the engine binds it to the window
// geometry at creation time and releases the binding when the window state is
// destroyed. Failure to bind is a fatal construction error for the open
// operation.
package gpu

import (
	"errors"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/ingo-dsp/baseview/dpi"
)

// ErrNoProvider is returned when a Config carries no device provider.
var ErrNoProvider = errors.New("gpu: config has no device provider")

// Config describes the GPU context requested for a window.
type Config struct {
	// Provider supplies the shared GPU device, queue and adapter.
	Provider gpucontext.DeviceProvider

	// Format is the surface texture format. Zero value selects BGRA8Unorm.
	Format gputypes.TextureFormat
}

// Context is a renderable GPU binding tied to one window. It is owned by the
// window: the engine resizes it alongside the native surface and releases it
// during window-state destruction.
type Context struct {
	provider gpucontext.DeviceProvider
	format   gputypes.TextureFormat
	size     dpi.PhySize
	released bool
}

// NewContext binds cfg's device provider to a surface of the given physical
// size.
func NewContext(cfg Config, size dpi.PhySize) (*Context, error) {
	if cfg.Provider == nil {
		return nil, ErrNoProvider
	}
	format := cfg.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	return &Context{
		provider: cfg.Provider,
		format:   format,
		size:     size,
	}, nil
}

// Provider returns the device provider backing this context.
func (c *Context) Provider() gpucontext.DeviceProvider { return c.provider }

// Device returns the shared GPU device.
func (c *Context) Device() gpucontext.Device { return c.provider.Device() }

// Queue returns the shared GPU queue.
func (c *Context) Queue() gpucontext.Queue { return c.provider.Queue() }

// SurfaceFormat returns the surface texture format.
func (c *Context) SurfaceFormat() gputypes.TextureFormat { return c.format }

// SurfaceSize returns the current surface size in physical pixels.
func (c *Context) SurfaceSize() dpi.PhySize { return c.size }

// Resize follows a window resize; the surface tracks the physical size.
func (c *Context) Resize(size dpi.PhySize) {
	if c.released {
		return
	}
	c.size = size
}

// Release drops the binding. Idempotent. The device is a type token shared
// with the host; it belongs to the provider and is not destroyed here.
func (c *Context) Release() {
	if c.released {
		return
	}
	c.released = true
}

// Released reports whether Release has run.
func (c *Context) Released() bool { return c.released }
