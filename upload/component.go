package upload

import (
	"context"
	"os"

	"github.com/kbukum/scribe/component"
	"github.com/kbukum/scribe/logger"
)

const componentName = "recordings"

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component manages the recordings directory lifecycle.
type Component struct {
	files *TempFiles
	log   *logger.Logger
}

// NewComponent wraps files as a lifecycle component.
func NewComponent(files *TempFiles, log *logger.Logger) *Component {
	if log == nil {
		log = logger.NewNop()
	}
	return &Component{files: files, log: log.WithComponent(componentName)}
}

// Name returns the component name used for registration.
func (c *Component) Name() string { return componentName }

// Start creates the directory if needed and removes leftovers from a
// previous run.
func (c *Component) Start(ctx context.Context) error {
	if err := os.MkdirAll(c.files.Dir(), 0o750); err != nil {
		return err
	}
	removed, err := c.files.Sweep(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		c.log.Info("Removed stale uploads", logger.Fields("count", removed, "dir", c.files.Dir()))
	}
	return nil
}

// Stop is a no-op; in-flight requests release their own files.
func (c *Component) Stop(context.Context) error { return nil }

// Health reports unhealthy when the directory is missing.
func (c *Component) Health(context.Context) component.Health {
	info, err := os.Stat(c.files.Dir())
	if err != nil || !info.IsDir() {
		msg := "recordings directory missing"
		if err != nil {
			msg = err.Error()
		}
		return component.Health{Name: componentName, Status: component.StatusUnhealthy, Message: msg}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

// Describe returns summary info for the startup log.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Recordings",
		Type:    "storage",
		Details: c.files.Dir(),
	}
}
