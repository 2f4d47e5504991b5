// Package diagnostics decides when capture modes fire and records the
// artifacts a failing (or always-capturing) test leaves behind.
package diagnostics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pageforge/domain/entities"
	"pageforge/domain/interfaces"
)

// ShouldCapture applies one capture mode to the test outcome.
func ShouldCapture(mode entities.CaptureMode, failed bool) bool {
	switch mode {
	case entities.CaptureOn:
		return true
	case entities.CaptureRetainOnFailure:
		return failed
	default:
		return false
	}
}

// Collector writes artifacts into a flat directory with collision-free
// names.
type Collector struct {
	dir    string
	logger *logrus.Logger
}

// NewCollector creates a collector writing under dir.
func NewCollector(dir string, logger *logrus.Logger) *Collector {
	return &Collector{dir: dir, logger: logger}
}

// CaptureScreenshot records a full-page screenshot and returns its path.
func (c *Collector) CaptureScreenshot(ctx context.Context, nav interfaces.Navigator, site string) (string, error) {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifacts dir: %w", err)
	}
	path := filepath.Join(c.dir, fmt.Sprintf("%s-%s.png", site, uuid.NewString()))
	if err := nav.Screenshot(ctx, path); err != nil {
		return "", fmt.Errorf("capture screenshot: %w", err)
	}
	return path, nil
}

// Collect runs the configured captures for one finished test. Capture
// failures are logged, not propagated: diagnostics must never mask the
// test's own outcome.
func (c *Collector) Collect(ctx context.Context, nav interfaces.Navigator, cfg *entities.SiteConfig, site string, failed bool) {
	if ShouldCapture(cfg.ScreenshotMode(), failed) {
		path, err := c.CaptureScreenshot(ctx, nav, site)
		if err != nil {
			c.logger.WithError(err).Warn("screenshot capture failed")
		} else {
			c.logger.WithField("path", path).Info("screenshot captured")
		}
	}
}
