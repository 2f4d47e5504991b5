// Package fixture wires one test's browser session together: it resolves the
// site configuration, launches the browser, hands the test a Navigator, and
// on teardown captures diagnostics and releases everything. A test runner
// integration calls Setup before the test body and Teardown with the
// failure flag after it.
package fixture

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"pageforge/domain/entities"
	"pageforge/domain/interfaces"
	"pageforge/infrastructure/browser"
	"pageforge/infrastructure/config"
	"pageforge/infrastructure/diagnostics"
)

// ErrSiteDisabled is returned by Setup when the target site is switched off
// in configuration; runners should report the test as skipped.
var ErrSiteDisabled = errors.New("site is disabled")

// Options selects the site and the session behavior.
type Options struct {
	ConfigRoot  string
	Site        string
	Environment string

	Headless bool
	// SlowMo delays every browser operation by the given milliseconds.
	SlowMo float64

	// ArtifactsDir is where diagnostics land. Defaults to "artifacts".
	ArtifactsDir string
	// StorageStatePath, when set, persists cookies and local storage
	// across sessions for this site.
	StorageStatePath string
}

// Fixture owns the per-test resources.
type Fixture struct {
	opts      Options
	logger    *logrus.Logger
	resolver  *config.Resolver
	collector *diagnostics.Collector

	id      string
	browser *browser.Browser
	session *browser.Session
	cfg     *entities.SiteConfig
}

// New prepares a fixture; nothing is launched until Setup.
func New(opts Options, logger *logrus.Logger) *Fixture {
	if opts.ArtifactsDir == "" {
		opts.ArtifactsDir = "artifacts"
	}
	return &Fixture{
		opts:      opts,
		logger:    logger,
		resolver:  config.NewResolver(opts.ConfigRoot),
		collector: diagnostics.NewCollector(opts.ArtifactsDir, logger),
		id:        uuid.NewString(),
	}
}

// Config returns the resolved site configuration after Setup.
func (f *Fixture) Config() *entities.SiteConfig { return f.cfg }

// ID identifies this fixture's session in logs and artifact names.
func (f *Fixture) ID() string { return f.id }

// Setup resolves configuration and opens an isolated browser session. A
// disabled site fails fast with ErrSiteDisabled before anything launches.
func (f *Fixture) Setup(ctx context.Context) (interfaces.Navigator, *entities.SiteConfig, error) {
	// .env is optional; interpolation falls back to the process
	// environment either way.
	if err := godotenv.Load(); err == nil {
		f.logger.Debug("loaded environment from .env")
	}

	if status := f.resolver.IsEnabled(f.opts.Site, f.opts.Environment); !status.Enabled {
		return nil, nil, fmt.Errorf("%w: %s", ErrSiteDisabled, status.Reason)
	}

	cfg, err := f.resolver.Resolve(f.opts.Site, f.opts.Environment)
	if err != nil {
		return nil, nil, err
	}
	f.cfg = cfg

	b, err := browser.Launch(browser.LaunchOptions{
		Headless: f.opts.Headless,
		SlowMo:   f.opts.SlowMo,
	})
	if err != nil {
		return nil, nil, err
	}
	f.browser = b

	session, err := b.NewSession(cfg, browser.SessionOptions{
		StorageStatePath: f.opts.StorageStatePath,
		VideoDir:         f.opts.ArtifactsDir,
	})
	if err != nil {
		b.Close()
		f.browser = nil
		return nil, nil, err
	}
	f.session = session

	f.logger.WithFields(logrus.Fields{
		"session": f.id,
		"site":    f.opts.Site,
		"env":     f.opts.Environment,
		"baseUrl": cfg.BaseURL,
	}).Info("session ready")

	return session.Navigator(), cfg, nil
}

// Teardown captures diagnostics according to the site's configuration and
// the test outcome, then closes the session and the browser.
func (f *Fixture) Teardown(ctx context.Context, failed bool) error {
	if f.session != nil && f.cfg != nil {
		f.collector.Collect(ctx, f.session.Navigator(), f.cfg, f.opts.Site, failed)
	}

	var closeErr error
	if f.session != nil {
		closeErr = f.session.Close()
		f.session = nil
	}
	if f.browser != nil {
		if err := f.browser.Close(); err != nil && closeErr == nil {
			closeErr = err
		}
		f.browser = nil
	}
	return closeErr
}
