package browser

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/playwright-community/playwright-go"

	"pageforge/domain/entities"
	"pageforge/domain/interfaces"
)

// LaunchOptions controls the shared browser process.
type LaunchOptions struct {
	Headless bool
	// SlowMo delays every operation by the given milliseconds. Zero means
	// full speed.
	SlowMo float64
}

// Browser owns the playwright driver and the launched browser process. One
// Browser serves many isolated sessions.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// Launch starts the playwright driver and a Chromium instance.
func Launch(opts LaunchOptions) (*Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(opts.SlowMo),
		Args: []string{
			"--disable-dev-shm-usage",
			"--disable-notifications",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return &Browser{pw: pw, browser: browser}, nil
}

// Close shuts down the browser process and the driver.
func (b *Browser) Close() error {
	var closeErr error
	if b.browser != nil {
		if err := b.browser.Close(); err != nil && !isClosedErr(err) {
			closeErr = fmt.Errorf("failed to close browser: %w", err)
		}
		b.browser = nil
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
		b.pw = nil
	}
	return closeErr
}

// SessionOptions controls one isolated browser context.
type SessionOptions struct {
	// StorageStatePath, when set, restores cookies and local storage from
	// the file if it exists and is where SaveState persists them.
	StorageStatePath string
	// VideoDir enables context video recording when the site's diagnostics
	// ask for it.
	VideoDir string
}

// Session is one isolated browser context with a single page, wrapped as a
// Navigator carrying the site's timeouts. Sessions share nothing; each test
// gets its own.
type Session struct {
	context   playwright.BrowserContext
	page      playwright.Page
	nav       interfaces.Navigator
	statePath string
}

// NewSession creates an isolated context and page for one test.
func (b *Browser) NewSession(cfg *entities.SiteConfig, opts SessionOptions) (*Session, error) {
	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1280,
			Height: 720,
		},
	}

	if opts.StorageStatePath != "" {
		if data, err := os.ReadFile(opts.StorageStatePath); err == nil {
			var storageState playwright.StorageState
			if err := json.Unmarshal(data, &storageState); err == nil {
				contextOptions.StorageState = storageState.ToOptionalStorageState()
			}
		}
	}

	if opts.VideoDir != "" && cfg.VideoMode() != entities.CaptureOff {
		contextOptions.RecordVideo = &playwright.RecordVideo{Dir: opts.VideoDir}
	}

	context, err := b.browser.NewContext(contextOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &Session{
		context:   context,
		page:      page,
		nav:       NewNavigator(page, cfg),
		statePath: opts.StorageStatePath,
	}, nil
}

// Navigator returns the session's page handle.
func (s *Session) Navigator() interfaces.Navigator { return s.nav }

// SaveState persists cookies and local storage to the configured path so the
// next session can skip authentication. A session without a state path is a
// no-op, as is a context that already went away.
func (s *Session) SaveState() error {
	if s.context == nil || s.statePath == "" {
		return nil
	}
	if _, err := s.context.StorageState(s.statePath); err != nil {
		if isClosedErr(err) {
			return nil
		}
		return fmt.Errorf("failed to save session state: %w", err)
	}
	return nil
}

// Close saves state when configured and tears the context down.
func (s *Session) Close() error {
	var closeErr error
	if err := s.SaveState(); err != nil {
		closeErr = err
	}
	if s.context != nil {
		if err := s.context.Close(); err != nil && !isClosedErr(err) {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; failed to close context: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("failed to close context: %w", err)
			}
		}
		s.context = nil
	}
	return closeErr
}

func isClosedErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "closed") || strings.Contains(msg, "target closed")
}
