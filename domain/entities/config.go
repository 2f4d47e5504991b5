package entities

// CaptureMode controls when a diagnostics artifact is recorded.
type CaptureMode string

const (
	CaptureOff             CaptureMode = "off"
	CaptureOn              CaptureMode = "on"
	CaptureRetainOnFailure CaptureMode = "retain-on-failure"
)

// Valid reports whether the mode is one of the known capture modes.
func (m CaptureMode) Valid() bool {
	switch m {
	case CaptureOff, CaptureOn, CaptureRetainOnFailure:
		return true
	}
	return false
}

// Credentials holds the login pair for sites that require authentication.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Timeouts carries the per-operation budgets in milliseconds. The core only
// threads these values through to the automation engine; it never enforces
// them itself.
type Timeouts struct {
	Navigation float64 `json:"navigation"`
	Action     float64 `json:"action"`
	Assertion  float64 `json:"assertion"`
}

// Diagnostics selects the capture mode per artifact kind.
type Diagnostics struct {
	Screenshot CaptureMode `json:"screenshot,omitempty"`
	Trace      CaptureMode `json:"trace,omitempty"`
	Video      CaptureMode `json:"video,omitempty"`
}

// SiteConfig is the fully merged, interpolated and validated configuration
// for one target site. It is immutable after resolution and safe to share
// across every page object constructed from it within a test.
type SiteConfig struct {
	Enabled     *bool        `json:"enabled,omitempty"`
	BaseURL     string       `json:"baseUrl"`
	Credentials *Credentials `json:"credentials,omitempty"`
	Timeouts    Timeouts     `json:"timeouts"`
	Diagnostics *Diagnostics `json:"diagnostics,omitempty"`
}

// IsEnabled treats an absent enabled field as enabled.
func (c *SiteConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// ScreenshotMode returns the configured screenshot capture mode, defaulting
// to off when no diagnostics block is present.
func (c *SiteConfig) ScreenshotMode() CaptureMode {
	if c.Diagnostics == nil || c.Diagnostics.Screenshot == "" {
		return CaptureOff
	}
	return c.Diagnostics.Screenshot
}

// VideoMode returns the configured video capture mode, defaulting to off.
func (c *SiteConfig) VideoMode() CaptureMode {
	if c.Diagnostics == nil || c.Diagnostics.Video == "" {
		return CaptureOff
	}
	return c.Diagnostics.Video
}
