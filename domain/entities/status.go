package entities

// EnabledStatus is the result of the validation-free enabled check used by
// site discovery. Reason is only set when the site is disabled and names the
// layer that disabled it.
type EnabledStatus struct {
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason,omitempty"`
}
