package entities

import (
	"fmt"
	"strings"
)

// ViolationKind is a machine-checkable category for one schema violation.
type ViolationKind string

const (
	ViolationMissingRequired ViolationKind = "missing-required"
	ViolationWrongType       ViolationKind = "wrong-type"
	ViolationOutOfEnum       ViolationKind = "out-of-enum"
	ViolationBelowMinimum    ViolationKind = "below-minimum"
	ViolationMalformedURL    ViolationKind = "malformed-url"
)

// Violation describes a single schema failure at a specific field path.
type Violation struct {
	Path    []string
	Kind    ViolationKind
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (%s)", strings.Join(v.Path, "."), v.Message, v.Kind)
}

// ValidationError aggregates every violation found in one validation pass.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("invalid site configuration: %s", strings.Join(parts, "; "))
}

// MissingVariableError is raised when interpolation hits a ${NAME} token with
// no default and no value in the environment.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing required environment variable %s", e.Name)
}

// SiteNotFoundError is raised when the required site layer file is absent.
type SiteNotFoundError struct {
	Site string
	Path string
}

func (e *SiteNotFoundError) Error() string {
	return fmt.Sprintf("site config not found for %q at %s", e.Site, e.Path)
}

// ParseError wraps a JSON decoding failure in a configuration layer file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed config layer %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingRouteError is raised by a page root's navigation when its type was
// never registered with a route.
type MissingRouteError struct {
	Class string
}

func (e *MissingRouteError) Error() string {
	return fmt.Sprintf("page type %s has no registered route", e.Class)
}
