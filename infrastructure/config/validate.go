package config

import (
	"encoding/json"
	"fmt"
	"net/url"

	"pageforge/domain/entities"
)

// Validate checks a merged, interpolated configuration candidate against the
// site configuration shape and returns it as a typed, immutable record. All
// structural rules are checked in one pass; on failure the returned
// ValidationError carries every violation with its field path and kind.
func Validate(candidate map[string]any) (*entities.SiteConfig, error) {
	var violations []entities.Violation

	violations = append(violations, checkEnabled(candidate)...)
	violations = append(violations, checkBaseURL(candidate)...)
	violations = append(violations, checkCredentials(candidate)...)
	violations = append(violations, checkTimeouts(candidate)...)
	violations = append(violations, checkDiagnostics(candidate)...)

	if len(violations) > 0 {
		return nil, &entities.ValidationError{Violations: violations}
	}

	// The candidate is structurally sound; a JSON round-trip produces the
	// typed record.
	data, err := json.Marshal(candidate)
	if err != nil {
		return nil, fmt.Errorf("encode validated config: %w", err)
	}
	var cfg entities.SiteConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode validated config: %w", err)
	}
	return &cfg, nil
}

func checkEnabled(candidate map[string]any) []entities.Violation {
	value, ok := candidate["enabled"]
	if !ok {
		return nil
	}
	if _, isBool := value.(bool); !isBool {
		return []entities.Violation{{
			Path:    []string{"enabled"},
			Kind:    entities.ViolationWrongType,
			Message: fmt.Sprintf("expected bool, got %T", value),
		}}
	}
	return nil
}

func checkBaseURL(candidate map[string]any) []entities.Violation {
	value, ok := candidate["baseUrl"]
	if !ok {
		return []entities.Violation{{
			Path:    []string{"baseUrl"},
			Kind:    entities.ViolationMissingRequired,
			Message: "baseUrl is required",
		}}
	}
	s, isString := value.(string)
	if !isString {
		return []entities.Violation{{
			Path:    []string{"baseUrl"},
			Kind:    entities.ViolationWrongType,
			Message: fmt.Sprintf("expected string, got %T", value),
		}}
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return []entities.Violation{{
			Path:    []string{"baseUrl"},
			Kind:    entities.ViolationMalformedURL,
			Message: fmt.Sprintf("%q is not a valid URL", s),
		}}
	}
	return nil
}

func checkCredentials(candidate map[string]any) []entities.Violation {
	value, ok := candidate["credentials"]
	if !ok {
		return nil
	}
	obj, isObj := value.(map[string]any)
	if !isObj {
		return []entities.Violation{{
			Path:    []string{"credentials"},
			Kind:    entities.ViolationWrongType,
			Message: fmt.Sprintf("expected object, got %T", value),
		}}
	}

	var violations []entities.Violation
	for _, field := range []string{"username", "password"} {
		fieldValue, present := obj[field]
		if !present {
			violations = append(violations, entities.Violation{
				Path:    []string{"credentials", field},
				Kind:    entities.ViolationMissingRequired,
				Message: field + " is required when credentials are set",
			})
			continue
		}
		if _, isString := fieldValue.(string); !isString {
			violations = append(violations, entities.Violation{
				Path:    []string{"credentials", field},
				Kind:    entities.ViolationWrongType,
				Message: fmt.Sprintf("expected string, got %T", fieldValue),
			})
		}
	}
	return violations
}

func checkTimeouts(candidate map[string]any) []entities.Violation {
	value, ok := candidate["timeouts"]
	if !ok {
		return []entities.Violation{{
			Path:    []string{"timeouts"},
			Kind:    entities.ViolationMissingRequired,
			Message: "timeouts is required",
		}}
	}
	obj, isObj := value.(map[string]any)
	if !isObj {
		return []entities.Violation{{
			Path:    []string{"timeouts"},
			Kind:    entities.ViolationWrongType,
			Message: fmt.Sprintf("expected object, got %T", value),
		}}
	}

	var violations []entities.Violation
	for _, field := range []string{"navigation", "action", "assertion"} {
		fieldValue, present := obj[field]
		if !present {
			violations = append(violations, entities.Violation{
				Path:    []string{"timeouts", field},
				Kind:    entities.ViolationMissingRequired,
				Message: field + " timeout is required",
			})
			continue
		}
		num, isNumber := fieldValue.(float64)
		if !isNumber {
			violations = append(violations, entities.Violation{
				Path:    []string{"timeouts", field},
				Kind:    entities.ViolationWrongType,
				Message: fmt.Sprintf("expected number, got %T", fieldValue),
			})
			continue
		}
		if num <= 0 {
			violations = append(violations, entities.Violation{
				Path:    []string{"timeouts", field},
				Kind:    entities.ViolationBelowMinimum,
				Message: fmt.Sprintf("timeout must be positive, got %v", num),
			})
		}
	}
	return violations
}

func checkDiagnostics(candidate map[string]any) []entities.Violation {
	value, ok := candidate["diagnostics"]
	if !ok {
		return nil
	}
	obj, isObj := value.(map[string]any)
	if !isObj {
		return []entities.Violation{{
			Path:    []string{"diagnostics"},
			Kind:    entities.ViolationWrongType,
			Message: fmt.Sprintf("expected object, got %T", value),
		}}
	}

	var violations []entities.Violation
	for _, field := range []string{"screenshot", "trace", "video"} {
		fieldValue, present := obj[field]
		if !present {
			continue
		}
		s, isString := fieldValue.(string)
		if !isString {
			violations = append(violations, entities.Violation{
				Path:    []string{"diagnostics", field},
				Kind:    entities.ViolationWrongType,
				Message: fmt.Sprintf("expected string, got %T", fieldValue),
			})
			continue
		}
		if !entities.CaptureMode(s).Valid() {
			violations = append(violations, entities.Violation{
				Path:    []string{"diagnostics", field},
				Kind:    entities.ViolationOutOfEnum,
				Message: fmt.Sprintf("%q is not a capture mode (off, on, retain-on-failure)", s),
			})
		}
	}
	return violations
}
