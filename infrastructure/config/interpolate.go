package config

import (
	"os"
	"regexp"
	"strings"

	"pageforge/domain/entities"
)

// Matches ${NAME} and ${NAME:-default}. The default may be empty.
var tokenPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// Interpolate walks an arbitrary nested value and replaces every ${NAME} or
// ${NAME:-default} token inside string scalars with the environment
// variable's value, or the default when the variable is unset. Records and
// sequences keep their shape; non-string scalars pass through unchanged.
//
// The walk fails fast: the first ${NAME} token without a default and without
// a set variable aborts the whole call with a MissingVariableError.
func Interpolate(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			resolved, err := Interpolate(elem)
			if err != nil {
				return nil, err
			}
			out[key] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			resolved, err := Interpolate(elem)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case string:
		return interpolateString(v)
	default:
		return value, nil
	}
}

// interpolateString resolves every token in s left to right.
func interpolateString(s string) (string, error) {
	matches := tokenPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])

		name := s[m[2]:m[3]]
		if value, ok := os.LookupEnv(name); ok {
			b.WriteString(value)
		} else if m[4] >= 0 {
			b.WriteString(s[m[4]:m[5]])
		} else {
			return "", &entities.MissingVariableError{Name: name}
		}

		last = m[1]
	}
	b.WriteString(s[last:])

	return b.String(), nil
}
