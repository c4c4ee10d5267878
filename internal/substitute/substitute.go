// Package substitute resolves configuration and secret references embedded in
// control argument mappings. References use the forms
// `${configuration/<key>}` and `${secrets/<group>/<key>}`.
package substitute

import (
	"fmt"
	"regexp"
	"strings"
)

var refPattern = regexp.MustCompile(`\$\{(configuration|secrets)/([^}]+)\}`)

// Apply returns a new mapping with every reference in args resolved against
// the given configuration and secrets stores. Nested maps and slices are
// walked. A string value that is exactly one reference is replaced by the
// referenced value with its native type; references embedded in larger
// strings interpolate as text. Unresolvable references are an error.
func Apply(args map[string]any, cfg map[string]any,
	secrets map[string]map[string]any) (map[string]any, error) {

	out := make(map[string]any, len(args))
	for key, value := range args {
		resolved, err := applyValue(value, cfg, secrets)
		if err != nil {
			return nil, fmt.Errorf("substitute argument %q: %w", key, err)
		}
		out[key] = resolved
	}
	return out, nil
}

func applyValue(value any, cfg map[string]any,
	secrets map[string]map[string]any) (any, error) {

	switch v := value.(type) {
	case string:
		return applyString(v, cfg, secrets)
	case map[string]any:
		return Apply(v, cfg, secrets)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			resolved, err := applyValue(elem, cfg, secrets)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return value, nil
	}
}

func applyString(s string, cfg map[string]any,
	secrets map[string]map[string]any) (any, error) {

	matches := refPattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	// A value that is exactly one reference keeps the referenced type.
	if len(matches) == 1 && matches[0][0] == 0 && matches[0][1] == len(s) {
		sub := refPattern.FindStringSubmatch(s)
		return lookup(sub[1], sub[2], cfg, secrets)
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		store, path := s[m[2]:m[3]], s[m[4]:m[5]]
		value, err := lookup(store, path, cfg, secrets)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "%v", value)
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String(), nil
}

func lookup(store, path string, cfg map[string]any,
	secrets map[string]map[string]any) (any, error) {

	switch store {
	case "configuration":
		value, ok := cfg[path]
		if !ok {
			return nil, fmt.Errorf("configuration has no entry %q", path)
		}
		return value, nil
	case "secrets":
		group, key, ok := strings.Cut(path, "/")
		if !ok {
			return nil, fmt.Errorf("secret reference %q must name a group and a key", path)
		}
		value, found := secrets[group][key]
		if !found {
			return nil, fmt.Errorf("secrets group %q has no entry %q", group, key)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("unknown reference store %q", store)
	}
}
