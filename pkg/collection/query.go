package collection

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseQuery decodes a URL query string into a flat map. A leading "?" is
// ignored and the last value wins for repeated keys. On malformed pairs the
// well-formed ones are still returned along with the first error.
func ParseQuery(query string) (map[string]string, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	result := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			result[k] = vs[len(vs)-1]
		}
	}
	if err != nil {
		return result, fmt.Errorf("parse query: %w", err)
	}
	return result, nil
}
