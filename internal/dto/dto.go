// Package dto defines the insert and partial-update payloads for catalog
// entities. Optional text fields are normalized before storage: values are
// trimmed and empty strings become NULL.
package dto

import "strings"

// clean trims an optional text value and maps empty to nil
func clean(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// cleanList trims every element and drops empties
func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
