package manager

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ugc allows the formatting the admin rich-text editor produces and strips
// scripts, event handlers and unsafe URLs.
var ugc = bluemonday.UGCPolicy()

// SanitizeHTML cleans one rich-text value.
func SanitizeHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return s
	}
	return ugc.Sanitize(s)
}

// RichText returns a sanitizer for the given string fields of T.
func RichText[T any](fields ...func(*T) *string) func(*T) {
	return func(rec *T) {
		for _, f := range fields {
			p := f(rec)
			*p = SanitizeHTML(*p)
		}
	}
}

// SanitizeBlock cleans every string inside a free-form page block.
func SanitizeBlock(block map[string]interface{}) {
	for k, v := range block {
		block[k] = sanitizeValue(v)
	}
}

func sanitizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return SanitizeHTML(t)
	case map[string]interface{}:
		SanitizeBlock(t)
		return t
	case []interface{}:
		for i := range t {
			t[i] = sanitizeValue(t[i])
		}
		return t
	}
	return v
}
