package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.UGCPolicy()

// Sanitize strips dangerous HTML from user supplied text (post titles,
// bodies, comments) before it reaches the store.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
