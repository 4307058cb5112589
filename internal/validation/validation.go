// Package validation holds the pure field validators applied before any write.
package validation

import "strings"

var imageExtensions = []string{".png", ".jpg", ".jpeg"}

// Content checks that a post's content is non-empty after trimming and
// returns the accepted value unchanged. Whitespace inside the content is
// preserved; only fully blank submissions are rejected.
func Content(value string) (string, bool) {
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// ImageFilename checks that a profile image filename carries an accepted
// extension. The suffix match is case-sensitive.
func ImageFilename(name string) bool {
	for _, ext := range imageExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
