// Package scope validates and composes the permission-namespace segments carried by facilities
// (prefix) and sections (suffix).
package scope

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Separator joins a facility prefix and a section suffix into a full scope.
const Separator = ":"

// MaxSegmentLength bounds a single prefix or suffix.
const MaxSegmentLength = 64

// Reserved segments cannot be used as a facility prefix or a section suffix.
var Reserved = []string{"all", "admin", "superuser"}

var segmentPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Validate checks a single scope segment.
func Validate(segment string) error {
	if strings.TrimSpace(segment) == "" {
		return errors.New("scope segment must not be empty")
	}
	if len(segment) > MaxSegmentLength {
		return fmt.Errorf("scope segment %q exceeds %d characters", segment, MaxSegmentLength)
	}
	if !segmentPattern.MatchString(segment) {
		return fmt.Errorf("scope segment %q may only contain lowercase letters, digits, '-' and '_'", segment)
	}
	for _, reserved := range Reserved {
		if segment == reserved {
			return fmt.Errorf("scope segment %q is reserved", segment)
		}
	}
	return nil
}

// Join composes the full scope for a section inside a facility.
func Join(prefix, suffix string) string {
	if suffix == "" {
		return prefix
	}
	if prefix == "" {
		return suffix
	}
	return prefix + Separator + suffix
}

// Split breaks a full scope back into its prefix and suffix.
func Split(full string) (prefix, suffix string) {
	prefix, suffix, _ = strings.Cut(full, Separator)
	return prefix, suffix
}
