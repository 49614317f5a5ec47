// Package permissions matches requested permission strings against
// granted permission patterns.
//
// Patterns and requested attributes are colon-separated segment lists
// (e.g. "entity:books:read"). A pattern segment "*" matches exactly one
// arbitrary segment; a final pattern segment "**" matches the remainder
// of the attribute, zero or more segments. Matching is segment-by-segment
// on purpose — compiling patterns to a generic regex risks semantic drift
// such as "." matching a literal ":".
package permissions

import (
	"fmt"
	"strings"
)

// Separator splits permission strings into segments.
const Separator = ":"

const (
	segmentWildcard  = "*"
	trailingWildcard = "**"
)

// Match reports whether pattern matches attribute.
//
//	Match("entity:*:read", "entity:books:read")  == true
//	Match("entity:*:read", "entity:books:admin:read") == false
//	Match("entity:**", "entity") == true
//	Match("entity:**", "entity:books:admin:read") == true
func Match(pattern, attribute string) bool {
	patSegs := strings.Split(pattern, Separator)
	attrSegs := strings.Split(attribute, Separator)

	for i, seg := range patSegs {
		if seg == trailingWildcard {
			// "**" is only meaningful as the final segment; anywhere
			// else the pattern is malformed and matches nothing.
			if i != len(patSegs)-1 {
				return false
			}
			// Zero or more remaining segments: every segment before the
			// "**" must already have matched, which they have if we got
			// here.
			return len(attrSegs) >= i
		}
		if i >= len(attrSegs) {
			return false
		}
		if seg != segmentWildcard && seg != attrSegs[i] {
			return false
		}
	}

	// No trailing wildcard: lengths must agree exactly.
	return len(attrSegs) == len(patSegs)
}

// MatchAny reports whether any pattern in the set matches attribute.
// Grants are a logical OR — a narrower pattern never revokes a broader one.
func MatchAny(patterns []string, attribute string) bool {
	for _, pattern := range patterns {
		if Match(pattern, attribute) {
			return true
		}
	}
	return false
}

// ValidatePattern checks that a granted pattern is well-formed: non-empty,
// no empty segments, and "**" only as the final segment. Intended for
// configuration-load time so malformed grants are caught before they
// silently match nothing.
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("empty permission pattern")
	}
	segs := strings.Split(pattern, Separator)
	for i, seg := range segs {
		if seg == "" {
			return fmt.Errorf("permission pattern %q has an empty segment", pattern)
		}
		if seg == trailingWildcard && i != len(segs)-1 {
			return fmt.Errorf("permission pattern %q uses %q before the final segment", pattern, trailingWildcard)
		}
	}
	return nil
}
