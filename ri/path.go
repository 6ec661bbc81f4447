// SPDX-License-Identifier: GPL-3.0-or-later

package ri

import "strings"

// SplitPath returns the unescaped segments of a raw (percent-escaped)
// path, split on "/". A nil path returns nil; any other path, including
// an empty one, returns at least one (possibly empty) segment, matching
// how Go's strings.Split treats "" as a single empty field.
func SplitPath(p *string) []string {
	if p == nil {
		return nil
	}
	parts := strings.Split(*p, "/")
	out := make([]string, len(parts))
	for i, x := range parts {
		out[i] = unescape(x)
	}
	return out
}

// JoinPath escapes and joins path segments on "/". It returns nil for a
// nil or empty slice, matching [SplitPath]'s convention that a path is
// either entirely absent or has at least one segment.
func (c Codec) JoinPath(segments []string) *string {
	if len(segments) == 0 {
		return nil
	}
	s := joinPathAlways(c, segments)
	return &s
}

// JoinPath is JoinPath using the default (lenient) [Codec].
func JoinPath(segments []string) *string {
	return defaultCodec.JoinPath(segments)
}

// joinPathAlways escapes and joins segments unconditionally, including an
// empty slice (which joins to ""). [Structured] distinguishes an absent
// path (nil) from a present-but-empty one ([]string{}, rendered as a bare
// trailing "/"), so [Codec.Construct] needs this unconditional form rather
// than [Codec.JoinPath]'s "nil means absent" shortcut.
func joinPathAlways(c Codec, segments []string) string {
	escaped := make([]string, len(segments))
	for i, x := range segments {
		escaped[i] = escape(x, c.primaryTable())
	}
	return strings.Join(escaped, "/")
}
