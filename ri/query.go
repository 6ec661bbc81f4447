// SPDX-License-Identifier: GPL-3.0-or-later

package ri

import "strings"

// QueryPair is one "key" or "key=value" entry of a query string. Value is
// nil for a bare key with no "=", and non-nil (possibly pointing at an
// empty string) for "key=".
type QueryPair struct {
	Key   string
	Value *string
}

// ParseQuery splits a raw (percent-escaped) query string on "&", then each
// resulting field on the first "=", decoding percent escapes in both the
// key and the value.
func ParseQuery(raw string) []QueryPair {
	fields := strings.Split(raw, "&")
	out := make([]QueryPair, len(fields))
	for i, x := range fields {
		if eq := strings.IndexByte(x, '='); eq != -1 {
			k := unescape(x[:eq])
			v := unescape(x[eq+1:])
			out[i] = QueryPair{Key: k, Value: &v}
		} else {
			out[i] = QueryPair{Key: unescape(x)}
		}
	}
	return out
}

// ConstructQuery escapes and joins pairs back into a raw query string.
func (c Codec) ConstructQuery(pairs []QueryPair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		k := escape(p.Key, c.queryKeyTable())
		if p.Value != nil {
			parts[i] = k + "=" + escape(*p.Value, c.queryValueTable())
		} else {
			parts[i] = k
		}
	}
	return strings.Join(parts, "&")
}

// ConstructQuery is ConstructQuery using the default (lenient) [Codec].
func ConstructQuery(pairs []QueryPair) string {
	return defaultCodec.ConstructQuery(pairs)
}
