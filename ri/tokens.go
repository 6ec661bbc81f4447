// SPDX-License-Identifier: GPL-3.0-or-later

package ri

// Token is one fragment of a Resource Indicator's textual reconstruction,
// tagged with the role it plays ("scheme", "host", "path-segment",
// "query-key", "delimiter", and so on). [Tokens] emits a sequence of
// these that concatenate, in order, back into the serialized indicator;
// unlike [Serialize] they let a caller highlight or re-escape individual
// components (e.g. for error messages or syntax coloring) without
// re-parsing.
type Token struct {
	Kind string
	Text string
}

// Tokens renders d as an ordered sequence of [Token] values: the
// scheme/authority context, then the path, then the query, then the
// fragment. Concatenating every Token.Text reproduces Join(c.Construct(d)).
func (c Codec) Tokens(d Structured) []Token {
	var out []Token
	out = append(out, c.contextTokens(d)...)
	out = append(out, pathTokens(d.Path, c)...)
	out = append(out, queryTokens(d.Query, c)...)
	out = append(out, fragmentTokens(d.Fragment, c)...)
	return out
}

// Tokens is Tokens using the default (lenient) [Codec].
func Tokens(d Structured) []Token {
	return defaultCodec.Tokens(d)
}

var kindDelimiters = map[Kind]string{
	Authority: "://",
	Absolute:  ":",
	Relative:  "//",
	None:      "",
	Amorphous: "",
}

func (c Codec) contextTokens(d Structured) []Token {
	var out []Token
	if d.Scheme != nil && *d.Scheme != "" {
		out = append(out, Token{"scheme", *d.Scheme})
	}
	out = append(out, Token{"type", kindDelimiters[d.Kind]})

	if d.User != nil {
		out = append(out, Token{"user", escape(*d.User, c.userTable())})
	}
	if d.Password != nil {
		out = append(out, Token{"delimiter", ":"}, Token{"password", escape(*d.Password, c.passwordTable())})
	}
	if d.User != nil || d.Password != nil {
		out = append(out, Token{"delimiter", "@"})
	}

	switch {
	case d.Address != nil:
		out = append(out, Token{"host", *d.Address})
	case d.Host != nil:
		out = append(out, Token{"host", escape(*d.Host, c.primaryTable())})
	}
	if d.Port != nil {
		out = append(out, Token{"delimiter", ":"}, Token{"port", escape(*d.Port, c.primaryTable())})
	}
	return out
}

// pathTokens renders a path's segments, with the final segment tagged as
// "resource" rather than "path-segment" to distinguish the leaf name from
// the directory-like segments leading to it.
func pathTokens(path []string, c Codec) []Token {
	if path == nil {
		return nil
	}
	if len(path) == 0 {
		return []Token{{"delimiter-path-only", "/"}, {"resource", ""}}
	}

	segments, rsrc := path[:len(path)-1], path[len(path)-1]

	var out []Token
	if len(segments) > 0 {
		out = append(out, Token{"delimiter-path-initial", "/"})
		out = append(out, Token{"path-segment", escape(segments[0], c.primaryTable())})
		for _, seg := range segments[1:] {
			out = append(out, Token{"delimiter-path-segments", "/"}, Token{"path-segment", escape(seg, c.primaryTable())})
		}
	}
	out = append(out, Token{"delimiter-path-final", "/"}, Token{"resource", escape(rsrc, c.primaryTable())})
	return out
}

func queryTokens(query []QueryPair, c Codec) []Token {
	if query == nil {
		return nil
	}
	out := []Token{{"delimiter", "?"}}

	emit := func(p QueryPair) []Token {
		if p.Key == "" && p.Value == nil {
			return nil
		}
		t := []Token{{"query-key", escape(p.Key, c.queryKeyTable())}}
		if p.Value != nil {
			t = append(t, Token{"delimiter", "="}, Token{"query-value", escape(*p.Value, c.queryValueTable())})
		}
		return t
	}

	if len(query) > 0 {
		out = append(out, emit(query[0])...)
		for _, p := range query[1:] {
			out = append(out, Token{"delimiter", "&"})
			out = append(out, emit(p)...)
		}
	}
	return out
}

func fragmentTokens(fragment *string, c Codec) []Token {
	if fragment == nil {
		return nil
	}
	return []Token{{"delimiter", "#"}, {"fragment", escape(*fragment, c.fragmentTable())}}
}

// RequestTarget projects d onto the request-target a client would submit
// in an HTTP/1.x request line: the path (defaulting to "/" when absent or
// empty) followed by "?" and the query when a query is present.
func (c Codec) RequestTarget(d Structured) string {
	path := "/"
	if d.Path != nil {
		if j := joinPathAlways(c, d.Path); j != "" {
			path = "/" + j
		}
	}
	if d.Query != nil {
		return path + "?" + c.ConstructQuery(d.Query)
	}
	return path
}

// RequestTarget is RequestTarget using the default (lenient) [Codec].
func RequestTarget(d Structured) string {
	return defaultCodec.RequestTarget(d)
}
