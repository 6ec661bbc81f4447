// SPDX-License-Identifier: GPL-3.0-or-later

package ri

import (
	"strings"
	"unicode"
)

// Kind classifies a parsed Resource Indicator by the markers that precede
// its netloc/path.
type Kind string

const (
	// Authority indicators were introduced by "scheme://".
	Authority Kind = "authority"
	// Absolute indicators were introduced by "scheme:" without "//".
	Absolute Kind = "absolute"
	// Relative indicators begin with a bare "//"; the scheme is implied
	// by the surrounding context.
	Relative Kind = "relative"
	// None indicators have no scheme marker of any kind.
	None Kind = "none"
	// Amorphous indicators failed the scheme-character rule, or (for an
	// Absolute indicator) turned out to have a netloc that is all
	// decimal digits, the classic "host:port" ambiguity.
	Amorphous Kind = "amorphous"
)

const schemeExtraChars = "-.+0123456789"

// Parts is the five-field split form of a Resource Indicator: percent
// escapes are preserved exactly as written. A nil field means the field
// was not present; a non-nil pointer to an empty string means the field
// was present but empty (e.g. "scheme:///?").
type Parts struct {
	Kind     Kind
	Scheme   *string
	Netloc   *string
	Path     *string
	Query    *string
	Fragment *string
}

// Split breaks iri into its top-level parts based on the markers
// (":" | "://"), "/", "?", "#", without decoding percent escapes or
// otherwise validating the result.
func Split(iri string) Parts {
	s := strings.TrimLeftFunc(iri, unicode.IsSpace)

	var (
		kind   Kind
		scheme *string
		pos    int
	)
	end := len(s)

	switch {
	case strings.HasPrefix(s, "//"):
		pos = 2
		kind = Relative
	default:
		schemePos := strings.IndexByte(s, ':')
		if schemePos == -1 {
			kind = None
		} else if strings.HasPrefix(s[schemePos:], "://") {
			kind = Authority
			pos = schemePos + 3
			sch := s[:schemePos]
			scheme = &sch
		} else {
			kind = Absolute
			pos = schemePos + 1
			sch := s[:schemePos]
			scheme = &sch
		}

		if scheme != nil && !validScheme(*scheme) {
			pos = 0
			scheme = nil
			kind = Amorphous
		}
	}

	endOfNetloc := end

	pathPos := indexByteFrom(s, '/', pos)
	if pathPos >= 0 {
		endOfNetloc = pathPos
	} else {
		pathPos = -1
	}

	queryPos := indexByteFrom(s, '?', pos)
	if queryPos == -1 {
		// absent
	} else if pathPos == -1 || queryPos < pathPos {
		pathPos = -1
		endOfNetloc = queryPos
	}

	fragmentPos := indexByteFrom(s, '#', pos)
	if fragmentPos != -1 {
		if queryPos != -1 && fragmentPos < queryPos {
			queryPos = -1
		}
		if pathPos != -1 && fragmentPos < pathPos {
			pathPos = -1
			endOfNetloc = fragmentPos
		}
		if queryPos == -1 && pathPos == -1 {
			endOfNetloc = fragmentPos
		}
	}

	var netloc *string
	if endOfNetloc != pos {
		nl := s[pos:endOfNetloc]
		if kind == Absolute && isAllDigits(nl) {
			joined := *scheme + ":" + nl
			netloc = &joined
			scheme = nil
			kind = Amorphous
		} else {
			netloc = &nl
		}
	}

	var path, query, fragment *string
	if pathPos != -1 {
		stop := end
		if queryPos != -1 {
			stop = queryPos
		} else if fragmentPos != -1 {
			stop = fragmentPos
		}
		p := s[pathPos+1 : stop]
		path = &p
	}
	if queryPos != -1 {
		stop := end
		if fragmentPos != -1 {
			stop = fragmentPos
		}
		q := s[queryPos+1 : stop]
		query = &q
	}
	if fragmentPos != -1 {
		f := s[fragmentPos+1:]
		fragment = &f
	}

	return Parts{
		Kind:     kind,
		Scheme:   scheme,
		Netloc:   netloc,
		Path:     path,
		Query:    query,
		Fragment: fragment,
	}
}

// Join reassembles a [Parts] value into its string form. Join(Split(s)) is
// the identity for any well-formed five-tuple.
func Join(p Parts) string {
	var b strings.Builder

	switch p.Kind {
	case Authority:
		if p.Scheme != nil {
			b.WriteString(*p.Scheme)
		}
		b.WriteString("://")
	case Absolute:
		if p.Scheme != nil {
			b.WriteString(*p.Scheme)
		}
		b.WriteByte(':')
	case Relative:
		b.WriteString("//")
	}

	if p.Netloc != nil {
		b.WriteString(*p.Netloc)
	}
	if p.Path != nil {
		b.WriteByte('/')
		b.WriteString(*p.Path)
	}
	if p.Query != nil {
		b.WriteByte('?')
		b.WriteString(*p.Query)
	}
	if p.Fragment != nil {
		b.WriteByte('#')
		b.WriteString(*p.Fragment)
	}
	return b.String()
}

// validScheme reports whether scheme's characters are all valid scheme
// characters. An empty scheme is valid: the original's per-character
// validation loop simply never runs over zero characters, so a bare ":"
// or "://" prefix with nothing before it keeps its absolute/authority
// kind and an empty Scheme rather than collapsing to Amorphous.
func validScheme(scheme string) bool {
	for i := 0; i < len(scheme); i++ {
		c := scheme[i]
		if strings.IndexByte(schemeExtraChars, c) == -1 &&
			!(c >= 'A' && c <= 'Z') && !(c >= 'a' && c <= 'z') {
			return false
		}
	}
	return true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// indexByteFrom returns the index of the first occurrence of c in s at or
// after from, or -1 if there is none.
func indexByteFrom(s string, c byte, from int) int {
	if from > len(s) {
		return -1
	}
	idx := strings.IndexByte(s[from:], c)
	if idx == -1 {
		return -1
	}
	return idx + from
}

// Parse splits and structures iri in one step using the default (lenient)
// [Codec]. It is a synonym for Structure(Split(iri)).
func Parse(iri string) Structured {
	return defaultCodec.Structure(Split(iri))
}

// Serialize joins and constructs d in one step using the default (lenient)
// [Codec]. It is a synonym for Join(Construct(d)).
func Serialize(d Structured) string {
	return Join(defaultCodec.Construct(d))
}
