// SPDX-License-Identifier: GPL-3.0-or-later

package ri

import "strings"

// NetlocParts is the four-field split of a netloc: user, password, host or
// address, and port. At most one of Host and Address is non-nil:
// Address holds a bracketed IPv6 literal (or other bracketed extension),
// Host holds everything else. Both are nil when the netloc is empty or
// ends right after its userinfo.
type NetlocParts struct {
	User     *string
	Password *string
	Host     *string
	Address  *string
	Port     *string
}

// SplitNetloc splits a raw (percent-escaped) netloc into its
// [NetlocParts], decoding percent escapes in each field via unescape.
func SplitNetloc(netloc string) NetlocParts {
	var user, password *string

	pos := strings.IndexByte(netloc, '@')
	if pos == -1 {
		pos = 0
	} else {
		userinfo := netloc[:pos]
		if i := strings.IndexByte(userinfo, ':'); i != -1 {
			u := unescape(userinfo[:i])
			p := unescape(userinfo[i+1:])
			user, password = &u, &p
		} else {
			u := unescape(userinfo)
			user = &u
		}
		pos++
	}

	if pos >= len(netloc) {
		return NetlocParts{User: user, Password: password}
	}

	var host, address, port *string
	if netloc[pos] == '[' {
		nextPos := strings.IndexByte(netloc[pos:], ']')
		if nextPos == -1 {
			nextPos = len(netloc) - 1 - pos
		}
		nextPos += pos
		addr := netloc[pos : nextPos+1]
		address = &addr
		pos = nextPos + 1
		if colon := strings.IndexByte(netloc[pos:], ':'); colon != -1 {
			p := unescape(netloc[pos+colon+1:])
			port = &p
		}
	} else {
		if colon := strings.IndexByte(netloc[pos:], ':'); colon != -1 {
			h := unescape(netloc[pos : pos+colon])
			p := unescape(netloc[pos+colon+1:])
			host, port = &h, &p
		} else {
			h := unescape(netloc[pos:])
			host = &h
		}
	}

	return NetlocParts{User: user, Password: password, Host: host, Address: address, Port: port}
}

// JoinNetloc constructs an escaped netloc fragment from [NetlocParts]. It
// returns nil when both Host and Address are absent, matching
// SplitNetloc's convention that a netloc is absent rather than empty.
func (c Codec) JoinNetloc(p NetlocParts) *string {
	if p.Host == nil && p.Address == nil {
		return nil
	}

	var b strings.Builder
	if p.User != nil {
		b.WriteString(escape(*p.User, c.userTable()))
		if p.Password != nil {
			b.WriteByte(':')
			b.WriteString(escape(*p.Password, c.passwordTable()))
		}
		b.WriteByte('@')
	}

	switch {
	case p.Address != nil:
		b.WriteString(*p.Address)
	case p.Host != nil:
		b.WriteString(escape(*p.Host, c.primaryTable()))
	}
	if p.Port != nil {
		b.WriteByte(':')
		b.WriteString(escape(*p.Port, c.primaryTable()))
	}

	s := b.String()
	return &s
}

// JoinNetloc is JoinNetloc using the default (lenient) [Codec].
func JoinNetloc(p NetlocParts) *string {
	return defaultCodec.JoinNetloc(p)
}
