// SPDX-License-Identifier: GPL-3.0-or-later

package ri

// Structured is the fully-decoded, componentized form of a Resource
// Indicator: percent escapes are gone, the netloc has been split into
// user/password/host-or-address/port, and the path and query have been
// split into their segments/pairs. It mirrors [Parts] one field at a
// time, so the same absent/present-but-empty distinction applies:
//
//   - Path == nil and Query == nil mean the component was never present
//     in the indicator at all.
//   - Path == []string{} and Query == []QueryPair{} mean the component
//     was present but empty, e.g. "http://host/" or "http://host?".
type Structured struct {
	Kind     Kind
	Scheme   *string
	User     *string
	Password *string
	Host     *string
	Address  *string
	Port     *string
	Path     []string
	Query    []QueryPair
	Fragment *string
}

// Structure decodes a [Parts] value field by field: the netloc is split
// via [SplitNetloc], the path via [SplitPath], the query via [ParseQuery],
// and the fragment is percent-unescaped directly.
func (c Codec) Structure(p Parts) Structured {
	d := Structured{Kind: p.Kind, Scheme: p.Scheme}

	if p.Netloc != nil {
		n := SplitNetloc(*p.Netloc)
		d.User, d.Password = n.User, n.Password
		d.Host, d.Address, d.Port = n.Host, n.Address, n.Port
	}

	if p.Path != nil {
		if *p.Path != "" {
			d.Path = SplitPath(p.Path)
		} else {
			d.Path = []string{}
		}
	}

	if p.Query != nil {
		if *p.Query != "" {
			d.Query = ParseQuery(*p.Query)
		} else {
			d.Query = []QueryPair{}
		}
	}

	if p.Fragment != nil {
		f := unescape(*p.Fragment)
		d.Fragment = &f
	}

	return d
}

// Structure is Structure using the default (lenient) [Codec].
func Structure(p Parts) Structured {
	return defaultCodec.Structure(p)
}

// Construct re-encodes a [Structured] value back into [Parts], the
// inverse of [Codec.Structure]. Unlike the standalone [Codec.JoinPath]
// and [Codec.ConstructQuery] helpers, a present-but-empty Path or Query
// is re-encoded to an empty (not absent) string, so that round-tripping
// through Structure and Construct is lossless.
func (c Codec) Construct(d Structured) Parts {
	p := Parts{Kind: d.Kind, Scheme: d.Scheme}

	p.Netloc = c.JoinNetloc(NetlocParts{
		User:     d.User,
		Password: d.Password,
		Host:     d.Host,
		Address:  d.Address,
		Port:     d.Port,
	})

	if d.Path != nil {
		s := joinPathAlways(c, d.Path)
		p.Path = &s
	}

	if d.Query != nil {
		s := c.ConstructQuery(d.Query)
		p.Query = &s
	}

	if d.Fragment != nil {
		s := escape(*d.Fragment, c.fragmentTable())
		p.Fragment = &s
	}

	return p
}

// Construct is Construct using the default (lenient) [Codec].
func Construct(d Structured) Parts {
	return defaultCodec.Construct(d)
}
