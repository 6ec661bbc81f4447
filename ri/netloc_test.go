// SPDX-License-Identifier: GPL-3.0-or-later

package ri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitNetlocHostOnly(t *testing.T) {
	p := SplitNetloc("example.com")
	require.NotNil(t, p.Host)
	assert.Equal(t, "example.com", *p.Host)
	assert.Nil(t, p.Port)
	assert.Nil(t, p.User)
	assert.Nil(t, p.Password)
	assert.Nil(t, p.Address)
}

func TestSplitNetlocUserPassHostPort(t *testing.T) {
	p := SplitNetloc("alice:wonderland@example.com:443")
	require.NotNil(t, p.User)
	require.NotNil(t, p.Password)
	require.NotNil(t, p.Host)
	require.NotNil(t, p.Port)
	assert.Equal(t, "alice", *p.User)
	assert.Equal(t, "wonderland", *p.Password)
	assert.Equal(t, "example.com", *p.Host)
	assert.Equal(t, "443", *p.Port)
}

func TestSplitNetlocUserOnly(t *testing.T) {
	p := SplitNetloc("alice@example.com")
	require.NotNil(t, p.User)
	assert.Equal(t, "alice", *p.User)
	assert.Nil(t, p.Password)
}

func TestSplitNetlocBracketedAddress(t *testing.T) {
	p := SplitNetloc("[2001:db8::1]:8080")
	require.NotNil(t, p.Address)
	assert.Equal(t, "[2001:db8::1]", *p.Address)
	assert.Nil(t, p.Host)
	require.NotNil(t, p.Port)
	assert.Equal(t, "8080", *p.Port)
}

func TestSplitNetlocUnterminatedBracket(t *testing.T) {
	p := SplitNetloc("[2001:db8::1")
	require.NotNil(t, p.Address)
	assert.Equal(t, "[2001:db8::1", *p.Address)
	assert.Nil(t, p.Port)
}

func TestSplitNetlocEmpty(t *testing.T) {
	p := SplitNetloc("")
	assert.Nil(t, p.Host)
	assert.Nil(t, p.Address)
	assert.Nil(t, p.User)
}

func TestJoinNetlocAbsentWhenNoHost(t *testing.T) {
	got := JoinNetloc(NetlocParts{})
	assert.Nil(t, got)
}

func TestJoinNetlocRoundtrip(t *testing.T) {
	cases := []string{
		"example.com",
		"alice:wonderland@example.com:443",
		"alice@example.com",
		"[2001:db8::1]:8080",
	}
	for _, s := range cases {
		got := JoinNetloc(SplitNetloc(s))
		require.NotNil(t, got, "roundtrip for %q", s)
		assert.Equal(t, s, *got)
	}
}

func TestSplitNetlocPasswordEscaped(t *testing.T) {
	p := SplitNetloc("alice:pa%3Ass@example.com")
	require.NotNil(t, p.Password)
	assert.Equal(t, "pa:ss", *p.Password)
}
