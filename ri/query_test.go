// SPDX-License-Identifier: GPL-3.0-or-later

package ri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryKeyValue(t *testing.T) {
	got := ParseQuery("a=1&b=2")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Key)
	require.NotNil(t, got[0].Value)
	assert.Equal(t, "1", *got[0].Value)
	assert.Equal(t, "b", got[1].Key)
	require.NotNil(t, got[1].Value)
	assert.Equal(t, "2", *got[1].Value)
}

func TestParseQueryBareKey(t *testing.T) {
	got := ParseQuery("flag")
	require.Len(t, got, 1)
	assert.Equal(t, "flag", got[0].Key)
	assert.Nil(t, got[0].Value)
}

func TestParseQueryEmptyValue(t *testing.T) {
	got := ParseQuery("k=")
	require.Len(t, got, 1)
	assert.Equal(t, "k", got[0].Key)
	require.NotNil(t, got[0].Value)
	assert.Equal(t, "", *got[0].Value)
}

func TestParseQueryFirstEqualOnly(t *testing.T) {
	got := ParseQuery("k=a=b")
	require.Len(t, got, 1)
	assert.Equal(t, "k", got[0].Key)
	require.NotNil(t, got[0].Value)
	assert.Equal(t, "a=b", *got[0].Value)
}

func TestConstructQueryRoundtrip(t *testing.T) {
	cases := []string{"a=1&b=2", "flag", "k=", "x=1&y&z=3"}
	for _, s := range cases {
		got := ConstructQuery(ParseQuery(s))
		assert.Equal(t, s, got, "roundtrip for %q", s)
	}
}

func TestConstructQueryEscapesSeparators(t *testing.T) {
	// '=' only separates key from value in the key table; a value may
	// contain a literal '=' without being re-escaped.
	pairs := []QueryPair{{Key: "a&b", Value: strptr("c=d")}}
	got := ConstructQuery(pairs)
	assert.Equal(t, "a%26b=c=d", got)
}
