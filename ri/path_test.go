// SPDX-License-Identifier: GPL-3.0-or-later

package ri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPathNil(t *testing.T) {
	assert.Nil(t, SplitPath(nil))
}

func TestSplitPathSegments(t *testing.T) {
	p := "a/b/c"
	got := SplitPath(&p)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestSplitPathEmptyYieldsOneEmptySegment(t *testing.T) {
	p := ""
	got := SplitPath(&p)
	assert.Equal(t, []string{""}, got)
}

func TestSplitPathDecodesEscapes(t *testing.T) {
	p := "a%2Fb/c"
	got := SplitPath(&p)
	assert.Equal(t, []string{"a/b", "c"}, got)
}

func TestJoinPathNilForEmpty(t *testing.T) {
	assert.Nil(t, JoinPath(nil))
	assert.Nil(t, JoinPath([]string{}))
}

func TestJoinPathEscapesSlashes(t *testing.T) {
	got := JoinPath([]string{"a/b", "c"})
	require.NotNil(t, got)
	assert.Equal(t, "a%2Fb/c", *got)
}

func TestJoinPathRoundtrip(t *testing.T) {
	segments := []string{"a", "b", "c"}
	got := JoinPath(segments)
	require.NotNil(t, got)
	assert.Equal(t, segments, SplitPath(got))
}
