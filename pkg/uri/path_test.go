package uri

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathEscapeUnescapeRoundTrip(t *testing.T) {
	inputs := []string{"/a b/c", "/100%done", "/naive;path", "/plain"}
	for _, in := range inputs {
		escaped := PathEscape(in)
		back, err := PathUnescape(escaped)
		require.NoError(t, err)
		require.Equal(t, in, back, in)
	}
}

func TestPathUnescapeMalformed(t *testing.T) {
	_, err := PathUnescape("/foo%zzbar")
	require.Error(t, err)
}

func TestPathParentTable(t *testing.T) {
	cases := []struct {
		in     string
		parent string
		ok     bool
	}{
		{"/a/b/c", "/a/b/", true},
		{"/a/b/c/", "/a/b/", true},
		{"/alpha/beta", "/alpha/", true},
		{"/foo", "/", true},
		{"norman", "", false},
		{"/", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		parent, ok := PathParent(c.in)
		require.Equal(t, c.ok, ok, c.in)
		require.Equal(t, c.parent, parent, c.in)
	}
}

func TestPathChildOfTable(t *testing.T) {
	require.True(t, PathChildOf("/a", "/a/b"))
	require.False(t, PathChildOf("////", "/a"))
	require.True(t, PathChildOf("/a/", "/a/b"))
	require.False(t, PathChildOf("/aa/b", "/a/b/c"))
}

func TestPathHasTrailingSlash(t *testing.T) {
	require.True(t, PathHasTrailingSlash("/a/"))
	require.False(t, PathHasTrailingSlash("/a"))
	require.False(t, PathHasTrailingSlash(""))
}

func TestPathCompareEmptyIsRoot(t *testing.T) {
	require.Equal(t, 0, PathCompare("", "/"))
}
