package urlpatternlist_test

import (
	"testing"

	urlpatternlist "github.com/dnalborczyk/url-pattern-list"
	"github.com/dnalborczyk/url-pattern-list/tree"
	"github.com/dnalborczyk/url-pattern-list/urlpattern"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestAddPathAndMatch(t *testing.T) {
	l := urlpatternlist.New()
	require.NoError(t, l.AddPath("/users/:id", "user-handler"))

	result, ok, err := l.Match("https://example.com/users/42", "")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "user-handler", result.Value)
	require.Equal(t, "42", result.Match.Components[tree.Pathname].Groups["id"])
}

func TestMatchReturnsFalseWhenNothingMatches(t *testing.T) {
	l := urlpatternlist.New()
	require.NoError(t, l.AddPath("/only", "payload"))

	_, ok, err := l.Match("https://example.com/elsewhere", "")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFirstRegisteredPatternWinsAcrossEquivalentStructure(t *testing.T) {
	l := urlpatternlist.New()
	require.NoError(t, l.AddPath("/a/:x", "first"))
	require.NoError(t, l.AddPath("/a/:y", "second"))

	result, ok, err := l.Match("https://example.com/a/1", "")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "first", result.Value)
}

func TestAddInitConstrainsOtherComponents(t *testing.T) {
	l := urlpatternlist.New()
	require.NoError(t, l.AddInit(urlpattern.Init{Hostname: "api.example.com", Pathname: "/ping"}, "health"))

	result, ok, err := l.Match("https://api.example.com/ping", "")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "health", result.Value)

	_, ok, err = l.Match("https://other.example.com/ping", "")
	require.NoError(t, err)
	require.False(t, ok, "a differing hostname must not match a hostname-constrained pattern")
}

func TestWithLoggerAcceptsATestLogger(t *testing.T) {
	l := urlpatternlist.New(urlpatternlist.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, l.AddPath("/x", "y"))
	require.NoError(t, l.AddPath("/x", "z")) // shares a full structural prefix: logs at Info

	_, ok, err := l.Match("https://example.com/x", "")
	require.NoError(t, err)
	require.True(t, ok)
}
