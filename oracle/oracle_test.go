package oracle_test

import (
	"testing"

	"github.com/dnalborczyk/url-pattern-list/oracle"
	"github.com/dnalborczyk/url-pattern-list/urlpattern"
	"github.com/stretchr/testify/require"
)

func TestOracleMatchesInInsertionOrder(t *testing.T) {
	var engine urlpattern.Engine
	o := oracle.New(engine)

	first, err := urlpattern.CompilePattern("/a/:x")
	require.NoError(t, err)
	second, err := urlpattern.CompilePattern("/a/:y")
	require.NoError(t, err)

	o.Add(first, "first")
	o.Add(second, "second")

	_, payload, ok, err := o.Match("https://example.com/a/1", "")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "first", payload)
}

func TestOracleReportsNoMatch(t *testing.T) {
	var engine urlpattern.Engine
	o := oracle.New(engine)

	pat, err := urlpattern.CompilePattern("/only")
	require.NoError(t, err)
	o.Add(pat, "only")

	_, _, ok, err := o.Match("https://example.com/elsewhere", "")
	require.NoError(t, err)
	require.False(t, ok)
}
