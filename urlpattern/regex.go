package urlpattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dnalborczyk/url-pattern-list/tree"
)

// compileComponentRegex translates one component's parts into a single
// anchored regex with a named group per capture, the representation Test
// and Exec actually run against. This is deliberately independent of the
// tree package's own walk: the evaluator is the external, authoritative
// engine the tree only ever consults to confirm a candidate, so it carries
// its own notion of how a component's parts compose into a match.
func compileComponentRegex(component tree.Component, parts []tree.Part) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteByte('^')
	counter := 0
	nextName := func(name string) string {
		if name != "" {
			return name
		}
		n := fmt.Sprintf("g%d", counter)
		counter++
		return n
	}
	wrap := func(group string, m tree.Modifier) string {
		switch m {
		case tree.ModOptional:
			return "(?:" + group + ")?"
		case tree.ModZeroOrMore:
			return "(?:" + group + ")*"
		case tree.ModOneOrMore:
			return "(?:" + group + ")+"
		default:
			return group
		}
	}

	for _, part := range parts {
		switch part.Kind {
		case tree.Fixed:
			b.WriteString(regexp.QuoteMeta(part.Value))
		case tree.SegmentWildcard:
			content := "[^/]+"
			if component != tree.Pathname {
				content = ".+"
			}
			// The modifier applies to the capture together with its framing,
			// so "/:year?" matches both "" and "/2020".
			group := fmt.Sprintf("(?P<%s>%s)", nextName(part.Name), content)
			b.WriteString(wrap(regexp.QuoteMeta(part.Prefix)+group+regexp.QuoteMeta(part.Suffix), part.Modifier))
		case tree.FullWildcard:
			group := fmt.Sprintf("(?P<%s>.*)", nextName(part.Name))
			b.WriteString(group)
		case tree.Regex:
			group := fmt.Sprintf("(?P<%s>(?:%s))", nextName(part.Name), part.Value)
			b.WriteString(wrap(group, part.Modifier))
		}
	}
	b.WriteByte('$')

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("urlpattern: compile %s regex %q: %w", component, b.String(), err)
	}
	return re, nil
}
