package urlpattern

import (
	"fmt"
	"strings"

	"github.com/dnalborczyk/url-pattern-list/tree"
)

// Engine implements both tree.Parser and tree.Evaluator over *Pattern
// handles. It is stateless, so its zero value is ready to use; each List
// holds one.
type Engine struct{}

// Parse implements tree.Parser. Parts are computed once at Compile time,
// so this is just a type-asserting accessor — deterministic by
// construction.
func (Engine) Parse(p tree.CompiledPattern) ([]tree.Part, error) {
	pat, ok := p.(*Pattern)
	if !ok {
		return nil, fmt.Errorf("urlpattern: Parse: not a *Pattern: %T", p)
	}
	return pat.parts, nil
}

// parseComponentSource parses one component's pattern source into parts.
// Pathname is split into "/segment" chunks first, so each leading /segment
// forms a distinct Fixed part and tree building stays append-only; every
// other component is parsed as a single chunk.
func parseComponentSource(component tree.Component, src string) ([]tree.Part, error) {
	if component != tree.Pathname {
		return parseChunk(component, src, false)
	}
	if src == "" {
		return nil, nil
	}
	var parts []tree.Part
	for _, seg := range splitPathSegments(src) {
		p, err := parseChunk(component, seg, true)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p...)
	}
	return parts, nil
}

// splitPathSegments splits a pathname pattern into chunks that each begin
// with the '/' that introduces them, e.g. "/api/users/:id" -> ["/api",
// "/users", "/:id"]. Assumes src begins with '/'.
func splitPathSegments(src string) []string {
	var segs []string
	i := 0
	for i < len(src) {
		j := i + 1
		for j < len(src) && src[j] != '/' {
			j++
		}
		segs = append(segs, src[i:j])
		i = j
	}
	return segs
}

// parseChunk parses one literal-or-wildcard chunk of a single component's
// source. When isPathSegment, chunk begins with the '/' delimiter that
// frames it; that slash is folded into whatever literal prefix precedes a
// capture, or emitted as its own Fixed part ahead of a FullWildcard or
// Regex part (neither carries prefix/suffix of its own — only
// SegmentWildcard does).
func parseChunk(component tree.Component, chunk string, isPathSegment bool) ([]tree.Part, error) {
	slash := ""
	body := chunk
	if isPathSegment {
		if chunk == "" || chunk[0] != '/' {
			return nil, fmt.Errorf("urlpattern: malformed path segment %q", chunk)
		}
		slash = "/"
		body = chunk[1:]
	}
	if body == "" {
		return []tree.Part{{Kind: tree.Fixed, Component: component, Value: slash}}, nil
	}

	tokenAt := strings.IndexAny(body, ":(*")
	if tokenAt < 0 {
		return []tree.Part{{Kind: tree.Fixed, Component: component, Value: slash + body}}, nil
	}

	prefixLiteral := slash + body[:tokenAt]
	rest := body[tokenAt:]

	switch rest[0] {
	case '*':
		modifier, consumed := parseModifier(rest[1:])
		suffix := rest[1+consumed:]
		var parts []tree.Part
		if prefixLiteral != "" {
			parts = append(parts, tree.Part{Kind: tree.Fixed, Component: component, Value: prefixLiteral})
		}
		parts = append(parts, tree.Part{Kind: tree.FullWildcard, Component: component, Modifier: modifier})
		if suffix != "" {
			parts = append(parts, tree.Part{Kind: tree.Fixed, Component: component, Value: suffix})
		}
		return parts, nil

	case ':':
		name, nameLen := scanIdentifier(rest[1:])
		if name == "" {
			return nil, fmt.Errorf("urlpattern: %q: wildcard missing a name", chunk)
		}
		after := rest[1+nameLen:]
		if strings.HasPrefix(after, "(") {
			regexSrc, groupLen, err := scanParenGroup(after)
			if err != nil {
				return nil, fmt.Errorf("urlpattern: %q: %w", chunk, err)
			}
			modifier, modLen := parseModifier(after[groupLen:])
			suffix := after[groupLen+modLen:]
			return regexParts(component, name, regexSrc, modifier, prefixLiteral, suffix), nil
		}
		modifier, modLen := parseModifier(after)
		suffix := after[modLen:]
		return []tree.Part{{
			Kind: tree.SegmentWildcard, Component: component, Name: name,
			Prefix: prefixLiteral, Suffix: suffix, Modifier: modifier,
		}}, nil

	case '(':
		regexSrc, groupLen, err := scanParenGroup(rest)
		if err != nil {
			return nil, fmt.Errorf("urlpattern: %q: %w", chunk, err)
		}
		modifier, modLen := parseModifier(rest[groupLen:])
		suffix := rest[groupLen+modLen:]
		return regexParts(component, "", regexSrc, modifier, prefixLiteral, suffix), nil
	}
	return nil, fmt.Errorf("urlpattern: %q: unreachable token %q", chunk, rest[:1])
}

// regexParts frames a Regex part with its literal prefix/suffix as
// separate Fixed parts, since Regex itself carries no framing of its own.
func regexParts(component tree.Component, name, regexSrc string, modifier tree.Modifier, prefix, suffix string) []tree.Part {
	var parts []tree.Part
	if prefix != "" {
		parts = append(parts, tree.Part{Kind: tree.Fixed, Component: component, Value: prefix})
	}
	parts = append(parts, tree.Part{Kind: tree.Regex, Component: component, Name: name, Value: regexSrc, Modifier: modifier})
	if suffix != "" {
		parts = append(parts, tree.Part{Kind: tree.Fixed, Component: component, Value: suffix})
	}
	return parts
}

func parseModifier(s string) (tree.Modifier, int) {
	if len(s) == 0 {
		return tree.ModNone, 0
	}
	switch s[0] {
	case '?':
		return tree.ModOptional, 1
	case '*':
		return tree.ModZeroOrMore, 1
	case '+':
		return tree.ModOneOrMore, 1
	}
	return tree.ModNone, 0
}

func scanIdentifier(s string) (string, int) {
	i := 0
	for i < len(s) {
		c := s[i]
		isIdent := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9' && i > 0)
		if !isIdent {
			break
		}
		i++
	}
	return s[:i], i
}

// scanParenGroup reads a "(...)" group starting at s[0], tolerating nested
// parens so a regex alternation like "(foo|(bar))" round-trips, but
// performs no escaping.
func scanParenGroup(s string) (string, int, error) {
	if len(s) == 0 || s[0] != '(' {
		return "", 0, fmt.Errorf("expected '(' at %q", s)
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[1:i], i + 1, nil
			}
		}
	}
	return "", 0, fmt.Errorf("unterminated group in %q", s)
}
