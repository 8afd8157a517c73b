package tree

import (
	"fmt"
	"net/url"
	"strings"
)

// component is one (tag, text) pair of a decomposed URL, omitted from the
// slice entirely when its text is empty.
type component struct {
	tag  Component
	text string
}

// resolveURL resolves a possibly-relative URL against an optional base,
// then reads out each of the eight components in fixed order, keeping
// only the non-empty ones.
func resolveURL(rawURL, base string) (*url.URL, []component, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, nil, fmt.Errorf("tree: parse url %q: %w", rawURL, err)
	}
	if !u.IsAbs() {
		if base == "" {
			return nil, nil, fmt.Errorf("tree: relative url %q requires a base url", rawURL)
		}
		baseURL, err := url.Parse(base)
		if err != nil {
			return nil, nil, fmt.Errorf("tree: parse base url %q: %w", base, err)
		}
		u = baseURL.ResolveReference(u)
	}

	var comps []component
	add := func(tag Component, text string) {
		if text != "" {
			comps = append(comps, component{tag: tag, text: text})
		}
	}

	add(Protocol, strings.TrimSuffix(u.Scheme, ":"))
	if u.User != nil {
		add(Username, u.User.Username())
		if pw, ok := u.User.Password(); ok {
			add(Password, pw)
		}
	}
	host := u.Hostname()
	add(Hostname, host)
	add(Port, u.Port())
	add(Pathname, u.EscapedPath())
	add(Search, strings.TrimPrefix(u.RawQuery, "?"))
	add(Hash, strings.TrimPrefix(u.Fragment, "#"))

	return u, comps, nil
}

// componentIndex builds the tag->index lookup the matcher's component
// advance rule relies on: each tag appears at most once in comps, so this
// is a simple fixed-size array, not a map.
func componentIndex(comps []component) [8]int {
	var idx [8]int
	for i := range idx {
		idx[i] = -1
	}
	for i, c := range comps {
		idx[c.tag] = i
	}
	return idx
}
