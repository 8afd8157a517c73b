package urlpattern

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dnalborczyk/url-pattern-list/tree"
)

// resolveComponents resolves rawURL against base (when rawURL is relative)
// and reads out the eight URL components Test/Exec compare against. It is
// independent of the tree package's own resolveURL: in a real deployment
// the evaluator is a separate, authoritative URL-pattern engine the core
// merely consults, and the two are expected to agree, not to share an
// implementation.
func resolveComponents(rawURL, base string) (string, map[tree.Component]string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", nil, fmt.Errorf("urlpattern: parse url %q: %w", rawURL, err)
	}
	if !u.IsAbs() {
		if base == "" {
			return "", nil, fmt.Errorf("urlpattern: relative url %q requires a base url", rawURL)
		}
		baseURL, err := url.Parse(base)
		if err != nil {
			return "", nil, fmt.Errorf("urlpattern: parse base url %q: %w", base, err)
		}
		u = baseURL.ResolveReference(u)
	}

	comps := map[tree.Component]string{
		tree.Protocol: strings.TrimSuffix(u.Scheme, ":"),
		tree.Hostname: u.Hostname(),
		tree.Port:     u.Port(),
		tree.Pathname: u.EscapedPath(),
		tree.Search:   strings.TrimPrefix(u.RawQuery, "?"),
		tree.Hash:     strings.TrimPrefix(u.Fragment, "#"),
	}
	if u.User != nil {
		comps[tree.Username] = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			comps[tree.Password] = pw
		}
	}
	return u.String(), comps, nil
}

// Test implements tree.Evaluator.
func (Engine) Test(handle tree.CompiledPattern, rawURL, base string) (bool, error) {
	pat, ok := handle.(*Pattern)
	if !ok {
		return false, fmt.Errorf("urlpattern: Test: not a *Pattern: %T", handle)
	}
	_, comps, err := resolveComponents(rawURL, base)
	if err != nil {
		return false, nil // invalid URL at match time: no match, no error
	}
	for component, re := range pat.regex {
		if !re.MatchString(comps[component]) {
			return false, nil
		}
	}
	return true, nil
}

// Exec implements tree.Evaluator.
func (Engine) Exec(handle tree.CompiledPattern, rawURL, base string) (*tree.ExecResult, error) {
	pat, ok := handle.(*Pattern)
	if !ok {
		return nil, fmt.Errorf("urlpattern: Exec: not a *Pattern: %T", handle)
	}
	_, comps, err := resolveComponents(rawURL, base)
	if err != nil {
		return nil, nil
	}

	result := &tree.ExecResult{Components: map[tree.Component]tree.ComponentMatch{}}
	for component, re := range pat.regex {
		text := comps[component]
		m := re.FindStringSubmatch(text)
		if m == nil {
			return nil, nil // disagreement: tree thought this would match
		}
		cm := tree.ComponentMatch{Input: text, Groups: map[string]string{}}
		for i, name := range re.SubexpNames() {
			if i == 0 || name == "" {
				continue
			}
			cm.Groups[name] = m[i]
		}
		result.Components[component] = cm
	}
	return result, nil
}
