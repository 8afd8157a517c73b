package tree

import (
	"fmt"
	"strings"
)

// backtrackBudget bounds the total number of recursive consumption attempts
// a single Match performs. FullWildcard nodes with children can backtrack
// quadratically on pathological patterns like "*/*/literal"; this is the
// implementation's chosen backstop: once exhausted, Match behaves as if no
// further candidate exists rather than looping.
const backtrackBudget = 200_000

// Outcome is the confirmed result of a successful Match: the evaluator's
// rich per-component capture result plus the payload registered alongside
// the winning pattern.
type Outcome struct {
	Handle  CompiledPattern
	Payload any
	Result  *ExecResult
}

// DisagreementFunc is notified whenever the tree structurally accepts a
// candidate pattern but the evaluator's Test rejects it. It is a callback
// rather than a log dependency so this package stays free of a logging
// library; List wires it to its own logger.
type DisagreementFunc func(handle CompiledPattern, url string)

// candidate is the best terminating pattern found so far during a walk.
type candidate struct {
	sequence uint64
	handle   CompiledPattern
	payload  any
}

type matchContext struct {
	components []component
	compIndex  [8]int
	evaluator  Evaluator
	url        string
	base       string
	onDisagree DisagreementFunc
	budget     int
	best       *candidate
}

// Match decomposes url (relative to base when necessary), walks the tree
// under backtracking, early-termination and subtree-pruning rules, and
// confirms the winning candidate with evaluator before returning it.
func (t *Tree) Match(evaluator Evaluator, rawURL, base string, onDisagree DisagreementFunc) (*Outcome, error) {
	resolved, comps, err := resolveURL(rawURL, base)
	if err != nil {
		// Invalid URL at match time: return none, do not raise.
		return nil, nil
	}

	mc := &matchContext{
		components: comps,
		compIndex:  componentIndex(comps),
		evaluator:  evaluator,
		url:        resolved.String(),
		base:       base,
		onDisagree: onDisagree,
		budget:     backtrackBudget,
	}

	mc.walk(t.root, 0, 0, true)

	if mc.best == nil {
		return nil, nil
	}

	result, err := evaluator.Exec(mc.best.handle, mc.url, base)
	if err != nil {
		return nil, fmt.Errorf("tree: exec winning candidate: %w", err)
	}
	if result == nil {
		// The tree's own pattern-confirmation already ran Test for this
		// handle and it agreed; an Exec disagreement here would itself be
		// an internal inconsistency, but we still fail soft.
		if mc.onDisagree != nil {
			mc.onDisagree(mc.best.handle, mc.url)
		}
		return nil, nil
	}
	return &Outcome{Handle: mc.best.handle, Payload: mc.best.payload, Result: result}, nil
}

// walk is the recursive step of the match. valid reports whether i indexes
// a real entry of components (false once the walk has moved past every
// component present in the URL).
func (mc *matchContext) walk(n *node, i, p int, valid bool) {
	if mc.budget <= 0 {
		return
	}
	mc.budget--

	if n.kind == nodeRoot {
		mc.afterConsumption(n, i, p, valid)
		return
	}

	switch n.kind {
	case nodeFixed:
		mc.consumeFixed(n, i, p, valid)
	case nodeSegmentWildcard:
		mc.consumeSegmentWildcard(n, i, p, valid)
	case nodeFullWildcard:
		mc.consumeFullWildcard(n, i, p, valid)
	case nodeRegex:
		mc.consumeRegex(n, i, p, valid)
	}
}

// afterConsumption implements the shared "patterns-at-node and children"
// discipline: children are tried first (since a deeper subtree may hold an
// earlier-sequence pattern than this node's own), then this node's own
// terminating patterns are considered.
func (mc *matchContext) afterConsumption(n *node, i, p int, valid bool) {
	if mc.budget <= 0 {
		return
	}

	// Children first.
	for _, c := range n.children {
		if mc.best != nil && c.minSequence > mc.best.sequence {
			continue // subtree cannot improve on best: pruned.
		}
		ci, cp, ok := mc.advanceTo(i, p, valid, n.kind == nodeRoot, c.component)
		if !ok {
			continue
		}
		mc.walk(c, ci, cp, true)
	}

	// Patterns at this node: only when the current component is fully
	// consumed and either we're at the last component or children found
	// nothing better.
	if len(n.patterns) == 0 {
		return
	}
	if valid && p < len(mc.components[i].text) {
		return // current component not yet fully consumed
	}

	for _, rp := range n.patterns {
		if mc.best != nil && rp.sequence >= mc.best.sequence {
			continue
		}
		ok, err := mc.evaluator.Test(rp.handle, mc.url, mc.base)
		if err != nil || !ok {
			if err == nil && mc.onDisagree != nil {
				mc.onDisagree(rp.handle, mc.url)
			}
			continue
		}
		mc.best = &candidate{sequence: rp.sequence, handle: rp.handle, payload: rp.payload}
	}
}

// advanceTo implements the component-advance rule: children of the same
// component tag continue within the same text at the same offset;
// children of a different tag require the current component to be fully
// consumed and jump forward to wherever that tag's component lives (each
// tag appears at most once per URL, so "earliest" degenerates to "the
// unique later index, if any"). fromRoot marks the one case where i, p
// don't reflect an in-progress consumption of component i at all: the
// pattern never constrained it, so there is no leftover text to refuse,
// and any earlier, unconstrained component tag is a free gap to skip.
func (mc *matchContext) advanceTo(i, p int, valid bool, fromRoot bool, target Component) (int, int, bool) {
	if valid && mc.components[i].tag == target {
		return i, p, true
	}
	if !fromRoot && valid && p < len(mc.components[i].text) {
		return 0, 0, false // leftover text of a different tag: cannot skip it
	}
	j := mc.compIndex[target]
	if j < 0 {
		return 0, 0, false
	}
	if valid && j <= i {
		return 0, 0, false
	}
	return j, 0, true
}

func hasPrefixAt(text string, p int, lit string) bool {
	if lit == "" {
		return true
	}
	if p < 0 || p+len(lit) > len(text) {
		return false
	}
	return text[p:p+len(lit)] == lit
}

// consumeFixed implements the Fixed node-kind consumption rules.
func (mc *matchContext) consumeFixed(n *node, i, p int, valid bool) {
	if !valid {
		return
	}
	text := mc.components[i].text

	switch n.modifier {
	case ModNone:
		if hasPrefixAt(text, p, n.value) {
			mc.afterConsumption(n, i, p+len(n.value), true)
		}
	case ModOptional:
		if hasPrefixAt(text, p, n.value) {
			mc.afterConsumption(n, i, p+len(n.value), true)
		}
		mc.afterConsumption(n, i, p, true)
	case ModZeroOrMore, ModOneOrMore:
		q, reps := p, 0
		for hasPrefixAt(text, q, n.value) {
			q += len(n.value)
			reps++
		}
		if n.modifier == ModOneOrMore && reps == 0 {
			return
		}
		mc.afterConsumption(n, i, q, true)
	}
}

// pathSegmentBounds returns, for a Pathname-anchored repeat, the end offset
// after consuming k complete "/segment" runs starting at start, or -1 if
// fewer than k such runs are available.
func pathSegmentBounds(text string, start, k int) int {
	pos := start
	for n := 0; n < k; n++ {
		if pos >= len(text) || text[pos] != '/' {
			return -1
		}
		end := pos + 1
		for end < len(text) && text[end] != '/' {
			end++
		}
		pos = end
	}
	return pos
}

// maxPathSegments returns how many complete "/segment" runs are available
// starting at start.
func maxPathSegments(text string, start int) int {
	k := 0
	for pathSegmentBounds(text, start, k+1) >= 0 {
		k++
	}
	return k
}

// consumeSegmentWildcard implements the SegmentWildcard consumption rules: a
// named hole with an optional literal prefix/suffix, whose valid
// consumption lengths depend on whether the node has children and on its
// modifier.
func (mc *matchContext) consumeSegmentWildcard(n *node, i, p int, valid bool) {
	if !valid {
		return
	}
	text := mc.components[i].text
	hasChildren := len(n.children) > 0
	// A bare, literal-surrounded hole in Pathname must not swallow a '/'.
	boundedByPathSlash := n.component == Pathname && !strings.HasPrefix(n.prefix, "/")

	// attempt tries one capture of exactly contentLen bytes after the
	// prefix (if any) and before the suffix (if any), recursing on success.
	attempt := func(contentLen int) bool {
		start := p
		if n.prefix != "" {
			if !hasPrefixAt(text, start, n.prefix) {
				return false
			}
			start += len(n.prefix)
		}
		if contentLen < 0 || start+contentLen > len(text) {
			return false
		}
		content := text[start : start+contentLen]
		if boundedByPathSlash && strings.IndexByte(content, '/') >= 0 {
			return false
		}
		end := start + contentLen
		if n.suffix != "" {
			if !hasPrefixAt(text, end, n.suffix) {
				return false
			}
			end += len(n.suffix)
		}
		mc.afterConsumption(n, i, end, true)
		return true
	}

	naturalBoundary := func(start int) int {
		if boundedByPathSlash {
			if idx := strings.IndexByte(text[start:], '/'); idx >= 0 {
				return start + idx
			}
		}
		return len(text)
	}

	maxContentLen := func(start int) int {
		end := naturalBoundary(start)
		limit := end - start - len(n.suffix)
		if limit < 0 {
			limit = 0
		}
		return limit
	}

	switch n.modifier {
	case ModOptional:
		mc.afterConsumption(n, i, p, true) // zero consumption first
		fallthrough
	case ModNone:
		start := p
		if n.prefix != "" && !hasPrefixAt(text, start, n.prefix) {
			return
		}
		contentStart := start + len(n.prefix)
		if !hasChildren {
			attempt(maxContentLen(contentStart))
			return
		}
		// Shortest to longest so later fixed siblings get the longest
		// residual to bind against; every length is still explored (the
		// shared best pointer already prunes what it can), which keeps
		// this implementation exact against the linear oracle rather than
		// stopping at the first structurally valid length.
		for k := 1; k <= maxContentLen(contentStart); k++ {
			attempt(k)
		}

	case ModZeroOrMore, ModOneOrMore:
		start := p
		nonSlashPrefix := n.prefix != "" && n.prefix != "/"
		first := 0
		if n.modifier == ModOneOrMore {
			first = 1
		}
		if !hasChildren {
			// Consume the remainder in one shot.
			if n.modifier == ModZeroOrMore {
				mc.afterConsumption(n, i, start, true)
			}
			end := len(text)
			if nonSlashPrefix {
				// Repeated "prefix+chunk" runs to the end of text.
				pos := start
				reps := 0
				for hasPrefixAt(text, pos, n.prefix) {
					pos += len(n.prefix)
					for pos < len(text) && text[pos] != '/' {
						pos++
					}
					reps++
				}
				if reps >= first {
					mc.afterConsumption(n, i, pos, true)
				}
				return
			}
			if first == 1 && start == end {
				return
			}
			mc.afterConsumption(n, i, end, true)
			return
		}
		if nonSlashPrefix {
			// Repeated "prefix+chunk" runs, one candidate per repeat count.
			pos := start
			for reps := 0; ; reps++ {
				if reps >= first {
					mc.afterConsumption(n, i, pos, true)
				}
				if !hasPrefixAt(text, pos, n.prefix) {
					break
				}
				next := pos + len(n.prefix)
				for next < len(text) && text[next] != '/' {
					next++
				}
				if next == pos+len(n.prefix) && reps >= first {
					break // no progress: avoid an infinite zero-width loop
				}
				pos = next
			}
			return
		}
		// Whole-segment repetition bounded at '/' delimiters.
		maxSeg := maxPathSegments(text, start)
		for k := first; k <= maxSeg; k++ {
			end := pathSegmentBounds(text, start, k)
			if end < 0 {
				break
			}
			mc.afterConsumption(n, i, end, true)
		}
		if first == 0 {
			mc.afterConsumption(n, i, start, true)
		}
	}
}

// consumeFullWildcard implements the FullWildcard ("*") consumption rules.
func (mc *matchContext) consumeFullWildcard(n *node, i, p int, valid bool) {
	if !valid {
		return
	}
	text := mc.components[i].text
	rest := len(text) - p

	if n.modifier.CanSkip() || n.modifier == ModOneOrMore {
		// A single zero-width capture still satisfies "one or more": the
		// floor is on repetition count, not byte length.
		mc.afterConsumption(n, i, p, true)
	}

	if len(n.children) == 0 {
		mc.afterConsumption(n, i, len(text), true)
		return
	}

	// Greedy-then-shrink: try every length from longest to shortest. The
	// budget counter (checked in walk) bounds the fanout this can cause on
	// adjacent "*/*/literal"-shaped patterns.
	for k := rest; k >= 1; k-- {
		if mc.budget <= 0 {
			return
		}
		mc.afterConsumption(n, i, p+k, true)
	}
}

// consumeRegex implements the Regex consumption rules.
func (mc *matchContext) consumeRegex(n *node, i, p int, valid bool) {
	if !valid {
		return
	}
	text := mc.components[i].text

	if n.regexInvalid {
		// Permissive fallback: matches anything non-empty, relying on the
		// evaluator to reject later.
		if p < len(text) {
			mc.afterConsumption(n, i, len(text), true)
		}
		return
	}

	if n.component == Pathname {
		end := p
		if end < len(text) && text[end] == '/' {
			end++
		}
		for end < len(text) && text[end] != '/' {
			end++
		}
		segment := text[p:end]
		if n.regex.MatchString(segment) {
			mc.afterConsumption(n, i, end, true)
		}
		return
	}

	remainder := text[p:]
	if n.regex.MatchString(remainder) {
		mc.afterConsumption(n, i, len(text), true)
	}
}
