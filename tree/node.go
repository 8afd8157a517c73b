package tree

import "regexp"

type nodeKind uint8

const (
	nodeRoot nodeKind = iota
	nodeFixed
	nodeSegmentWildcard
	nodeFullWildcard
	nodeRegex
)

// registeredPattern is the (sequence, handle, payload) triple attached to a
// terminal node. Sequence is assigned once at registration and never
// changes; it is the sole tiebreaker for first-match-wins.
type registeredPattern struct {
	sequence uint64
	handle   CompiledPattern
	payload  any
}

// node is a discriminated variant over {Root, Fixed, SegmentWildcard,
// FullWildcard, Regex}, using a single-struct-plus-kind-tag shape rather
// than separate Go types per kind: it keeps node memory contiguous and lets
// every matcher case live in one switch instead of behind an interface's
// vtable.
type node struct {
	kind      nodeKind
	component Component // meaningless for nodeRoot

	// Fixed
	value string

	// SegmentWildcard
	prefix string
	suffix string

	// Regex
	regexSrc     string
	regex        *regexp.Regexp
	regexInvalid bool // compile failed at construction: permissive fallback

	modifier Modifier // unused for nodeRoot

	patterns []registeredPattern
	children []*node

	// minSequence is the minimum sequence number across patterns ∪
	// {child.minSequence : child ∈ children}. Insert lowers it (via touch)
	// on every node along the inserted pattern's path and nothing else
	// mutates it, letting the matcher prune a
	// subtree that cannot possibly beat the current best candidate.
	minSequence uint64
}

const noSequence = ^uint64(0)

func newRootNode() *node {
	return &node{kind: nodeRoot, minSequence: noSequence}
}

// newChildNode constructs a fresh node for a structurally novel Part. The
// regex is compiled exactly once here; a compile failure does not error the
// call, it marks the node permissive instead.
func newChildNode(part Part) *node {
	n := &node{
		component:   part.Component,
		modifier:    part.Modifier,
		minSequence: noSequence,
	}
	switch part.Kind {
	case Fixed:
		n.kind = nodeFixed
		n.value = part.Value
	case SegmentWildcard:
		n.kind = nodeSegmentWildcard
		n.prefix = part.Prefix
		n.suffix = part.Suffix
	case FullWildcard:
		n.kind = nodeFullWildcard
	case Regex:
		n.kind = nodeRegex
		n.regexSrc = part.Value
		re, err := regexp.Compile(anchorRegex(part.Value))
		if err != nil {
			n.regexInvalid = true
		} else {
			n.regex = re
		}
	}
	return n
}

// anchorRegex wraps the source in a non-capturing group and anchors both
// ends, so an alternation can't spill past one component's boundary.
func anchorRegex(src string) string {
	return "^(?:" + src + ")$"
}

// equivalentToPart reports whether this node could have been constructed
// from part, i.e. whether the two are structurally equivalent (capture name
// excluded). Regex nodes additionally never share across differing source,
// even though that already falls out of comparing value.
func (n *node) equivalentToPart(part Part) bool {
	switch part.Kind {
	case Fixed:
		return n.kind == nodeFixed &&
			n.component == part.Component &&
			n.modifier == part.Modifier &&
			n.value == part.Value
	case SegmentWildcard:
		return n.kind == nodeSegmentWildcard &&
			n.component == part.Component &&
			n.modifier == part.Modifier &&
			n.prefix == part.Prefix &&
			n.suffix == part.Suffix
	case FullWildcard:
		return n.kind == nodeFullWildcard &&
			n.component == part.Component &&
			n.modifier == part.Modifier
	case Regex:
		return n.kind == nodeRegex &&
			n.component == part.Component &&
			n.modifier == part.Modifier &&
			n.regexSrc == part.Value
	default:
		return false
	}
}

// findChild scans children in insertion order for the first structurally
// equivalent one. A linear scan rather than a keyed lookup: the alphabet
// here is whole Parts, not single bytes, so there is no cheap first-byte
// index to dispatch on.
func (n *node) findChild(part Part) *node {
	for _, c := range n.children {
		if c.equivalentToPart(part) {
			return c
		}
	}
	return nil
}

// touch folds seq into this node's minSequence, maintaining the invariant
// that minSequence never exceeds any reachable pattern's sequence.
func (n *node) touch(seq uint64) {
	if seq < n.minSequence {
		n.minSequence = seq
	}
}
