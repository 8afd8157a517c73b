package tree

import "fmt"

// Tree is a prefix tree over parsed URL-pattern parts. It owns no
// reference to a Parser or Evaluator — both are supplied per call, so the
// tree itself stays a pure, independently testable data structure,
// decoupled from whatever consumes its matches.
type Tree struct {
	root     *node
	sequence uint64
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{root: newRootNode()}
}

// Insert parses pattern into parts via parser, allocates the next
// sequence number, walks/extends the tree, and appends the registered
// pattern to the terminal node. sharesPrefix reports whether the terminal
// node already held at least one pattern before this one was appended — a
// purely informational signal callers may use for conflict diagnostics (it
// is not an error; first-registration-wins already resolves the
// ambiguity).
//
// WARNING: not concurrency-safe with Match or other Insert calls.
func (t *Tree) Insert(parser Parser, pattern CompiledPattern, payload any) (sequence uint64, sharesPrefix bool, err error) {
	parts, err := parser.Parse(pattern)
	if err != nil {
		return 0, false, fmt.Errorf("tree: parse pattern %q: %w", pattern.String(), err)
	}

	seq := t.sequence
	t.sequence++

	n := t.root
	n.touch(seq)
	for _, part := range parts {
		child := n.findChild(part)
		if child == nil {
			child = newChildNode(part)
			n.children = append(n.children, child)
		}
		n = child
		n.touch(seq)
	}

	sharesPrefix = len(n.patterns) > 0
	n.patterns = append(n.patterns, registeredPattern{
		sequence: seq,
		handle:   pattern,
		payload:  payload,
	})
	return seq, sharesPrefix, nil
}

// NodeCount returns the total number of non-root nodes currently in the
// tree. Exposed for structural-sharing tests: it must stay bounded by the
// number of distinct structural prefixes registered, not by the number of
// registrations.
func (t *Tree) NodeCount() int {
	var count func(*node) int
	count = func(n *node) int {
		c := len(n.children)
		for _, child := range n.children {
			c += count(child)
		}
		return c
	}
	return count(t.root)
}
