// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package tree implements the prefix-tree match index over parsed
// URL-pattern parts: the PrefixTree, the Inserter and the Matcher described
// for this module. It treats pattern parsing and pattern evaluation as
// external collaborators, consumed only through the Parser and Evaluator
// interfaces in contract.go.
package tree

// Component identifies which part of a URL a Part belongs to. The zero
// value is Protocol; the ordering below is significant, both for the
// fixed order the Parser must emit parts in and for the non-decreasing
// sibling order the Inserter relies on.
type Component uint8

const (
	Protocol Component = iota
	Username
	Password
	Hostname
	Port
	Pathname
	Search
	Hash
)

func (c Component) String() string {
	switch c {
	case Protocol:
		return "protocol"
	case Username:
		return "username"
	case Password:
		return "password"
	case Hostname:
		return "hostname"
	case Port:
		return "port"
	case Pathname:
		return "pathname"
	case Search:
		return "search"
	case Hash:
		return "hash"
	default:
		return "unknown"
	}
}

// PartKind is the tree's alphabet: the four shapes a parsed pattern
// fragment can take.
type PartKind uint8

const (
	Fixed PartKind = iota
	SegmentWildcard
	FullWildcard
	Regex
)

// Modifier mirrors the URL-pattern-engine repetition modifiers.
type Modifier uint8

const (
	ModNone Modifier = iota
	ModOptional
	ModZeroOrMore
	ModOneOrMore
)

// CanSkip reports whether this modifier allows zero consumption.
func (m Modifier) CanSkip() bool {
	return m == ModOptional || m == ModZeroOrMore
}

// Repeats reports whether this modifier allows more than one repetition.
func (m Modifier) Repeats() bool {
	return m == ModZeroOrMore || m == ModOneOrMore
}

// Part is the value object the Parser emits and the Inserter consumes. Name
// is deliberately excluded from structural equivalence: it is the capture
// name, irrelevant to where in the tree this part lives.
type Part struct {
	Kind      PartKind
	Component Component
	Value     string // literal text (Fixed) or regex source (Regex)
	Prefix    string // literal preceding a SegmentWildcard capture
	Suffix    string // literal following a SegmentWildcard capture
	Name      string // capture name; ignored by structural equivalence
	Modifier  Modifier
}

// equivalentTo implements the structural-equivalence relation: equality of
// (kind, component, modifier, value, prefix, suffix), name excluded.
func (p Part) equivalentTo(o Part) bool {
	return p.Kind == o.Kind &&
		p.Component == o.Component &&
		p.Modifier == o.Modifier &&
		p.Value == o.Value &&
		p.Prefix == o.Prefix &&
		p.Suffix == o.Suffix
}
