package tree

import "testing"

type stubPattern string

func (s stubPattern) String() string { return string(s) }

// stubParser turns a stubPattern directly into a single part, so tree tests
// can exercise Insert/NodeCount without depending on a real pattern engine.
type stubParser struct{}

func (stubParser) Parse(p CompiledPattern) ([]Part, error) {
	return []Part{{Kind: Fixed, Component: Pathname, Value: string(p.(stubPattern))}}, nil
}

func TestInsertSharesStructurallyIdenticalPrefixes(t *testing.T) {
	tr := New()
	parser := stubParser{}

	if _, shares, err := tr.Insert(parser, stubPattern("/api"), "first"); err != nil || shares {
		t.Fatalf("first insert: shares=%v err=%v", shares, err)
	}
	if _, shares, err := tr.Insert(parser, stubPattern("/api"), "second"); err != nil || !shares {
		t.Fatalf("second insert onto same prefix: shares=%v err=%v", shares, err)
	}

	if got := tr.NodeCount(); got != 1 {
		t.Fatalf("expected a single shared node, got NodeCount()=%d", got)
	}
}

func TestInsertAssignsMonotonicSequence(t *testing.T) {
	tr := New()
	parser := stubParser{}

	seq1, _, _ := tr.Insert(parser, stubPattern("/a"), nil)
	seq2, _, _ := tr.Insert(parser, stubPattern("/b"), nil)
	if !(seq1 < seq2) {
		t.Fatalf("expected strictly increasing sequence numbers, got %d then %d", seq1, seq2)
	}
}

func TestNodeCountGrowsWithDistinctStructure(t *testing.T) {
	tr := New()
	parser := stubParser{}

	tr.Insert(parser, stubPattern("/a"), nil)
	if got := tr.NodeCount(); got != 1 {
		t.Fatalf("after one distinct insert, NodeCount() = %d, want 1", got)
	}
	tr.Insert(parser, stubPattern("/b"), nil)
	if got := tr.NodeCount(); got != 2 {
		t.Fatalf("after two distinct inserts, NodeCount() = %d, want 2", got)
	}
}
