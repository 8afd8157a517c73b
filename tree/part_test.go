package tree

import "testing"

func TestPartEquivalentToIgnoresName(t *testing.T) {
	a := Part{Kind: SegmentWildcard, Component: Pathname, Prefix: "/", Name: "id"}
	b := Part{Kind: SegmentWildcard, Component: Pathname, Prefix: "/", Name: "bookId"}
	if !a.equivalentTo(b) {
		t.Fatalf("expected equivalence ignoring capture name, got non-equivalent: %+v vs %+v", a, b)
	}
}

func TestPartEquivalentToDistinguishesModifier(t *testing.T) {
	a := Part{Kind: Fixed, Component: Pathname, Value: "/a", Modifier: ModNone}
	b := Part{Kind: Fixed, Component: Pathname, Value: "/a", Modifier: ModOptional}
	if a.equivalentTo(b) {
		t.Fatalf("expected non-equivalence across differing modifiers")
	}
}

func TestPartEquivalentToDistinguishesRegexSource(t *testing.T) {
	a := Part{Kind: Regex, Component: Pathname, Value: `\d+`}
	b := Part{Kind: Regex, Component: Pathname, Value: `[a-z]+`}
	if a.equivalentTo(b) {
		t.Fatalf("regex nodes must not be considered equivalent across differing source")
	}
}
