package urlpattern

import (
	"testing"

	"github.com/dnalborczyk/url-pattern-list/tree"
)

func TestCompilePatternBuildsPathnameParts(t *testing.T) {
	p, err := CompilePattern("/users/:id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.parts) != 2 {
		t.Fatalf("expected 2 parts, got %d: %+v", len(p.parts), p.parts)
	}
	if p.parts[0].Kind != tree.Fixed || p.parts[0].Value != "/users" {
		t.Fatalf("unexpected first part: %+v", p.parts[0])
	}
	if p.parts[1].Kind != tree.SegmentWildcard || p.parts[1].Name != "id" {
		t.Fatalf("unexpected second part: %+v", p.parts[1])
	}
}

func TestCompileIgnoresUnconstrainedComponents(t *testing.T) {
	p, err := Compile(Init{Pathname: "/x", Hostname: "*"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.regex[tree.Hostname]; ok {
		t.Fatalf("hostname %q should be treated as unconstrained", "*")
	}
	if _, ok := p.regex[tree.Pathname]; !ok {
		t.Fatalf("expected a compiled regex for the constrained pathname")
	}
}

func TestStringRendersSource(t *testing.T) {
	p, err := Compile(Init{Hostname: "example.com", Pathname: "/a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.String(); got != "example.com/a" {
		t.Fatalf("String() = %q, want %q", got, "example.com/a")
	}
}

func TestCompileRejectsUnterminatedGroup(t *testing.T) {
	_, err := CompilePattern("/:id(unterminated")
	if err == nil {
		t.Fatalf("expected an error for an unterminated regex group")
	}
}

func TestCompileRejectsDuplicateCaptureNames(t *testing.T) {
	_, err := Compile(Init{Hostname: ":id", Pathname: "/:id"})
	if err == nil {
		t.Fatalf("expected an error for a capture name reused across components")
	}
}
