package urlpattern

import "testing"

func TestEngineTestAndExec(t *testing.T) {
	p, err := CompilePattern("/users/:id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var engine Engine

	ok, err := engine.Test(p, "https://example.com/users/42", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected Test to accept a matching url")
	}

	result, err := engine.Exec(p, "https://example.com/users/42", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil {
		t.Fatalf("expected a non-nil Exec result")
	}
}

func TestEngineTestRejectsNonMatchingUrl(t *testing.T) {
	p, err := CompilePattern("/users/:id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var engine Engine

	ok, err := engine.Test(p, "https://example.com/orders/42", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected Test to reject a url under a different literal prefix")
	}
}

func TestEngineResolvesRelativeUrlAgainstBase(t *testing.T) {
	p, err := CompilePattern("/a/:id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var engine Engine

	ok, err := engine.Test(p, "/a/7", "https://example.com/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a relative url to resolve against base and match")
	}
}

func TestEngineRejectsRelativeUrlWithoutBase(t *testing.T) {
	p, err := CompilePattern("/a/:id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var engine Engine

	ok, err := engine.Test(p, "/a/7", "")
	if err != nil {
		t.Fatalf("expected an unresolvable url to be a plain non-match, got error: %v", err)
	}
	if ok {
		t.Fatalf("expected Test to reject a relative url that has no base")
	}
}
