// Package oracle is a reference linear implementation: it tests every
// registered pattern in insertion order against the evaluator and returns
// the first that accepts the URL. It is the correctness baseline tests
// compare the prefix tree against — never used at runtime, and
// deliberately ignorant of any tree/node concept.
package oracle

import "github.com/dnalborczyk/url-pattern-list/tree"

type registration struct {
	handle  tree.CompiledPattern
	payload any
}

// Oracle is a plain append-only list of registrations, matched linearly.
type Oracle struct {
	evaluator     tree.Evaluator
	registrations []registration
}

// New returns an Oracle that confirms candidates via evaluator.
func New(evaluator tree.Evaluator) *Oracle {
	return &Oracle{evaluator: evaluator}
}

// Add appends a registration. There is no sequence bookkeeping here: order
// in the slice is the only precedence this implementation needs.
func (o *Oracle) Add(handle tree.CompiledPattern, payload any) {
	o.registrations = append(o.registrations, registration{handle: handle, payload: payload})
}

// Match walks registrations in insertion order and returns the first whose
// evaluator accepts url.
func (o *Oracle) Match(url, base string) (*tree.ExecResult, any, bool, error) {
	for _, r := range o.registrations {
		ok, err := o.evaluator.Test(r.handle, url, base)
		if err != nil {
			return nil, nil, false, err
		}
		if !ok {
			continue
		}
		result, err := o.evaluator.Exec(r.handle, url, base)
		if err != nil {
			return nil, nil, false, err
		}
		if result == nil {
			continue // Test/Exec disagreement: treat as a local miss, keep scanning.
		}
		return result, r.payload, true, nil
	}
	return nil, nil, false, nil
}
