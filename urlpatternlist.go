// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package urlpatternlist answers "which registered URL pattern was first
// to match this URL, and what payload did it carry" by driving the tree
// package's prefix-tree match index, with
// github.com/dnalborczyk/url-pattern-list/urlpattern supplying the pattern
// parser and evaluator the core treats as black boxes.
package urlpatternlist

import (
	"fmt"

	"github.com/dnalborczyk/url-pattern-list/tree"
	"github.com/dnalborczyk/url-pattern-list/urlpattern"
	"go.uber.org/zap"
)

// List is the append-only match index. The zero value is not usable; build
// one with New.
type List struct {
	tree   *tree.Tree
	engine urlpattern.Engine
	logger *zap.Logger
}

// Option configures a List at construction time.
type Option func(*List)

// WithLogger attaches a structured logger. Internal tree/evaluator
// disagreements are logged at Warn; informational conflict notes (see Add)
// are logged at Info. Defaults to zap.NewNop() when unset.
func WithLogger(logger *zap.Logger) Option {
	return func(l *List) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New returns an empty List.
func New(opts ...Option) *List {
	l := &List{tree: tree.New(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result is returned by Match on success: the evaluator's per-component
// capture result plus the payload registered alongside the winning
// pattern.
type Result struct {
	Value any
	Match *tree.ExecResult
}

// Add registers pattern with payload. It never fails except by propagating
// a parser error; removing, reordering, or mutating a registered pattern
// is out of scope.
//
// WARNING: not concurrency-safe with Match or other Add calls — callers
// must ensure no Match is in flight while Add runs.
func (l *List) Add(pattern *urlpattern.Pattern, payload any) error {
	_, sharesPrefix, err := l.tree.Insert(l.engine, pattern, payload)
	if err != nil {
		return err
	}
	if sharesPrefix {
		l.logger.Info("pattern shares its full structural prefix with an earlier registration",
			zap.String("pattern", pattern.String()))
	}
	return nil
}

// AddInit compiles init and registers it, for callers that want to specify
// more than a bare pathname (protocol, host, etc. via the Init fields).
func (l *List) AddInit(init urlpattern.Init, payload any) error {
	pattern, err := urlpattern.Compile(init)
	if err != nil {
		return fmt.Errorf("urlpatternlist: add: %w", err)
	}
	return l.Add(pattern, payload)
}

// AddPath compiles a pathname-only pattern (e.g. "/api/users/:id") and
// registers it.
func (l *List) AddPath(pathname string, payload any) error {
	pattern, err := urlpattern.CompilePattern(pathname)
	if err != nil {
		return fmt.Errorf("urlpatternlist: add: %w", err)
	}
	return l.Add(pattern, payload)
}

// Match returns the payload and capture result of the first-registered
// pattern that matches url (resolved against base when url is relative),
// or ok=false if none matches.
func (l *List) Match(url string, base string) (result Result, ok bool, err error) {
	outcome, err := l.tree.Match(l.engine, url, base, l.logDisagreement)
	if err != nil {
		return Result{}, false, err
	}
	if outcome == nil {
		return Result{}, false, nil
	}
	return Result{Value: outcome.Payload, Match: outcome.Result}, true, nil
}

func (l *List) logDisagreement(handle tree.CompiledPattern, url string) {
	l.logger.Warn("tree accepted a candidate the evaluator rejected",
		zap.String("pattern", handle.String()),
		zap.String("url", url))
}
