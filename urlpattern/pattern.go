// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package urlpattern is the external URL-pattern engine the tree package
// treats as a black box: it compiles a pattern source into parts for the
// prefix tree and tests/execs a compiled pattern against a URL.
//
// The grammar is a small, path-to-regexp-flavored subset: literal text,
// ":name" segment captures with optional literal prefix/suffix framing
// within the same path segment, "(regex)" and ":name(regex)" regex
// captures, "*" full wildcards, and the "?"/"*"/"+" repetition modifiers
// trailing any capture. It does not support character escaping.
package urlpattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dnalborczyk/url-pattern-list/tree"
	gotilsstrings "github.com/savsgio/gotils/strings"
)

// Init describes a pattern's source per URL component. An empty field, or
// the catch-all "*", means that component is unconstrained and is omitted
// from the compiled parts entirely.
type Init struct {
	Protocol string
	Username string
	Password string
	Hostname string
	Port     string
	Pathname string
	Search   string
	Hash     string
}

// componentOrder lists every component in the fixed order the core relies
// on, together with the Init accessor for its source string.
var componentOrder = []struct {
	tag    tree.Component
	source func(Init) string
}{
	{tree.Protocol, func(i Init) string { return i.Protocol }},
	{tree.Username, func(i Init) string { return i.Username }},
	{tree.Password, func(i Init) string { return i.Password }},
	{tree.Hostname, func(i Init) string { return i.Hostname }},
	{tree.Port, func(i Init) string { return i.Port }},
	{tree.Pathname, func(i Init) string { return i.Pathname }},
	{tree.Search, func(i Init) string { return i.Search }},
	{tree.Hash, func(i Init) string { return i.Hash }},
}

// Pattern is a compiled URL pattern: tree.CompiledPattern for the matcher,
// and its own Parser/Evaluator logic live on Engine so Pattern itself stays
// a plain data holder.
type Pattern struct {
	init   Init
	parts  []tree.Part
	regex  map[tree.Component]*regexp.Regexp
	source string
}

// Compile parses init into a Pattern: one regex per constrained component
// (used by Test/Exec) and the flat parts[] list the tree builds from (used
// by Parse).
func Compile(init Init) (*Pattern, error) {
	p := &Pattern{init: init, regex: map[tree.Component]*regexp.Regexp{}}

	for _, c := range componentOrder {
		src := c.source(init)
		if src == "" || src == "*" {
			continue
		}
		parts, err := parseComponentSource(c.tag, src)
		if err != nil {
			return nil, err
		}
		re, err := compileComponentRegex(c.tag, parts)
		if err != nil {
			return nil, err
		}
		p.parts = append(p.parts, parts...)
		p.regex[c.tag] = re
	}

	if err := checkUniqueNames(p.parts); err != nil {
		return nil, err
	}

	p.source = renderSource(init)
	return p, nil
}

// checkUniqueNames rejects a pattern whose captures reuse a name across
// components or within the same component.
func checkUniqueNames(parts []tree.Part) error {
	var seen []string
	for _, part := range parts {
		if part.Name == "" {
			continue
		}
		if gotilsstrings.Include(seen, part.Name) {
			return fmt.Errorf("urlpattern: duplicate capture name %q", part.Name)
		}
		seen = append(seen, part.Name)
	}
	return nil
}

// CompilePattern is a convenience constructor for the common case: a
// single pathname pattern string, every other component left unconstrained.
func CompilePattern(pathname string) (*Pattern, error) {
	return Compile(Init{Pathname: pathname})
}

// String renders a human-readable form of the original pattern source,
// used only for diagnostics: conflict notes, log lines, the bench CLI.
func (p *Pattern) String() string {
	return p.source
}

func renderSource(init Init) string {
	var b strings.Builder
	if init.Protocol != "" {
		b.WriteString(init.Protocol)
		b.WriteString("://")
	}
	if init.Username != "" {
		b.WriteString(init.Username)
		if init.Password != "" {
			b.WriteString(":")
			b.WriteString(init.Password)
		}
		b.WriteString("@")
	}
	b.WriteString(init.Hostname)
	if init.Port != "" {
		b.WriteString(":")
		b.WriteString(init.Port)
	}
	b.WriteString(init.Pathname)
	if init.Search != "" {
		b.WriteString("?")
		b.WriteString(init.Search)
	}
	if init.Hash != "" {
		b.WriteString("#")
		b.WriteString(init.Hash)
	}
	if b.Len() == 0 {
		return "*"
	}
	return b.String()
}
