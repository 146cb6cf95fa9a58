// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jockey

import "strings"

// token is an argument tagged with its index in the original argument list.
type token struct {
	index int
	value string
}

// stream is the unconsumed suffix of the argument list.
type stream struct {
	tokens []token
	pos    int
}

func newStream(args []string) *stream {
	tokens := make([]token, len(args))
	for i, arg := range args {
		tokens[i] = token{index: i, value: arg}
	}
	return &stream{tokens: tokens}
}

func (s *stream) empty() bool {
	return s.pos >= len(s.tokens)
}

func (s *stream) peek() (token, bool) {
	if s.empty() {
		return token{}, false
	}
	return s.tokens[s.pos], true
}

func (s *stream) next() (token, bool) {
	t, ok := s.peek()
	if ok {
		s.pos++
	}
	return t, ok
}

// match is a successful field match.
type match struct {
	value string
	// blacklist reports whether the field's option strings may no longer
	// appear in the remaining arguments.
	blacklist bool
}

// splitOption splits "--name=value" into ("--name", "value", true). Only the
// first '=' separates, so "--name=a=b" yields the value "a=b".
func splitOption(arg string) (head, tail string, hasTail bool) {
	return strings.Cut(arg, "=")
}

// matchFlag consumes the next token if it is exactly opt.
func matchFlag(s *stream, opt string) (match, bool) {
	t, ok := s.peek()
	if !ok || t.value != opt {
		return match{}, false
	}
	s.next()
	return match{blacklist: true}, true
}

// matchString consumes "opt value" or "opt=value" from the front of s. It
// reports no match if the next token is not opt, and an *UnexpectedEndError
// if opt is the last token and carries no inline value.
func matchString(s *stream, opt string) (match, bool, error) {
	t, ok := s.peek()
	if !ok {
		return match{}, false, nil
	}
	head, tail, hasTail := splitOption(t.value)
	if head != opt {
		return match{}, false, nil
	}
	s.next()
	if hasTail {
		return match{value: tail, blacklist: true}, true, nil
	}
	v, ok := s.next()
	if !ok {
		return match{}, false, &UnexpectedEndError{Option: opt}
	}
	return match{value: v.value, blacklist: true}, true, nil
}

// matchPositional consumes the next token if its original index is pos.
func matchPositional(s *stream, pos int) (match, bool) {
	t, ok := s.peek()
	if !ok || t.index != pos {
		return match{}, false
	}
	s.next()
	return match{value: t.value}, true
}

// matchField tries f against the front of s. Option-bound fields try each of
// their option strings in turn, long form first.
func matchField[T any](f *Field[T], s *stream) (match, bool, error) {
	if f.Binding.Positional {
		m, ok := matchPositional(s, f.Binding.Position)
		return m, ok, nil
	}
	for _, opt := range f.Binding.Options() {
		switch f.Kind {
		case KindFlag:
			if m, ok := matchFlag(s, opt); ok {
				return m, true, nil
			}
		case KindMandatoryString, KindOptionalString:
			m, ok, err := matchString(s, opt)
			if err != nil || ok {
				return m, ok, err
			}
		case KindMulti:
			m, ok, err := matchString(s, opt)
			if err != nil || ok {
				m.blacklist = false
				return m, ok, err
			}
		}
	}
	return match{}, false, nil
}
