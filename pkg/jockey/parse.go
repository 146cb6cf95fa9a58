// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jockey

import "tailscale.com/util/set"

// parseState is owned by a single Parse call.
type parseState[T any] struct {
	schema    *Schema[T]
	remaining *stream
	blacklist set.Set[string]
	result    T
	seen      []bool // indexed like schema.fields
}

// Parse parses args, which must not include the program path (pass
// os.Args[1:]). On error the zero T is returned.
func (s *Schema[T]) Parse(args []string) (T, error) {
	st := &parseState[T]{
		schema:    s,
		remaining: newStream(args),
		blacklist: set.Set[string]{},
		result:    s.newRecord(),
		seen:      make([]bool, len(s.fields)),
	}
	if err := st.run(); err != nil {
		var zero T
		return zero, err
	}
	return st.result, nil
}

// ParseArgv parses a full argument vector, discarding argv[0].
func (s *Schema[T]) ParseArgv(argv []string) (T, error) {
	if len(argv) > 0 {
		argv = argv[1:]
	}
	return s.Parse(argv)
}

func (st *parseState[T]) run() error {
	for !st.remaining.empty() {
		if err := st.checkDuplicate(); err != nil {
			return err
		}
		matched, err := st.scan()
		if err != nil {
			return err
		}
		if matched {
			continue
		}
		t, _ := st.remaining.next()
		if st.schema.catchAll == nil {
			return &UnknownOptionError{Token: t.value}
		}
		st.schema.catchAll.store(&st.result, t.value)
	}
	return st.checkMandatory()
}

// checkDuplicate rejects the next token if it names an option that was
// already consumed, either bare or in --name=value form.
func (st *parseState[T]) checkDuplicate() error {
	t, ok := st.remaining.peek()
	if !ok {
		return nil
	}
	if st.blacklist.Contains(t.value) {
		return &DuplicateOptionError{Option: t.value, Token: t.value}
	}
	if head, _, hasTail := splitOption(t.value); hasTail && st.blacklist.Contains(head) {
		return &DuplicateOptionError{Option: head, Token: t.value}
	}
	return nil
}

// scan offers the front of the stream to each ordinary field in declaration
// order and stores the first match.
func (st *parseState[T]) scan() (bool, error) {
	fields := st.schema.fields
	for i := range fields {
		f := &fields[i]
		m, ok, err := matchField(f, st.remaining)
		if err != nil {
			return false, err
		}
		if !ok {
			continue
		}
		f.store(&st.result, m.value)
		st.seen[i] = true
		if m.blacklist {
			for _, opt := range f.Binding.Options() {
				st.blacklist.Add(opt)
			}
		}
		return true, nil
	}
	return false, nil
}

func (st *parseState[T]) checkMandatory() error {
	for i, f := range st.schema.fields {
		if f.Mandatory() && !st.seen[i] {
			return &MissingOptionError{Field: f.Name, Option: f.option()}
		}
	}
	return nil
}
