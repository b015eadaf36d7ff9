// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"slices"
	"sync/atomic"
)

// walkResult is what a guarded traversal produced for one note. cut lists
// the notes at which the traversal stopped because they were already on the
// path, so the value may be missing whatever those notes would contribute.
type walkResult[T any] struct {
	value T
	cut   []string
}

func (r *walkResult[T]) absorb(cut []string) {
	r.cut = append(r.cut, cut...)
}

// memoWalk evaluates compute for the note id reached along path. A note that
// is already on path yields the zero value and is reported as cut. The
// value is cached only when every cut below id points back at id itself,
// i.e. when the result does not depend on how id was reached.
func memoWalk[T any](cache *atomic.Pointer[T], id string, path []string, compute func(path []string) walkResult[T]) walkResult[T] {
	if slices.Contains(path, id) {
		var zero T
		return walkResult[T]{value: zero, cut: []string{id}}
	}
	if v := cache.Load(); v != nil {
		return walkResult[T]{value: *v}
	}

	res := compute(append(slices.Clip(path), id))
	res.cut = slices.DeleteFunc(res.cut, func(c string) bool { return c == id })
	if len(res.cut) == 0 {
		v := res.value
		cache.Store(&v)
	}
	return res
}

// walkOnce calls visit for start and for every note reachable from it
// through next, each note at most once.
func walkOnce(start *Note, next func(*Note) []*Note, visit func(*Note)) {
	seen := make(map[string]struct{})
	stack := []*Note{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := seen[n.row.NoteID]; ok {
			continue
		}
		seen[n.row.NoteID] = struct{}{}

		visit(n)
		stack = append(stack, next(n)...)
	}
}
