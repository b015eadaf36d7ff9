// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

// NoteSet is an insertion-ordered set of notes, the unit the search engine
// works on.
type NoteSet struct {
	notes []*Note
	ids   map[string]struct{}
}

func NewNoteSet(notes ...*Note) *NoteSet {
	s := &NoteSet{ids: make(map[string]struct{}, len(notes))}
	for _, n := range notes {
		s.Add(n)
	}
	return s
}

// Add appends n unless a note with the same id is already in the set.
// Note ids never change once a note is registered, so no lock is needed.
func (s *NoteSet) Add(n *Note) {
	id := n.row.NoteID
	if _, ok := s.ids[id]; ok {
		return
	}
	s.ids[id] = struct{}{}
	s.notes = append(s.notes, n)
}

func (s *NoteSet) Has(n *Note) bool {
	return s.HasNoteID(n.row.NoteID)
}

func (s *NoteSet) HasNoteID(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *NoteSet) Len() int {
	return len(s.notes)
}

// Notes returns the notes in insertion order.
func (s *NoteSet) Notes() []*Note {
	out := make([]*Note, len(s.notes))
	copy(out, s.notes)
	return out
}

func (s *NoteSet) NoteIDs() []string {
	out := make([]string, len(s.notes))
	for i, n := range s.notes {
		out[i] = n.row.NoteID
	}
	return out
}

// MergeIn adds every note of other to s.
func (s *NoteSet) MergeIn(other *NoteSet) {
	for _, n := range other.notes {
		s.Add(n)
	}
}

// Minus returns the notes of s that are not in other.
func (s *NoteSet) Minus(other *NoteSet) *NoteSet {
	out := NewNoteSet()
	for _, n := range s.notes {
		if !other.Has(n) {
			out.Add(n)
		}
	}
	return out
}

// Intersection returns the notes of s that are also in other.
func (s *NoteSet) Intersection(other *NoteSet) *NoteSet {
	out := NewNoteSet()
	for _, n := range s.notes {
		if other.Has(n) {
			out.Add(n)
		}
	}
	return out
}
