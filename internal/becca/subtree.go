// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

// Relationship is one parent/child edge inside a subtree.
type Relationship struct {
	ParentNoteID string
	ChildNoteID  string
}

// SubtreeResult is a note with its descendants and the edges between them.
type SubtreeResult struct {
	Notes         []*Note
	Relationships []Relationship
}

// Subtree collects the note and its descendants in depth-first order.
// Archived notes are left out unless includeArchived is set, the hidden
// subtree unless includeHidden is set. Edges leading to an excluded
// archived note are still reported. A cloned note appears once.
func (n *Note) Subtree(includeArchived, includeHidden bool) SubtreeResult {
	b := n.b
	b.mu.RLock()
	defer b.mu.RUnlock()

	var res SubtreeResult
	seen := make(map[string]struct{})

	var add func(note, parent *Note)
	add = func(note, parent *Note) {
		if note.row.NoteID == b.hiddenRootID && !includeHidden {
			return
		}
		if parent != nil {
			res.Relationships = append(res.Relationships, Relationship{
				ParentNoteID: parent.row.NoteID,
				ChildNoteID:  note.row.NoteID,
			})
		}
		if !includeArchived && note.isArchived() {
			return
		}
		if _, ok := seen[note.row.NoteID]; ok {
			return
		}
		seen[note.row.NoteID] = struct{}{}
		res.Notes = append(res.Notes, note)

		for _, child := range note.children() {
			add(child, note)
		}
	}
	add(n, nil)

	return res
}

// SubtreeNoteIDs returns the ids of [Note.Subtree].
func (n *Note) SubtreeNoteIDs(includeArchived, includeHidden bool) []string {
	notes := n.Subtree(includeArchived, includeHidden).Notes
	ids := make([]string, len(notes))
	for i, note := range notes {
		ids[i] = note.row.NoteID
	}
	return ids
}

// DescendantNoteIDs returns the note and every note below it, archived and
// hidden ones included.
func (n *Note) DescendantNoteIDs() []string {
	b := n.b
	b.mu.RLock()
	defer b.mu.RUnlock()

	var ids []string
	walkOnce(n, (*Note).children, func(note *Note) {
		ids = append(ids, note.row.NoteID)
	})
	return ids
}
