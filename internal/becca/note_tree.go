// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"cmp"
	"slices"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

func (n *Note) parentBranches() []*Branch {
	return n.b.parentBranches[n.row.NoteID]
}

func (n *Note) childBranches() []*Branch {
	return n.b.childBranches[n.row.NoteID]
}

func (n *Note) parents() []*Note {
	branches := n.parentBranches()
	out := make([]*Note, 0, len(branches))
	for _, br := range branches {
		if br.row.NoteID == models.RootNoteID {
			continue
		}
		if parent, ok := n.b.notes[br.row.ParentNoteID]; ok {
			out = append(out, parent)
		}
	}
	return out
}

func (n *Note) children() []*Note {
	branches := n.childBranches()
	out := make([]*Note, 0, len(branches))
	for _, br := range branches {
		if child, ok := n.b.notes[br.row.NoteID]; ok {
			out = append(out, child)
		}
	}
	return out
}

func (n *Note) strongParentBranches() []*Branch {
	var out []*Branch
	for _, br := range n.parentBranches() {
		if !n.b.IsWeakParent(br.row.ParentNoteID) {
			out = append(out, br)
		}
	}
	return out
}

// ParentBranches returns the branches under which the note is placed.
func (n *Note) ParentBranches() []*Branch {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return slices.Clone(n.parentBranches())
}

// StrongParentBranches returns the parent branches that keep the note alive.
func (n *Note) StrongParentBranches() []*Branch {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.strongParentBranches()
}

// ChildBranches returns the branches below the note ordered by position.
func (n *Note) ChildBranches() []*Branch {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return slices.Clone(n.childBranches())
}

func (n *Note) Parents() []*Note {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.parents()
}

// Children returns the child notes ordered by branch position.
func (n *Note) Children() []*Note {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.children()
}

func (n *Note) HasChildren() bool {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return len(n.childBranches()) > 0
}

func (n *Note) IsRoot() bool {
	return n.ID() == models.RootNoteID
}

func (n *Note) ancestors(path []string) walkResult[[]*Note] {
	return memoWalk(&n.ancestorCache, n.row.NoteID, path, func(path []string) walkResult[[]*Note] {
		var res walkResult[[]*Note]
		seen := make(map[string]struct{})
		add := func(a *Note) {
			if _, ok := seen[a.row.NoteID]; ok {
				return
			}
			seen[a.row.NoteID] = struct{}{}
			res.value = append(res.value, a)
		}

		for _, parent := range n.parents() {
			add(parent)
			above := parent.ancestors(path)
			res.absorb(above.cut)
			for _, a := range above.value {
				add(a)
			}
		}
		return res
	})
}

// Ancestors returns every note above n, nearest parents first.
func (n *Note) Ancestors() []*Note {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return slices.Clone(n.ancestors(nil).value)
}

func (n *Note) hasAncestor(ancestorNoteID string) bool {
	for _, a := range n.ancestors(nil).value {
		if a.row.NoteID == ancestorNoteID {
			return true
		}
	}
	return false
}

// HasAncestor reports whether ancestorNoteID lies above n.
func (n *Note) HasAncestor(ancestorNoteID string) bool {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.hasAncestor(ancestorNoteID)
}

// IsInHiddenSubtree reports whether n is the hidden root or below it.
func (n *Note) IsInHiddenSubtree() bool {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.row.NoteID == n.b.hiddenRootID || n.hasAncestor(n.b.hiddenRootID)
}

func (n *Note) allNotePaths(path []string) [][]string {
	id := n.row.NoteID
	if id == models.RootNoteID {
		return [][]string{{models.RootNoteID}}
	}
	if slices.Contains(path, id) {
		return nil
	}
	path = append(slices.Clip(path), id)

	var out [][]string
	for _, parent := range n.parents() {
		for _, p := range parent.allNotePaths(path) {
			out = append(out, append(p, id))
		}
	}
	return out
}

// AllNotePaths returns every root-to-note sequence of note ids.
func (n *Note) AllNotePaths() [][]string {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.allNotePaths(nil)
}

// NotePath is one placement of a note in the tree.
type NotePath struct {
	NotePath           []string
	IsInHoistedSubTree bool
	IsArchived         bool
	IsHidden           bool
}

// SortedNotePaths returns every path of n best first: inside the hoisted
// subtree, then not archived, then outside the hidden subtree, then
// shortest, then lexicographically.
func (n *Note) SortedNotePaths(hoistedNoteID string) []NotePath {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	if hoistedNoteID == "" {
		hoistedNoteID = models.RootNoteID
	}

	raw := n.allNotePaths(nil)
	paths := make([]NotePath, 0, len(raw))
	for _, p := range raw {
		np := NotePath{
			NotePath:           p,
			IsInHoistedSubTree: slices.Contains(p, hoistedNoteID),
			IsHidden:           slices.Contains(p, n.b.hiddenRootID),
		}
		for _, id := range p {
			if note, ok := n.b.notes[id]; ok && note.isArchived() {
				np.IsArchived = true
				break
			}
		}
		paths = append(paths, np)
	}

	slices.SortStableFunc(paths, func(a, b NotePath) int {
		if a.IsInHoistedSubTree != b.IsInHoistedSubTree {
			return boolFirst(a.IsInHoistedSubTree)
		}
		if a.IsArchived != b.IsArchived {
			return -boolFirst(a.IsArchived)
		}
		if a.IsHidden != b.IsHidden {
			return -boolFirst(a.IsHidden)
		}
		if c := cmp.Compare(len(a.NotePath), len(b.NotePath)); c != 0 {
			return c
		}
		return slices.Compare(a.NotePath, b.NotePath)
	})
	return paths
}

// boolFirst orders true before false.
func boolFirst(v bool) int {
	if v {
		return -1
	}
	return 1
}

// BestNotePath returns the first of [Note.SortedNotePaths], or nil for a
// note that is not placed anywhere.
func (n *Note) BestNotePath(hoistedNoteID string) []string {
	paths := n.SortedNotePaths(hoistedNoteID)
	if len(paths) == 0 {
		return nil
	}
	return paths[0].NotePath
}

// BestNotePathString joins [Note.BestNotePath] with slashes.
func (n *Note) BestNotePathString(hoistedNoteID string) string {
	return strings.Join(n.BestNotePath(hoistedNoteID), "/")
}

// FlatText returns the normalized string the search engine matches
// against: id, type, mime, branch prefixes, title and attributes.
func (n *Note) FlatText() string {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	if v := n.flatTextCache.Load(); v != nil {
		return *v
	}

	var sb strings.Builder
	sb.WriteString(n.row.NoteID + " " + string(n.row.Type) + " " + n.row.Mime + " ")
	for _, br := range n.parentBranches() {
		if br.row.Prefix != "" {
			sb.WriteString(br.row.Prefix + " - ")
		}
	}
	sb.WriteString(n.title() + " ")

	for _, a := range n.resolveAttributes(nil).value {
		if a.row.Type == models.AttributeLabel {
			sb.WriteString("#")
		} else {
			sb.WriteString("~")
		}
		sb.WriteString(a.row.Name)
		if a.row.Value != "" {
			sb.WriteString("=" + a.row.Value)
		}
		sb.WriteString(" ")
	}

	text := utils.Normalize(sb.String())
	n.flatTextCache.Store(&text)
	return text
}
