// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-note-keeper/models"
)

const (
	relationTemplate = "template"
	relationInherit  = "inherit"

	labelTemplate          = "template"
	labelWorkspaceTemplate = "workspacetemplate"
	labelArchived          = "archived"
)

func isTemplateRelation(a *Attribute) bool {
	return a.row.Type == models.AttributeRelation &&
		(a.row.Name == relationTemplate || a.row.Name == relationInherit)
}

func isTemplateMarker(a *Attribute) bool {
	return a.row.Type == models.AttributeLabel &&
		(a.row.Name == labelTemplate || a.row.Name == labelWorkspaceTemplate)
}

func filterAttributes(attrs []*Attribute, typ models.AttributeType, name string) []*Attribute {
	out := make([]*Attribute, 0, len(attrs))
	for _, a := range attrs {
		if typ != "" && a.row.Type != typ {
			continue
		}
		if name != "" && a.row.Name != name {
			continue
		}
		out = append(out, a)
	}
	return out
}

// resolveAttributes computes owned, inherited and template attributes of n.
// Owned come first, then those inherited from parents, then those spliced in
// from template and inherit relation targets. Callers hold the read lock.
func (n *Note) resolveAttributes(path []string) walkResult[[]*Attribute] {
	b := n.b
	id := n.row.NoteID

	return memoWalk(&n.attributeCache, id, path, func(path []string) walkResult[[]*Attribute] {
		var res walkResult[[]*Attribute]

		collected := slices.Clone(b.ownedAttributes[id])

		if id != models.RootNoteID && id != b.hiddenRootID {
			for _, parent := range n.parents() {
				inherited := parent.resolveInheritable(path)
				res.absorb(inherited.cut)
				collected = append(collected, inherited.value...)
			}
		}

		var templated []*Attribute
		for _, a := range collected {
			if !isTemplateRelation(a) {
				continue
			}
			target, ok := b.notes[a.row.Value]
			if !ok {
				continue
			}
			fromTemplate := target.resolveAttributes(path)
			res.absorb(fromTemplate.cut)
			for _, ta := range fromTemplate.value {
				if !isTemplateMarker(ta) {
					templated = append(templated, ta)
				}
			}
		}

		seen := make(map[string]struct{}, len(collected)+len(templated))
		out := make([]*Attribute, 0, len(collected)+len(templated))
		for _, a := range append(collected, templated...) {
			if _, ok := seen[a.row.AttributeID]; ok {
				continue
			}
			seen[a.row.AttributeID] = struct{}{}
			out = append(out, a)
		}
		res.value = out
		return res
	})
}

// resolveInheritable is the inheritable subset of resolveAttributes.
func (n *Note) resolveInheritable(path []string) walkResult[[]*Attribute] {
	if slices.Contains(path, n.row.NoteID) {
		return walkResult[[]*Attribute]{cut: []string{n.row.NoteID}}
	}
	if v := n.inheritableCache.Load(); v != nil {
		return walkResult[[]*Attribute]{value: *v}
	}

	res := n.resolveAttributes(path)
	inheritable := make([]*Attribute, 0, len(res.value))
	for _, a := range res.value {
		if a.row.IsInheritable {
			inheritable = append(inheritable, a)
		}
	}
	if len(res.cut) == 0 {
		n.inheritableCache.Store(&inheritable)
	}
	return walkResult[[]*Attribute]{value: inheritable, cut: res.cut}
}

// Attributes returns the resolved attributes of the note, optionally
// filtered by type and exact name. Empty filters match everything.
func (n *Note) Attributes(typ models.AttributeType, name string) []*Attribute {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return filterAttributes(n.resolveAttributes(nil).value, typ, name)
}

// OwnedAttributes returns the attributes created directly on the note,
// ordered by position.
func (n *Note) OwnedAttributes(typ models.AttributeType, name string) []*Attribute {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return filterAttributes(n.b.ownedAttributes[n.row.NoteID], typ, name)
}

// InheritableAttributes returns the resolved attributes that propagate to
// children.
func (n *Note) InheritableAttributes() []*Attribute {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return slices.Clone(n.resolveInheritable(nil).value)
}

// TargetRelations returns the relations of other notes that point at n.
func (n *Note) TargetRelations() []*Attribute {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return slices.Clone(n.b.targetRelations[n.row.NoteID])
}

func (n *Note) HasAttribute(typ models.AttributeType, name string) bool {
	return len(n.Attributes(typ, name)) > 0
}

func (n *Note) HasOwnedAttribute(typ models.AttributeType, name string) bool {
	return len(n.OwnedAttributes(typ, name)) > 0
}

func (n *Note) HasLabel(name string) bool {
	return n.HasAttribute(models.AttributeLabel, name)
}

func (n *Note) HasOwnedLabel(name string) bool {
	return n.HasOwnedAttribute(models.AttributeLabel, name)
}

func (n *Note) HasRelation(name string) bool {
	return n.HasAttribute(models.AttributeRelation, name)
}

// LabelValue returns the value of the first resolved label called name.
func (n *Note) LabelValue(name string) string {
	labels := n.Attributes(models.AttributeLabel, name)
	if len(labels) == 0 {
		return ""
	}
	return labels[0].Value()
}

func (n *Note) OwnedLabelValue(name string) string {
	labels := n.OwnedAttributes(models.AttributeLabel, name)
	if len(labels) == 0 {
		return ""
	}
	return labels[0].Value()
}

// IsLabelTruthy reports whether a label called name exists and its value is
// not "false".
func (n *Note) IsLabelTruthy(name string) bool {
	labels := n.Attributes(models.AttributeLabel, name)
	return len(labels) > 0 && labels[0].Value() != "false"
}

// RelationTarget returns the target of the first resolved relation called
// name, or nil.
func (n *Note) RelationTarget(name string) *Note {
	relations := n.Attributes(models.AttributeRelation, name)
	if len(relations) == 0 {
		return nil
	}
	return relations[0].TargetNote()
}

func (n *Note) OwnedRelationTarget(name string) *Note {
	relations := n.OwnedAttributes(models.AttributeRelation, name)
	if len(relations) == 0 {
		return nil
	}
	return relations[0].TargetNote()
}

// IsArchived reports whether the note carries an archived label, owned or
// resolved.
func (n *Note) IsArchived() bool {
	return n.HasLabel(labelArchived)
}

func (n *Note) isArchived() bool {
	return len(filterAttributes(n.resolveAttributes(nil).value, models.AttributeLabel, labelArchived)) > 0
}

// AddLabel creates a new label on the note.
func (n *Note) AddLabel(ctx context.Context, name, value string, inheritable bool) (*Attribute, error) {
	return n.addAttribute(ctx, models.AttributeLabel, name, value, inheritable)
}

// AddRelation creates a new relation from the note to targetNoteID.
func (n *Note) AddRelation(ctx context.Context, name, targetNoteID string, inheritable bool) (*Attribute, error) {
	return n.addAttribute(ctx, models.AttributeRelation, name, targetNoteID, inheritable)
}

func (n *Note) addAttribute(ctx context.Context, typ models.AttributeType, name, value string, inheritable bool) (*Attribute, error) {
	attr := n.b.NewAttribute(models.Attribute{
		NoteID:        n.ID(),
		Type:          typ,
		Name:          name,
		Value:         value,
		IsInheritable: inheritable,
	})
	if err := attr.Save(ctx); err != nil {
		return nil, err
	}
	return attr, nil
}

// SetLabel updates the value of the first owned label called name, or
// creates the label.
func (n *Note) SetLabel(ctx context.Context, name, value string) error {
	return n.setAttribute(ctx, models.AttributeLabel, name, value)
}

// SetRelation points the first owned relation called name at targetNoteID,
// or creates the relation.
func (n *Note) SetRelation(ctx context.Context, name, targetNoteID string) error {
	return n.setAttribute(ctx, models.AttributeRelation, name, targetNoteID)
}

func (n *Note) setAttribute(ctx context.Context, typ models.AttributeType, name, value string) error {
	existing := n.OwnedAttributes(typ, name)
	if len(existing) == 0 {
		_, err := n.addAttribute(ctx, typ, name, value, false)
		return err
	}

	attr := existing[0]
	if attr.Value() == value {
		return nil
	}
	attr.Update(func(row *models.Attribute) { row.Value = value })
	return attr.Save(ctx)
}

// RemoveLabel deletes the owned labels called name. When value is given
// only labels with that value are removed.
func (n *Note) RemoveLabel(ctx context.Context, name string, value ...string) error {
	return n.removeAttribute(ctx, models.AttributeLabel, name, value)
}

func (n *Note) RemoveRelation(ctx context.Context, name string, value ...string) error {
	return n.removeAttribute(ctx, models.AttributeRelation, name, value)
}

func (n *Note) removeAttribute(ctx context.Context, typ models.AttributeType, name string, value []string) error {
	for _, attr := range n.OwnedAttributes(typ, name) {
		if len(value) > 0 && attr.Value() != value[0] {
			continue
		}
		if err := attr.MarkAsDeleted(ctx, ""); err != nil {
			return err
		}
	}
	return nil
}

// ToggleLabel adds the label when enabled and it is not resolved yet, and
// removes the owned label otherwise.
func (n *Note) ToggleLabel(ctx context.Context, enabled bool, name, value string) error {
	if !enabled {
		return n.RemoveLabel(ctx, name, value)
	}
	for _, a := range n.Attributes(models.AttributeLabel, name) {
		if a.Value() == value {
			return nil
		}
	}
	_, err := n.AddLabel(ctx, name, value, false)
	return err
}
