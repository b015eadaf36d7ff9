// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package becca holds the in-memory note graph. Every read path consults it
// and every entity mutation flows through it to the store.
//
// Notes, branches, attributes, options and etapi tokens live in id maps;
// parent/child edges, owned attributes and incoming relations live in edge
// tables keyed by note id, so entities that arrive out of order (sync,
// import) are linked as soon as both ends exist. Revisions and attachments
// are loaded from the store per request.
package becca

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

// Becca is the graph index.
//
// mu guards the id maps, the edge tables and the rows held by the entities.
// Derived caches on notes are swapped atomically; readers fill them while
// holding the read lock and writers clear them under the write lock.
type Becca struct {
	mu sync.RWMutex

	store     store.Store
	session   crypto.ProtectedSession
	listeners []ChangeListener
	now       func() time.Time

	hiddenRootID string
	weakParents  map[string]struct{}

	notes       map[string]*Note
	branches    map[string]*Branch
	attributes  map[string]*Attribute
	options     map[string]*Option
	etapiTokens map[string]*EtapiToken

	childParentToBranch map[string]*Branch
	parentBranches      map[string][]*Branch
	childBranches       map[string][]*Branch
	ownedAttributes     map[string][]*Attribute
	targetRelations     map[string][]*Attribute
	attributeIndex      map[string][]*Attribute

	allNoteSet atomic.Pointer[NoteSet]
	loaded     bool
	// loading skips per-entity cache invalidation while Load fills the graph.
	loading bool
}

// GraphOption configures a [Becca].
type GraphOption func(*Becca)

// WithProtectedSession sets the encryption collaborator. Without it no
// protected session is ever available.
func WithProtectedSession(session crypto.ProtectedSession) GraphOption {
	return func(b *Becca) {
		b.session = session
	}
}

// WithHiddenRootID sets the root of the hidden maintenance subtree.
func WithHiddenRootID(id string) GraphOption {
	return func(b *Becca) {
		if id != "" {
			b.hiddenRootID = id
		}
	}
}

// WithWeakBranchParents sets the parents whose branches do not keep a note
// alive.
func WithWeakBranchParents(ids ...string) GraphOption {
	return func(b *Becca) {
		b.weakParents = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			b.weakParents[id] = struct{}{}
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) GraphOption {
	return func(b *Becca) {
		b.now = now
	}
}

// WithChangeListener registers a listener for entity events.
func WithChangeListener(l ChangeListener) GraphOption {
	return func(b *Becca) {
		b.listeners = append(b.listeners, l)
	}
}

// New returns an empty, not yet loaded graph over st.
func New(st store.Store, opts ...GraphOption) *Becca {
	b := &Becca{
		store:        st,
		session:      crypto.NewSession(),
		now:          time.Now,
		hiddenRootID: models.HiddenNoteID,
		weakParents:  map[string]struct{}{"_share": {}, "_lbBookmarks": {}},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.resetLocked()
	return b
}

// AddChangeListener registers l for every following entity event.
func (b *Becca) AddChangeListener(l ChangeListener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = append(slices.Clip(b.listeners), l)
}

// Reset clears every map and cache and marks the graph as not loaded.
func (b *Becca) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.resetLocked()
}

func (b *Becca) resetLocked() {
	b.notes = make(map[string]*Note)
	b.branches = make(map[string]*Branch)
	b.attributes = make(map[string]*Attribute)
	b.options = make(map[string]*Option)
	b.etapiTokens = make(map[string]*EtapiToken)

	b.childParentToBranch = make(map[string]*Branch)
	b.parentBranches = make(map[string][]*Branch)
	b.childBranches = make(map[string][]*Branch)
	b.ownedAttributes = make(map[string][]*Attribute)
	b.targetRelations = make(map[string][]*Attribute)
	b.attributeIndex = make(map[string][]*Attribute)

	b.allNoteSet.Store(nil)
	b.loaded = false
}

// Loaded reports whether [Becca.Load] has completed since the last reset.
func (b *Becca) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.loaded
}

// Transactional runs fn in one store transaction. Entity events raised
// inside fn are held until the outermost call commits and are dropped when
// it fails. Nested calls join the enclosing transaction.
func (b *Becca) Transactional(ctx context.Context, fn func(ctx context.Context) error) error {
	if eventBufferFrom(ctx) != nil {
		return b.store.Transactional(ctx, fn)
	}

	buf := &eventBuffer{}
	err := b.store.Transactional(context.WithValue(ctx, eventBufferKey, buf), func(ctx context.Context) error {
		// retried attempts start over
		buf.events = buf.events[:0]
		return fn(ctx)
	})
	if err != nil {
		return err
	}

	for _, event := range buf.events {
		b.deliver(ctx, event)
	}
	return nil
}

// Session returns the encryption collaborator.
func (b *Becca) Session() crypto.ProtectedSession {
	return b.session
}

// HiddenRootID returns the root of the hidden subtree.
func (b *Becca) HiddenRootID() string {
	return b.hiddenRootID
}

// IsWeakParent reports whether branches under parentNoteID are weak.
func (b *Becca) IsWeakParent(parentNoteID string) bool {
	_, ok := b.weakParents[parentNoteID]
	return ok
}

// GetNote returns the note with id, or nil. Skeleton notes are returned too.
func (b *Becca) GetNote(id string) *Note {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.notes[id]
}

// GetNoteOrThrow is [Becca.GetNote] returning a [NotFoundError].
func (b *Becca) GetNoteOrThrow(id string) (*Note, error) {
	if n := b.GetNote(id); n != nil {
		return n, nil
	}
	return nil, notFound(models.EntityNotes, id)
}

// GetNotes returns the notes with the given ids in order. Missing ids fail
// unless ignoreMissing is set, in which case they are skipped.
func (b *Becca) GetNotes(ids []string, ignoreMissing bool) ([]*Note, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*Note, 0, len(ids))
	for _, id := range ids {
		n, ok := b.notes[id]
		if !ok {
			if ignoreMissing {
				continue
			}
			return nil, notFound(models.EntityNotes, id)
		}
		out = append(out, n)
	}
	return out, nil
}

// RootNote returns the root note, or nil before it exists.
func (b *Becca) RootNote() *Note {
	return b.GetNote(models.RootNoteID)
}

func (b *Becca) GetBranch(id string) *Branch {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.branches[id]
}

func (b *Becca) GetBranchOrThrow(id string) (*Branch, error) {
	if br := b.GetBranch(id); br != nil {
		return br, nil
	}
	return nil, notFound(models.EntityBranches, id)
}

// GetBranchFromChildAndParent looks up the edge between two notes.
func (b *Becca) GetBranchFromChildAndParent(childNoteID, parentNoteID string) *Branch {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.childParentToBranch[childParentKey(childNoteID, parentNoteID)]
}

func childParentKey(childNoteID, parentNoteID string) string {
	return childNoteID + "-" + parentNoteID
}

func (b *Becca) GetAttribute(id string) *Attribute {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.attributes[id]
}

func (b *Becca) GetAttributeOrThrow(id string) (*Attribute, error) {
	if a := b.GetAttribute(id); a != nil {
		return a, nil
	}
	return nil, notFound(models.EntityAttributes, id)
}

func (b *Becca) GetOption(name string) *Option {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.options[name]
}

func (b *Becca) GetOptionOrThrow(name string) (*Option, error) {
	if o := b.GetOption(name); o != nil {
		return o, nil
	}
	return nil, notFound(models.EntityOptions, name)
}

// Options returns every option ordered by name.
func (b *Becca) Options() []*Option {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*Option, 0, len(b.options))
	for _, name := range sortedKeys(b.options) {
		out = append(out, b.options[name])
	}
	return out
}

func (b *Becca) GetEtapiToken(id string) *EtapiToken {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.etapiTokens[id]
}

func (b *Becca) GetEtapiTokenOrThrow(id string) (*EtapiToken, error) {
	if t := b.GetEtapiToken(id); t != nil {
		return t, nil
	}
	return nil, notFound(models.EntityEtapiTokens, id)
}

// EtapiTokens returns every live token ordered by id.
func (b *Becca) EtapiTokens() []*EtapiToken {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]*EtapiToken, 0, len(b.etapiTokens))
	for _, id := range sortedKeys(b.etapiTokens) {
		out = append(out, b.etapiTokens[id])
	}
	return out
}

// GetRevision loads a revision from the store. It returns nil when the
// revision does not exist.
func (b *Becca) GetRevision(ctx context.Context, id string) (*Revision, error) {
	row, err := b.store.GetRevision(ctx, id)
	if err != nil {
		if isStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return b.revisionFromRow(ctx, row), nil
}

func (b *Becca) GetRevisionOrThrow(ctx context.Context, id string) (*Revision, error) {
	rev, err := b.GetRevision(ctx, id)
	if err != nil {
		return nil, err
	}
	if rev == nil {
		return nil, notFound(models.EntityRevisions, id)
	}
	return rev, nil
}

// GetAttachment loads a live attachment from the store. It returns nil when
// the attachment does not exist or is deleted.
func (b *Becca) GetAttachment(ctx context.Context, id string) (*Attachment, error) {
	row, err := b.store.GetAttachment(ctx, id)
	if err != nil {
		if isStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return b.AttachmentFromRow(ctx, row), nil
}

func (b *Becca) GetAttachmentOrThrow(ctx context.Context, id string) (*Attachment, error) {
	att, err := b.GetAttachment(ctx, id)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, notFound(models.EntityAttachments, id)
	}
	return att, nil
}

// GetEntity resolves an entity by kind name. Revisions and attachments come
// from the store, the other kinds from the in-memory maps. A missing id
// yields nil; an unknown kind yields [ErrUnknownEntity].
func (b *Becca) GetEntity(ctx context.Context, entityName models.EntityName, id string) (Entity, error) {
	if id == "" {
		return nil, nil
	}

	switch entityName {
	case models.EntityNotes:
		if n := b.GetNote(id); n != nil {
			return n, nil
		}
	case models.EntityBranches:
		if br := b.GetBranch(id); br != nil {
			return br, nil
		}
	case models.EntityAttributes:
		if a := b.GetAttribute(id); a != nil {
			return a, nil
		}
	case models.EntityOptions:
		if o := b.GetOption(id); o != nil {
			return o, nil
		}
	case models.EntityEtapiTokens:
		if t := b.GetEtapiToken(id); t != nil {
			return t, nil
		}
	case models.EntityRevisions:
		rev, err := b.GetRevision(ctx, id)
		if err != nil || rev == nil {
			return nil, err
		}
		return rev, nil
	case models.EntityAttachments:
		att, err := b.GetAttachment(ctx, id)
		if err != nil || att == nil {
			return nil, err
		}
		return att, nil
	default:
		return nil, ErrUnknownEntity
	}
	return nil, nil
}

// GetBlob returns a blob row as stored.
func (b *Becca) GetBlob(ctx context.Context, blobID string) (models.Blob, error) {
	blob, err := b.store.GetBlob(ctx, blobID)
	if err != nil {
		if isStoreNotFound(err) {
			return models.Blob{}, notFound(models.EntityBlobs, blobID)
		}
		return models.Blob{}, err
	}
	return blob, nil
}

func attributeIndexKey(typ models.AttributeType, name string) string {
	return string(typ) + "-" + strings.ToLower(name)
}

// FindAttributes returns every attribute of the given type whose name
// matches case-insensitively.
func (b *Becca) FindAttributes(typ models.AttributeType, name string) []*Attribute {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return slices.Clone(b.attributeIndex[attributeIndexKey(typ, name)])
}

// FindAttributesWithPrefix returns every attribute of the given type whose
// lowercased name starts with the lowercased prefix.
func (b *Becca) FindAttributesWithPrefix(typ models.AttributeType, prefix string) []*Attribute {
	b.mu.RLock()
	defer b.mu.RUnlock()

	keyPrefix := attributeIndexKey(typ, prefix)
	var out []*Attribute
	for _, key := range sortedKeys(b.attributeIndex) {
		if strings.HasPrefix(key, keyPrefix) {
			out = append(out, b.attributeIndex[key]...)
		}
	}
	return out
}

// AllNoteSet returns every materialized note. The set is cached until a note
// is added or removed and must not be modified.
func (b *Becca) AllNoteSet() *NoteSet {
	if set := b.allNoteSet.Load(); set != nil {
		return set
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if set := b.allNoteSet.Load(); set != nil {
		return set
	}

	set := NewNoteSet()
	for _, id := range sortedKeys(b.notes) {
		if n := b.notes[id]; n.state == NoteMaterialized {
			set.Add(n)
		}
	}
	b.allNoteSet.Store(set)
	return set
}

func (b *Becca) invalidate(n *Note) {
	if b.loading {
		return
	}
	n.invalidateSubTree()
}

func (b *Becca) dirtyNoteSetCache() {
	b.allNoteSet.Store(nil)
}

// ensureNote returns the note with id, creating a skeleton when it is
// missing.
func (b *Becca) ensureNote(id string) *Note {
	if n, ok := b.notes[id]; ok {
		return n
	}
	n := &Note{b: b, state: NoteSkeleton, row: models.Note{NoteID: id}}
	b.notes[id] = n
	return n
}

// addNote registers n, replacing any note with the same id. Edges are keyed
// by id, so a replaced skeleton keeps its branches and attributes.
func (b *Becca) addNote(n *Note) {
	b.notes[n.row.NoteID] = n
	b.dirtyNoteSetCache()
	b.invalidate(n)
}

func (b *Becca) removeNote(n *Note) {
	id := n.row.NoteID
	if b.notes[id] == n {
		delete(b.notes, id)
	}
	b.dirtyNoteSetCache()
	b.invalidate(n)
}

func (b *Becca) addBranch(br *Branch) {
	if old, ok := b.branches[br.row.BranchID]; ok {
		b.unlinkBranch(old)
	}

	id := br.row.BranchID
	b.branches[id] = br
	b.childParentToBranch[childParentKey(br.row.NoteID, br.row.ParentNoteID)] = br

	child := b.ensureNote(br.row.NoteID)
	b.parentBranches[br.row.NoteID] = append(b.parentBranches[br.row.NoteID], br)

	if br.row.NoteID != models.RootNoteID {
		b.ensureNote(br.row.ParentNoteID)
		children := append(b.childBranches[br.row.ParentNoteID], br)
		sortBranches(children)
		b.childBranches[br.row.ParentNoteID] = children
	}

	b.dirtyNoteSetCache()
	b.invalidate(child)
}

func (b *Becca) unlinkBranch(br *Branch) {
	id := br.row.BranchID
	if b.branches[id] == br {
		delete(b.branches, id)
	}
	key := childParentKey(br.row.NoteID, br.row.ParentNoteID)
	if b.childParentToBranch[key] == br {
		delete(b.childParentToBranch, key)
	}
	b.parentBranches[br.row.NoteID] = without(b.parentBranches[br.row.NoteID], br)
	b.childBranches[br.row.ParentNoteID] = without(b.childBranches[br.row.ParentNoteID], br)

	if child, ok := b.notes[br.row.NoteID]; ok {
		b.invalidate(child)
	}
}

func (b *Becca) addAttribute(a *Attribute) {
	if old, ok := b.attributes[a.row.AttributeID]; ok {
		b.unlinkAttribute(old)
	}

	b.attributes[a.row.AttributeID] = a
	owner := b.ensureNote(a.row.NoteID)

	owned := append(b.ownedAttributes[a.row.NoteID], a)
	sortAttributes(owned)
	b.ownedAttributes[a.row.NoteID] = owned

	a.indexKey = attributeIndexKey(a.row.Type, a.row.Name)
	b.attributeIndex[a.indexKey] = append(b.attributeIndex[a.indexKey], a)

	a.linkedTarget = ""
	if a.row.Type == models.AttributeRelation && a.row.Value != "" {
		a.linkedTarget = a.row.Value
		b.targetRelations[a.linkedTarget] = append(b.targetRelations[a.linkedTarget], a)
	}

	b.dirtyNoteSetCache()
	b.invalidate(owner)
}

func (b *Becca) unlinkAttribute(a *Attribute) {
	if b.attributes[a.row.AttributeID] == a {
		delete(b.attributes, a.row.AttributeID)
	}
	b.ownedAttributes[a.row.NoteID] = without(b.ownedAttributes[a.row.NoteID], a)

	if a.indexKey != "" {
		b.attributeIndex[a.indexKey] = without(b.attributeIndex[a.indexKey], a)
		if len(b.attributeIndex[a.indexKey]) == 0 {
			delete(b.attributeIndex, a.indexKey)
		}
	}
	if a.linkedTarget != "" {
		b.targetRelations[a.linkedTarget] = without(b.targetRelations[a.linkedTarget], a)
	}

	if owner, ok := b.notes[a.row.NoteID]; ok {
		b.invalidate(owner)
	}
}

// without returns s minus e. The result never shares its backing array
// with s, so slices handed out earlier stay intact.
func without[T comparable](s []T, e T) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if v != e {
			out = append(out, v)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func isStoreNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
