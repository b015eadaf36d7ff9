// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/MKhiriev/go-note-keeper/models"
)

// MemoryStore is an in-process [Store]. Transactions are serialised and
// rolled back by restoring a copy of the tables taken when the outermost
// transaction began.
type MemoryStore struct {
	txMu sync.Mutex

	mu      sync.RWMutex
	rows    map[models.EntityName]map[string]models.Record
	changes map[string]models.EntityChange
}

var _ Store = (*MemoryStore)(nil)

type memoryTxKey struct{}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		rows:    make(map[models.EntityName]map[string]models.Record),
		changes: make(map[string]models.EntityChange),
	}
	for name := range tables {
		s.rows[name] = make(map[string]models.Record)
	}
	return s
}

// Transactional implements [Store].
func (s *MemoryStore) Transactional(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(memoryTxKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	rowsBackup, changesBackup := s.backup()

	if err := fn(context.WithValue(ctx, memoryTxKey{}, true)); err != nil {
		s.mu.Lock()
		s.rows, s.changes = rowsBackup, changesBackup
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *MemoryStore) backup() (map[models.EntityName]map[string]models.Record, map[string]models.EntityChange) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make(map[models.EntityName]map[string]models.Record, len(s.rows))
	for name, table := range s.rows {
		copied := make(map[string]models.Record, len(table))
		for id, rec := range table {
			copied[id] = rec.Clone()
		}
		rows[name] = copied
	}
	return rows, maps.Clone(s.changes)
}

// LoadSnapshot implements [Store].
func (s *MemoryStore) LoadSnapshot(_ context.Context) (models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alive := func(name models.EntityName) []models.Record {
		out := make([]models.Record, 0, len(s.rows[name]))
		for _, id := range slices.Sorted(maps.Keys(s.rows[name])) {
			rec := s.rows[name][id]
			if name != models.EntityOptions && rec.Bool("is_deleted") {
				continue
			}
			out = append(out, rec.Clone())
		}
		return out
	}

	return models.Snapshot{
		Notes:       mapRecords(alive(models.EntityNotes), models.NoteFromRecord),
		Branches:    mapRecords(alive(models.EntityBranches), models.BranchFromRecord),
		Attributes:  mapRecords(alive(models.EntityAttributes), models.AttributeFromRecord),
		Options:     mapRecords(alive(models.EntityOptions), models.OptionFromRecord),
		EtapiTokens: mapRecords(alive(models.EntityEtapiTokens), models.EtapiTokenFromRecord),
	}, nil
}

// Upsert implements [Store].
func (s *MemoryStore) Upsert(_ context.Context, table models.EntityName, record models.Record) error {
	info, err := lookupTable(table)
	if err != nil {
		return fmt.Errorf("%w: %s", err, table)
	}
	id := record.String(info.key)
	if id == "" {
		return ErrEmptyRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.rows[table][id]; ok {
		existing.Merge(record)
		return nil
	}
	s.rows[table][id] = record.Clone()
	return nil
}

// MarkDeleted implements [Store].
func (s *MemoryStore) MarkDeleted(_ context.Context, table models.EntityName, id, deleteID, utcDateModified, dateModified string) error {
	info, err := lookupTable(table)
	if err != nil {
		return fmt.Errorf("%w: %s", err, table)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.rows[table][id]
	if !ok {
		return nil
	}
	rec["is_deleted"] = int64(1)
	rec["utc_date_modified"] = utcDateModified
	if info.hasDeleteID {
		rec["delete_id"] = models.Nullable(deleteID)
	}
	if info.hasDateModified {
		rec["date_modified"] = dateModified
	}
	return nil
}

func (s *MemoryStore) get(table models.EntityName, id string) (models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.rows[table][id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

// filter returns copies of the rows of table matching keep, ordered by
// primary key.
func (s *MemoryStore) filter(table models.EntityName, keep func(models.Record) bool) []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Record, 0)
	for _, id := range slices.Sorted(maps.Keys(s.rows[table])) {
		if rec := s.rows[table][id]; keep(rec) {
			out = append(out, rec.Clone())
		}
	}
	return out
}

func (s *MemoryStore) withContentLength(rec models.Record) models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if blob, ok := s.rows[models.EntityBlobs][rec.String("blob_id")]; ok {
		rec["content_length"] = int64(len(blob.Bytes("content")))
	}
	return rec
}

// BlobExists implements [BlobStore].
func (s *MemoryStore) BlobExists(_ context.Context, blobID string) (bool, error) {
	_, err := s.get(models.EntityBlobs, blobID)
	return err == nil, nil
}

// GetBlob implements [BlobStore].
func (s *MemoryStore) GetBlob(_ context.Context, blobID string) (models.Blob, error) {
	rec, err := s.get(models.EntityBlobs, blobID)
	if err != nil {
		return models.Blob{}, err
	}
	return models.BlobFromRecord(rec), nil
}

// InsertBlob implements [BlobStore].
func (s *MemoryStore) InsertBlob(_ context.Context, blob models.Blob) error {
	if blob.BlobID == "" {
		return ErrEmptyRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[models.EntityBlobs][blob.BlobID]; !ok {
		rec := blob.Record()
		rec["content"] = slices.Clone(blob.Content)
		s.rows[models.EntityBlobs][blob.BlobID] = rec
	}
	return nil
}

// CountBlobReferences implements [BlobStore].
func (s *MemoryStore) CountBlobReferences(_ context.Context, blobID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, table := range []models.EntityName{models.EntityNotes, models.EntityAttachments, models.EntityRevisions} {
		for _, rec := range s.rows[table] {
			if rec.String("blob_id") == blobID {
				total++
			}
		}
	}
	return total, nil
}

// DeleteBlob implements [BlobStore].
func (s *MemoryStore) DeleteBlob(_ context.Context, blobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rows[models.EntityBlobs], blobID)
	return nil
}

func changeKey(entityName models.EntityName, entityID string) string {
	return string(entityName) + "/" + entityID
}

// PutEntityChange implements [EntityChangeStore].
func (s *MemoryStore) PutEntityChange(_ context.Context, change models.EntityChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.changes[changeKey(change.EntityName, change.EntityID)] = change
	return nil
}

// GetEntityChange implements [EntityChangeStore].
func (s *MemoryStore) GetEntityChange(_ context.Context, entityName models.EntityName, entityID string) (models.EntityChange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	change, ok := s.changes[changeKey(entityName, entityID)]
	if !ok {
		return models.EntityChange{}, ErrNotFound
	}
	return change, nil
}

// DeleteEntityChanges implements [EntityChangeStore].
func (s *MemoryStore) DeleteEntityChanges(_ context.Context, entityName models.EntityName, entityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.changes, changeKey(entityName, entityID))
	return nil
}

// GetRevision implements [RevisionStore].
func (s *MemoryStore) GetRevision(_ context.Context, revisionID string) (models.Revision, error) {
	rec, err := s.get(models.EntityRevisions, revisionID)
	if err != nil {
		return models.Revision{}, err
	}
	return models.RevisionFromRecord(s.withContentLength(rec)), nil
}

// GetNoteRevisions implements [RevisionStore].
func (s *MemoryStore) GetNoteRevisions(_ context.Context, noteID string) ([]models.Revision, error) {
	recs := s.filter(models.EntityRevisions, func(r models.Record) bool {
		return r.String("note_id") == noteID
	})
	revisions := make([]models.Revision, 0, len(recs))
	for _, rec := range recs {
		revisions = append(revisions, models.RevisionFromRecord(s.withContentLength(rec)))
	}
	sort.SliceStable(revisions, func(i, j int) bool {
		return revisions[i].UTCDateCreated < revisions[j].UTCDateCreated
	})
	return revisions, nil
}

// EraseRevision implements [RevisionStore].
func (s *MemoryStore) EraseRevision(_ context.Context, revisionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rows[models.EntityRevisions], revisionID)
	return nil
}

// GetAttachment implements [AttachmentStore].
func (s *MemoryStore) GetAttachment(_ context.Context, attachmentID string) (models.Attachment, error) {
	rec, err := s.get(models.EntityAttachments, attachmentID)
	if err != nil {
		return models.Attachment{}, err
	}
	if rec.Bool("is_deleted") {
		return models.Attachment{}, ErrNotFound
	}
	return models.AttachmentFromRecord(s.withContentLength(rec)), nil
}

// GetOwnerAttachments implements [AttachmentStore].
func (s *MemoryStore) GetOwnerAttachments(_ context.Context, ownerID string) ([]models.Attachment, error) {
	recs := s.filter(models.EntityAttachments, func(r models.Record) bool {
		return r.String("owner_id") == ownerID && !r.Bool("is_deleted")
	})
	attachments := make([]models.Attachment, 0, len(recs))
	for _, rec := range recs {
		attachments = append(attachments, models.AttachmentFromRecord(s.withContentLength(rec)))
	}
	sort.SliceStable(attachments, func(i, j int) bool {
		return attachments[i].Position < attachments[j].Position
	})
	return attachments, nil
}

// GetAttachmentsScheduledForErasure implements [AttachmentStore].
func (s *MemoryStore) GetAttachmentsScheduledForErasure(_ context.Context, before string) ([]models.Attachment, error) {
	recs := s.filter(models.EntityAttachments, func(r models.Record) bool {
		since := r.String("utc_date_scheduled_for_erasure_since")
		return since != "" && since <= before
	})
	return mapRecords(recs, models.AttachmentFromRecord), nil
}

// EraseAttachment implements [AttachmentStore].
func (s *MemoryStore) EraseAttachment(_ context.Context, attachmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rows[models.EntityAttachments], attachmentID)
	return nil
}

// GetNote implements [UndeleteStore].
func (s *MemoryStore) GetNote(_ context.Context, noteID string) (models.Note, error) {
	rec, err := s.get(models.EntityNotes, noteID)
	if err != nil {
		return models.Note{}, err
	}
	return models.NoteFromRecord(rec), nil
}

// GetBranch implements [UndeleteStore].
func (s *MemoryStore) GetBranch(_ context.Context, branchID string) (models.Branch, error) {
	rec, err := s.get(models.EntityBranches, branchID)
	if err != nil {
		return models.Branch{}, err
	}
	return models.BranchFromRecord(rec), nil
}

// GetDeletedParentBranchIDs implements [UndeleteStore].
func (s *MemoryStore) GetDeletedParentBranchIDs(_ context.Context, noteID, deleteID string) ([]string, error) {
	recs := s.filter(models.EntityBranches, func(r models.Record) bool {
		return r.String("note_id") == noteID && r.Bool("is_deleted") && r.String("delete_id") == deleteID
	})

	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		parent, err := s.get(models.EntityNotes, rec.String("parent_note_id"))
		if err != nil || parent.Bool("is_deleted") {
			continue
		}
		ids = append(ids, rec.String("branch_id"))
	}
	return ids, nil
}

// GetDeletedChildBranchIDs implements [UndeleteStore].
func (s *MemoryStore) GetDeletedChildBranchIDs(_ context.Context, parentNoteID, deleteID string) ([]string, error) {
	recs := s.filter(models.EntityBranches, func(r models.Record) bool {
		return r.String("parent_note_id") == parentNoteID && r.Bool("is_deleted") && r.String("delete_id") == deleteID
	})
	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.String("branch_id"))
	}
	return ids, nil
}

// GetDeletedAttributes implements [UndeleteStore].
func (s *MemoryStore) GetDeletedAttributes(_ context.Context, noteID, deleteID string) ([]models.Attribute, error) {
	recs := s.filter(models.EntityAttributes, func(r models.Record) bool {
		if !r.Bool("is_deleted") || r.String("delete_id") != deleteID {
			return false
		}
		return r.String("note_id") == noteID ||
			(r.String("type") == string(models.AttributeRelation) && r.String("value") == noteID)
	})
	return mapRecords(recs, models.AttributeFromRecord), nil
}

// GetDeletedAttachments implements [UndeleteStore].
func (s *MemoryStore) GetDeletedAttachments(_ context.Context, ownerID, deleteID string) ([]models.Attachment, error) {
	recs := s.filter(models.EntityAttachments, func(r models.Record) bool {
		return r.String("owner_id") == ownerID && r.Bool("is_deleted") && r.String("delete_id") == deleteID
	})
	return mapRecords(recs, models.AttachmentFromRecord), nil
}
