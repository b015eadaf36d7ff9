// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-note-keeper/models"
)

// queryBuilder renders every statement of the SQL store. The placeholder
// format is the only difference between the sqlite and postgres dialects.
type queryBuilder struct {
	sb sq.StatementBuilderType
}

func newQueryBuilder(placeholder sq.PlaceholderFormat) queryBuilder {
	return queryBuilder{sb: sq.StatementBuilder.PlaceholderFormat(placeholder)}
}

// upsert renders INSERT ... ON CONFLICT (key) DO UPDATE for the columns present
// in record.
func (q queryBuilder) upsert(table, key string, record models.Record) (string, []any, error) {
	cols := record.Columns()
	values := make([]any, 0, len(cols))
	updates := make([]string, 0, len(cols))
	for _, col := range cols {
		values = append(values, record[col])
		if col != key {
			updates = append(updates, col+" = excluded."+col)
		}
	}

	suffix := "ON CONFLICT (" + key + ") DO NOTHING"
	if len(updates) > 0 {
		suffix = "ON CONFLICT (" + key + ") DO UPDATE SET " + strings.Join(updates, ", ")
	}

	return q.sb.Insert(table).Columns(cols...).Values(values...).Suffix(suffix).ToSql()
}

func (q queryBuilder) markDeleted(table string, info tableInfo, id, deleteID, utcDateModified, dateModified string) (string, []any, error) {
	upd := q.sb.Update(table).
		Set("is_deleted", 1).
		Set("utc_date_modified", utcDateModified)
	if info.hasDeleteID {
		upd = upd.Set("delete_id", models.Nullable(deleteID))
	}
	if info.hasDateModified {
		upd = upd.Set("date_modified", dateModified)
	}
	return upd.Where(sq.Eq{info.key: id}).ToSql()
}

func (q queryBuilder) selectAlive(table string, info tableInfo) (string, []any, error) {
	sel := q.sb.Select(info.columns...).From(table)
	if table != string(models.EntityOptions) {
		sel = sel.Where(sq.Eq{"is_deleted": 0})
	}
	return sel.ToSql()
}

func (q queryBuilder) selectByKey(table string, info tableInfo, id string) (string, []any, error) {
	return q.sb.Select(info.columns...).From(table).Where(sq.Eq{info.key: id}).ToSql()
}

func (q queryBuilder) blobExists(blobID string) (string, []any, error) {
	return q.sb.Select("1").From("blobs").Where(sq.Eq{"blob_id": blobID}).Limit(1).ToSql()
}

func (q queryBuilder) getBlob(blobID string) (string, []any, error) {
	return q.sb.Select(tables[models.EntityBlobs].columns...).From("blobs").Where(sq.Eq{"blob_id": blobID}).ToSql()
}

// insertBlob never overwrites: equal ids imply equal content.
func (q queryBuilder) insertBlob(blob models.Blob) (string, []any, error) {
	return q.sb.Insert("blobs").
		Columns("blob_id", "content", "date_modified", "utc_date_modified").
		Values(blob.BlobID, blob.Content, blob.DateModified, blob.UTCDateModified).
		Suffix("ON CONFLICT (blob_id) DO NOTHING").
		ToSql()
}

func (q queryBuilder) countBlobReferences(table, blobID string) (string, []any, error) {
	return q.sb.Select("COUNT(*)").From(table).Where(sq.Eq{"blob_id": blobID}).ToSql()
}

func (q queryBuilder) deleteBlob(blobID string) (string, []any, error) {
	return q.sb.Delete("blobs").Where(sq.Eq{"blob_id": blobID}).ToSql()
}

func (q queryBuilder) putEntityChange(change models.EntityChange) (string, []any, error) {
	rec := change.Record()
	cols := rec.Columns()
	values := make([]any, 0, len(cols))
	for _, col := range cols {
		values = append(values, rec[col])
	}
	return q.sb.Insert(tableEntityChanges).Columns(cols...).Values(values...).
		Suffix("ON CONFLICT (entity_name, entity_id) DO UPDATE SET hash = excluded.hash, " +
			"is_erased = excluded.is_erased, is_synced = excluded.is_synced, utc_date_changed = excluded.utc_date_changed").
		ToSql()
}

func (q queryBuilder) getEntityChange(entityName models.EntityName, entityID string) (string, []any, error) {
	return q.sb.Select("entity_name", "entity_id", "hash", "is_erased", "is_synced", "utc_date_changed").
		From(tableEntityChanges).
		Where(sq.Eq{"entity_name": string(entityName), "entity_id": entityID}).
		ToSql()
}

func (q queryBuilder) deleteEntityChanges(entityName models.EntityName, entityID string) (string, []any, error) {
	return q.sb.Delete(tableEntityChanges).
		Where(sq.Eq{"entity_name": string(entityName), "entity_id": entityID}).
		ToSql()
}

func (q queryBuilder) selectRevisions() sq.SelectBuilder {
	cols := qualify("revisions", models.RevisionColumns)
	cols = append(cols, "LENGTH(blobs.content) AS content_length")
	return q.sb.Select(cols...).From("revisions").LeftJoin("blobs ON blobs.blob_id = revisions.blob_id")
}

func (q queryBuilder) getRevision(revisionID string) (string, []any, error) {
	return q.selectRevisions().Where(sq.Eq{"revisions.revision_id": revisionID}).ToSql()
}

func (q queryBuilder) getNoteRevisions(noteID string) (string, []any, error) {
	return q.selectRevisions().
		Where(sq.Eq{"revisions.note_id": noteID}).
		OrderBy("revisions.utc_date_created").
		ToSql()
}

func (q queryBuilder) deleteByKey(table, key, id string) (string, []any, error) {
	return q.sb.Delete(table).Where(sq.Eq{key: id}).ToSql()
}

func (q queryBuilder) selectAttachments() sq.SelectBuilder {
	cols := qualify("attachments", models.AttachmentColumns)
	cols = append(cols, "LENGTH(blobs.content) AS content_length")
	return q.sb.Select(cols...).From("attachments").LeftJoin("blobs ON blobs.blob_id = attachments.blob_id")
}

func (q queryBuilder) getAttachment(attachmentID string) (string, []any, error) {
	return q.selectAttachments().
		Where(sq.Eq{"attachments.attachment_id": attachmentID, "attachments.is_deleted": 0}).
		ToSql()
}

func (q queryBuilder) getOwnerAttachments(ownerID string) (string, []any, error) {
	return q.selectAttachments().
		Where(sq.Eq{"attachments.owner_id": ownerID, "attachments.is_deleted": 0}).
		OrderBy("attachments.position").
		ToSql()
}

func (q queryBuilder) getAttachmentsScheduledForErasure(before string) (string, []any, error) {
	return q.selectAttachments().
		Where(sq.And{
			sq.NotEq{"attachments.utc_date_scheduled_for_erasure_since": nil},
			sq.LtOrEq{"attachments.utc_date_scheduled_for_erasure_since": before},
		}).
		ToSql()
}

func (q queryBuilder) getDeletedParentBranchIDs(noteID, deleteID string) (string, []any, error) {
	return q.sb.Select("branches.branch_id").
		From("branches").
		Join("notes AS parent_note ON parent_note.note_id = branches.parent_note_id").
		Where(sq.Eq{
			"branches.note_id":       noteID,
			"branches.is_deleted":    1,
			"branches.delete_id":     deleteID,
			"parent_note.is_deleted": 0,
		}).
		ToSql()
}

func (q queryBuilder) getDeletedChildBranchIDs(parentNoteID, deleteID string) (string, []any, error) {
	return q.sb.Select("branch_id").
		From("branches").
		Where(sq.Eq{"parent_note_id": parentNoteID, "is_deleted": 1, "delete_id": deleteID}).
		ToSql()
}

func (q queryBuilder) getDeletedAttributes(noteID, deleteID string) (string, []any, error) {
	return q.sb.Select(models.AttributeColumns...).
		From("attributes").
		Where(sq.Eq{"is_deleted": 1, "delete_id": deleteID}).
		Where(sq.Or{
			sq.Eq{"note_id": noteID},
			sq.And{sq.Eq{"type": string(models.AttributeRelation)}, sq.Eq{"value": noteID}},
		}).
		ToSql()
}

func (q queryBuilder) getDeletedAttachments(ownerID, deleteID string) (string, []any, error) {
	return q.sb.Select(models.AttachmentColumns...).
		From("attachments").
		Where(sq.Eq{"owner_id": ownerID, "is_deleted": 1, "delete_id": deleteID}).
		ToSql()
}

func qualify(table string, cols []string) []string {
	out := make([]string, len(cols))
	for i, col := range cols {
		out[i] = table + "." + col
	}
	return out
}
