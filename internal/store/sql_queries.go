// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-canvas-sync/models"
)

const (
	roomDocumentsTable = "room_documents"
	templatesTable     = "templates"

	// newer versions only, so a late flush never rolls a slot back
	upsertEntrySuffix = `ON CONFLICT (room, slot) DO UPDATE SET
		value      = excluded.value,
		version    = excluded.version,
		origin     = excluded.origin,
		updated_at = excluded.updated_at
	WHERE room_documents.version < excluded.version`
)

var (
	roomDocumentColumns = []string{"room", "slot", "value", "version", "origin", "updated_at"}
	templateColumns     = []string{"id", "name", "description", "thumbnail", "canvas_data", "created_at"}
)

func buildLoadRoomQuery(b squirrel.StatementBuilderType, room string) (string, []any, error) {
	return b.Select(roomDocumentColumns...).
		From(roomDocumentsTable).
		Where(squirrel.Eq{"room": room}).
		OrderBy("slot").
		ToSql()
}

func buildUpsertEntryQuery(b squirrel.StatementBuilderType, entry models.DocumentEntry) (string, []any, error) {
	return b.Insert(roomDocumentsTable).
		Columns(roomDocumentColumns...).
		Values(entry.Room, entry.Key, string(entry.Value), entry.Version, entry.Origin, entry.UpdatedAt.UTC()).
		Suffix(upsertEntrySuffix).
		ToSql()
}

func buildListTemplatesQuery(b squirrel.StatementBuilderType) (string, []any, error) {
	return b.Select(templateColumns...).
		From(templatesTable).
		OrderBy("created_at DESC", "id").
		ToSql()
}

func buildGetTemplateQuery(b squirrel.StatementBuilderType, id string) (string, []any, error) {
	return b.Select(templateColumns...).
		From(templatesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

func buildInsertTemplateQuery(b squirrel.StatementBuilderType, t models.Template) (string, []any, error) {
	return b.Insert(templatesTable).
		Columns(templateColumns...).
		Values(t.ID, t.Name, t.Description, t.Thumbnail, string(t.CanvasData), t.CreatedAt.UTC()).
		ToSql()
}

func buildDeleteTemplateQuery(b squirrel.StatementBuilderType, id string) (string, []any, error) {
	return b.Delete(templatesTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}
