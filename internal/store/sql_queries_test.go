// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-canvas-sync/internal/config"
	"github.com/MKhiriev/go-canvas-sync/models"
)

func Test_buildLoadRoomQuery_Placeholders(t *testing.T) {
	tests := []struct {
		dialect     string
		placeholder string
	}{
		{dialect: config.DriverPostgres, placeholder: "room = $1"},
		{dialect: config.DriverSQLite, placeholder: "room = ?"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			query, args, err := buildLoadRoomQuery(statementBuilder(tt.dialect), "r1")
			require.NoError(t, err)

			require.Equal(t, []any{"r1"}, args)
			q := strings.ToLower(query)
			assert.Contains(t, q, "from room_documents")
			assert.Contains(t, q, "order by slot")
			assert.Contains(t, query, tt.placeholder)
			for _, col := range roomDocumentColumns {
				assert.Contains(t, q, col)
			}
		})
	}
}

func Test_buildUpsertEntryQuery(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	entry := models.DocumentEntry{
		Room:      "r1",
		Key:       models.CanvasDataKey,
		Value:     json.RawMessage(`{"objects":[]}`),
		Version:   7,
		Origin:    "client-a",
		UpdatedAt: at,
	}

	query, args, err := buildUpsertEntryQuery(statementBuilder(config.DriverPostgres), entry)
	require.NoError(t, err)

	assert.Equal(t, []any{"r1", models.CanvasDataKey, `{"objects":[]}`, int64(7), "client-a", at.UTC()}, args)
	q := strings.ToLower(query)
	assert.True(t, strings.HasPrefix(q, "insert into room_documents"))
	assert.Contains(t, q, "on conflict (room, slot) do update")
	assert.Contains(t, q, "room_documents.version < excluded.version")
	assert.Contains(t, query, "$6")
}

func Test_buildTemplateQueries(t *testing.T) {
	b := statementBuilder(config.DriverSQLite)

	query, args, err := buildListTemplatesQuery(b)
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Contains(t, strings.ToLower(query), "order by created_at desc, id")

	query, args, err = buildGetTemplateQuery(b, "t1")
	require.NoError(t, err)
	assert.Equal(t, []any{"t1"}, args)
	assert.Contains(t, query, "WHERE id = ?")

	tpl := models.Template{ID: "t1", Name: "n", CanvasData: models.SceneState(`{}`), CreatedAt: time.Unix(0, 0)}
	query, args, err = buildInsertTemplateQuery(b, tpl)
	require.NoError(t, err)
	require.Len(t, args, len(templateColumns))
	assert.Equal(t, "{}", args[4])
	assert.Contains(t, strings.ToLower(query), "insert into templates")

	query, args, err = buildDeleteTemplateQuery(b, "t1")
	require.NoError(t, err)
	assert.Equal(t, []any{"t1"}, args)
	assert.Contains(t, strings.ToLower(query), "delete from templates")
}
