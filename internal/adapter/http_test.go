// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-canvas-sync/internal/config"
	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/models"
)

func newTestAdapter(t *testing.T, serverURL string) RelayAdapter {
	t.Helper()
	a, err := NewHTTPRelayAdapter(config.Adapter{HTTPAddress: serverURL, RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)
	return a
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "bare host", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "trailing slash", raw: "https://relay.example.com/", want: "https://relay.example.com"},
		{name: "spaces", raw: "  http://h:1  ", want: "http://h:1"},
		{name: "empty", raw: "", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPRelayAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPRelayAdapter(config.Adapter{}, logger.Nop())
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestListRooms_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/rooms", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.RoomsResponse{
			Rooms:  []models.RoomInfo{{Room: "a", Participants: 2, Slots: 1}},
			Length: 1,
		})
	}))
	defer srv.Close()

	rooms, err := newTestAdapter(t, srv.URL).ListRooms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.RoomInfo{{Room: "a", Participants: 2, Slots: 1}}, rooms)
}

func TestGetDocument_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rooms/my%20room/document", r.URL.EscapedPath())
		writeJSON(t, w, http.StatusOK, models.DocumentResponse{
			Room:    "my room",
			Entries: []models.DocumentEntry{{Room: "my room", Key: models.CanvasDataKey, Value: json.RawMessage(`{"objects":[]}`), Version: 3}},
		})
	}))
	defer srv.Close()

	doc, err := newTestAdapter(t, srv.URL).GetDocument(context.Background(), "my room")
	require.NoError(t, err)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, int64(3), doc.Entries[0].Version)
	assert.JSONEq(t, `{"objects":[]}`, string(doc.Entries[0].Value))
}

func TestGetDocument_EmptyRoom(t *testing.T) {
	_, err := newTestAdapter(t, "http://localhost:1").GetDocument(context.Background(), " ")
	assert.ErrorIs(t, err, ErrEmptyRoom)
}

func TestVersion_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.VersionResponse{Version: "1.0.0", Date: "d", Commit: "c"})
	}))
	defer srv.Close()

	v, err := newTestAdapter(t, srv.URL).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.VersionResponse{Version: "1.0.0", Date: "d", Commit: "c"}, v)
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":"bad room"}`, wantErr: ErrBadRequest, wantMsg: "bad room"},
		{name: "not found", status: http.StatusNotFound, body: `{"error":"room not found"}`, wantErr: ErrNotFound, wantMsg: "room not found"},
		{name: "internal", status: http.StatusInternalServerError, body: "oops", wantErr: ErrInternalServerError, wantMsg: "oops"},
		{name: "bad gateway", status: http.StatusBadGateway, wantErr: ErrBadGateway},
		{name: "unavailable", status: http.StatusServiceUnavailable, wantErr: ErrServiceUnavailable},
		{name: "teapot", status: http.StatusTeapot, wantMsg: "http 418: I'm a teapot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestAdapter(t, srv.URL).Version(context.Background())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestListRooms_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url).ListRooms(context.Background())
	assert.ErrorContains(t, err, "list rooms request")
}
