// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package osint

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/recoveryops/skiptrace/services/osint/history"
	"github.com/recoveryops/skiptrace/services/osint/toolclient"
)

func newTestRouter(t *testing.T, backendURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := DefaultServiceConfig()
	cfg.ExportDir = t.TempDir()

	client := toolclient.NewClientWithConfig(backendURL, "")
	svc := NewService(cfg, client, history.Disabled(), nil)
	handlers := NewHandlers(svc)

	router := gin.New()
	v1 := router.Group("/v1")
	RegisterRoutes(v1, handlers)
	return router
}

func TestHandleSearchRejectsEmptyRequest(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	body := strings.NewReader(`{"name": "  ", "state": "LA"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/osint/search", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	var errResp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errResp.Code != "EMPTY_REQUEST" {
		t.Errorf("code = %q, want EMPTY_REQUEST", errResp.Code)
	}
}

func TestHandleSearchAccepts(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"dorks": [], "registered_on": []}`))
	}))
	defer backend.Close()

	router := newTestRouter(t, backend.URL)

	body := strings.NewReader(`{"email": "j@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/osint/search", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", w.Code, w.Body.String())
	}
	var ack SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if ack.Generation == 0 {
		t.Error("ack has zero generation")
	}
	want := []ToolKey{ToolHolehe, ToolGoogleLookup, ToolEmailDorks}
	if len(ack.Tools) != len(want) {
		t.Fatalf("tools = %v, want %v", ack.Tools, want)
	}
	for i, k := range want {
		if ack.Tools[i] != k {
			t.Errorf("tools[%d] = %s, want %s", i, ack.Tools[i], k)
		}
	}
}

func TestHandleStatusSnapshot(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/v1/osint/search/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var status StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if len(status.Tasks) != len(AllTools) {
		t.Errorf("snapshot has %d tasks, want %d", len(status.Tasks), len(AllTools))
	}
	if !status.Settled {
		t.Error("idle board reported as unsettled")
	}
	for _, task := range status.Tasks {
		if task.Status != "idle" {
			t.Errorf("task %s = %s, want idle before any search", task.Key, task.Status)
		}
	}
}

func TestHandleReportBeforeAnySearch(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/v1/osint/report", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "SKIP TRACE REPORT") {
		t.Error("minimal report missing header")
	}
}

func TestHandleStateCourtLinksValidation(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/v1/osint/links/state-courts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing name: status = %d, want 400", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/osint/links/state-courts?name=John+Smith&state=la", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "pacer.uscourts.gov") {
		t.Error("response missing federal links")
	}
}

func TestHandleHistoryWithDisabledStore(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/v1/osint/history", nil)
	req.Header.Set("X-User-ID", "alice")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Entries []history.Entry `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Entries) != 0 {
		t.Errorf("disabled store returned entries: %v", resp.Entries)
	}
}

func TestHandleVehicleSearchValidation(t *testing.T) {
	router := newTestRouter(t, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodPost, "/v1/osint/vehicle", strings.NewReader(`{"state": "LA"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("plate-less request: status = %d, want 400", w.Code)
	}
}
