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
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recoveryops/skiptrace/services/osint/toolclient"
)

// ErrorResponse is the JSON error envelope returned by every handler.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// userIDHeader selects whose history a request reads or writes.
const userIDHeader = "X-User-ID"

// Handlers holds the HTTP handlers for the OSINT service.
type Handlers struct {
	svc *Service
}

// NewHandlers creates the handler set for svc.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc}
}

// getOrCreateRequestID returns the inbound X-Request-ID or mints one.
func getOrCreateRequestID(c *gin.Context) string {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}

func requestUserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(userIDHeader))
}

// SearchResponse acknowledges an accepted search.
type SearchResponse struct {
	SearchID   string    `json:"search_id"`
	Generation uint64    `json:"generation"`
	Tools      []ToolKey `json:"tools"`
}

// TaskView is the wire form of one task's status.
type TaskView struct {
	Key       ToolKey     `json:"key"`
	Label     string      `json:"label"`
	Status    string      `json:"status"`
	Result    *ToolResult `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	StartedAt time.Time   `json:"started_at,omitzero"`
	SettledAt time.Time   `json:"settled_at,omitzero"`
}

func taskViews(tasks []ToolTask) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, TaskView{
			Key:       t.Key,
			Label:     t.Label,
			Status:    t.Status.String(),
			Result:    t.Result,
			Error:     t.Err,
			StartedAt: t.StartedAt,
			SettledAt: t.SettledAt,
		})
	}
	return views
}

// StatusResponse is the board snapshot returned by HandleStatus.
type StatusResponse struct {
	Generation uint64        `json:"generation"`
	Request    SearchRequest `json:"request"`
	Settled    bool          `json:"settled"`
	Tasks      []TaskView    `json:"tasks"`
}

// HandleSearch handles POST /v1/osint/search.
//
// Description:
//
//	Validates the identifier set and starts the concurrent search in
//	the background. The response is an acknowledgement only; progress
//	arrives via the status snapshot or the websocket stream.
//
// Response:
//
//	202 Accepted: SearchResponse
//	400 Bad Request: Malformed JSON body
//	422 Unprocessable Entity: All identifiers blank
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleSearch(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleSearch")

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body: " + err.Error(),
			Code:  "INVALID_BODY",
		})
		return
	}

	gen, keys, err := h.svc.StartSearch(c.Request.Context(), requestUserID(c), req)
	if errors.Is(err, ErrEmptyRequest) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "at least one of name, email, phone, or address is required",
			Code:  "EMPTY_REQUEST",
		})
		return
	}
	if err != nil {
		logger.Error("search start failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to start search: " + err.Error(),
			Code:  "SEARCH_START_FAILED",
		})
		return
	}

	logger.Info("search accepted",
		slog.Uint64("generation", gen),
		slog.Int("tools", len(keys)),
	)

	c.JSON(http.StatusAccepted, SearchResponse{
		SearchID:   requestID,
		Generation: gen,
		Tools:      keys,
	})
}

// HandleStatus handles GET /v1/osint/search/status.
//
// Thread Safety: This method is safe for concurrent use. Read-only
// snapshot of the board.
func (h *Handlers) HandleStatus(c *gin.Context) {
	req, tasks, gen := h.svc.Snapshot()

	settled := true
	for _, t := range tasks {
		if t.Status == StatusRunning {
			settled = false
			break
		}
	}

	c.JSON(http.StatusOK, StatusResponse{
		Generation: gen,
		Request:    req,
		Settled:    settled,
		Tasks:      taskViews(tasks),
	})
}

// HandleReport handles GET /v1/osint/report.
//
// Description:
//
//	Renders the plain-text report for whatever has settled so far. A
//	board with no completed search yields the minimal header document.
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleReport(c *gin.Context) {
	c.String(http.StatusOK, h.svc.Report())
}

// ExportResponse returns the path of a written report file.
type ExportResponse struct {
	Path string `json:"path"`
}

// HandleExportReport handles POST /v1/osint/report/export.
//
// Response:
//
//	200 OK: ExportResponse
//	500 Internal Server Error: File write failed
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleExportReport(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleExportReport")

	path, err := h.svc.Export()
	if err != nil {
		logger.Error("report export failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to export report: " + err.Error(),
			Code:  "EXPORT_FAILED",
		})
		return
	}

	logger.Info("report exported", slog.String("path", path))
	c.JSON(http.StatusOK, ExportResponse{Path: path})
}

// HandleHistory handles GET /v1/osint/history.
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleHistory(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleHistory")

	entries, err := h.svc.History(c.Request.Context(), requestUserID(c))
	if err != nil {
		logger.Error("history list failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to list history: " + err.Error(),
			Code:  "HISTORY_FAILED",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// HandleClearHistory handles DELETE /v1/osint/history.
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleClearHistory(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleClearHistory")

	if err := h.svc.ClearHistory(c.Request.Context(), requestUserID(c)); err != nil {
		logger.Error("history clear failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to clear history: " + err.Error(),
			Code:  "HISTORY_FAILED",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// HandleStateCourtLinks handles GET /v1/osint/links/state-courts.
//
// Query Parameters:
//
//	name: Subject name (required)
//	state: 2-letter state code (optional)
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleStateCourtLinks(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "name parameter is required",
			Code:  "MISSING_PARAMETER",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":  name,
		"state": strings.ToUpper(strings.TrimSpace(c.Query("state"))),
		"links": StateCourtLinks(name, c.Query("state")),
	})
}

// HandleReferenceLinks handles GET /v1/osint/links/reference.
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleReferenceLinks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"links": StaticReferenceLinks()})
}

// HandleVehicleSearch handles POST /v1/osint/vehicle.
//
// Description:
//
//	Forwards a plate/VIN lookup to the tool backend. The result is
//	remembered and appended to subsequent reports. Runs synchronously;
//	vehicle search is not part of the person-search dispatch table.
//
// Response:
//
//	200 OK: toolclient.VehicleSearchResult
//	400 Bad Request: Malformed body or no plate/VIN
//	502 Bad Gateway: Tool backend failed
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleVehicleSearch(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleVehicleSearch")

	var req toolclient.VehicleSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body: " + err.Error(),
			Code:  "INVALID_BODY",
		})
		return
	}
	if strings.TrimSpace(req.Plate) == "" && strings.TrimSpace(req.VIN) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "plate or vin is required",
			Code:  "MISSING_PARAMETER",
		})
		return
	}

	res, err := h.svc.VehicleSearch(c.Request.Context(), req)
	if err != nil {
		logger.Error("vehicle search failed", slog.Any("error", err))
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "vehicle search failed: " + err.Error(),
			Code:  "TOOL_BACKEND_FAILED",
		})
		return
	}

	c.JSON(http.StatusOK, res)
}

// HandleHealth handles GET /v1/osint/health.
//
// Description:
//
//	Reports the service as healthy and passes through the tool
//	backend's own health document when reachable. An unreachable
//	backend degrades the status rather than failing the endpoint.
//
// Thread Safety: This method is safe for concurrent use.
func (h *Handlers) HandleHealth(c *gin.Context) {
	backend, err := h.svc.BackendHealth(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"status":  "degraded",
			"backend": gin.H{"status": "unreachable", "error": err.Error()},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"backend": backend,
	})
}
