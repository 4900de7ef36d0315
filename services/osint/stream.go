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
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamPingInterval = 30 * time.Second
)

var streamUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The UI is served from arbitrary local origins during development.
	CheckOrigin: func(*http.Request) bool { return true },
}

// HandleStream handles GET /v1/osint/search/stream.
//
// Description:
//
//	Upgrades to a websocket and pushes TaskUpdate events as tools
//	transition, ending each search with a complete=true event. On
//	connect the client first receives one synthetic update per
//	non-idle task so a late subscriber sees current state without
//	polling. The subscription is dropped when the client disconnects
//	or falls too far behind.
//
// Thread Safety: This method is safe for concurrent use. Each
// connection owns its own subscription channel.
func (h *Handlers) HandleStream(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleStream")

	conn, err := streamUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		logger.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	updates := h.svc.Board().Subscribe()
	defer h.svc.Board().Unsubscribe(updates)

	// Reader goroutine: we never expect client frames, but reading is
	// what surfaces close frames and connection loss.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Replay current non-idle state so the client starts in sync.
	_, tasks, gen := h.svc.Snapshot()
	for _, t := range tasks {
		if t.Status == StatusIdle {
			continue
		}
		u := TaskUpdate{
			Generation: gen,
			Key:        t.Key,
			Status:     t.Status.String(),
			Err:        t.Err,
		}
		if err := writeUpdate(conn, u); err != nil {
			return
		}
	}

	ticker := time.NewTicker(streamPingInterval)
	defer ticker.Stop()

	for {
		select {
		case u, ok := <-updates:
			if !ok {
				return
			}
			if err := writeUpdate(conn, u); err != nil {
				logger.Debug("stream write failed", slog.Any("error", err))
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(streamWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

func writeUpdate(conn *websocket.Conn, u TaskUpdate) error {
	conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(u)
}
