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
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all OSINT routes with the router.
//
// Description:
//
//	Registers all /v1/osint/* endpoints with the given Gin router
//	group. The router group should already have any required
//	middleware applied.
//
// Endpoints:
//
//	POST   /v1/osint/search - Start a concurrent skip trace search
//	GET    /v1/osint/search/status - Current per-tool status snapshot
//	GET    /v1/osint/search/stream - Websocket status stream
//	GET    /v1/osint/report - Render the plain-text report
//	POST   /v1/osint/report/export - Write the report to a file
//	GET    /v1/osint/history - List saved searches for a user
//	DELETE /v1/osint/history - Clear saved searches for a user
//	POST   /v1/osint/vehicle - Plate/VIN search links
//	GET    /v1/osint/links/state-courts - State court record links
//	GET    /v1/osint/links/reference - Static people-search portals
//	GET    /v1/osint/health - Service + tool backend health
//
// Example:
//
//	service := osint.NewService(osint.DefaultServiceConfig(), client, store, logger)
//	handlers := osint.NewHandlers(service)
//
//	v1 := router.Group("/v1")
//	osint.RegisterRoutes(v1, handlers)
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	o := rg.Group("/osint")
	{
		o.POST("/search", handlers.HandleSearch)
		o.GET("/search/status", handlers.HandleStatus)
		o.GET("/search/stream", handlers.HandleStream)

		o.GET("/report", handlers.HandleReport)
		o.POST("/report/export", handlers.HandleExportReport)

		o.GET("/history", handlers.HandleHistory)
		o.DELETE("/history", handlers.HandleClearHistory)

		o.POST("/vehicle", handlers.HandleVehicleSearch)

		o.GET("/links/state-courts", handlers.HandleStateCourtLinks)
		o.GET("/links/reference", handlers.HandleReferenceLinks)

		o.GET("/health", handlers.HandleHealth)
	}
}
