package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every API route on router
func RegisterRoutes(router gin.IRouter, h *Handlers) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.GET("/files", h.ListFiles)
		api.POST("/files/copy", h.CopyFiles)
		api.POST("/files/move", h.MoveFiles)
		api.DELETE("/files/delete", h.DeleteFiles)

		api.GET("/selection", h.GetSelection)
		api.POST("/selection", h.UpdateSelection)
	}
}
