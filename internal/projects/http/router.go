package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:public_id", h.get)
	rg.PATCH("/:public_id", h.update)
	rg.DELETE("/:public_id", h.remove)

	rg.POST("/:public_id/items", h.addItem)
	rg.PUT("/:public_id/items/:index", h.editItem)
	rg.DELETE("/:public_id/items/:index", h.removeItem)

	rg.POST("/:public_id/match", h.match)
	rg.POST("/:public_id/submit", h.submit)
	rg.POST("/:public_id/approve", h.approve)
	rg.POST("/:public_id/reject", h.reject)
}

// RegisterArchive attaches the approved-snapshot routes.
func (h *Handler) RegisterArchive(rg *gin.RouterGroup) {
	rg.GET("", h.listArchive)
	rg.GET("/:public_id", h.getArchive)
}
