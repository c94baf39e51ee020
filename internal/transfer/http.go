package transfer

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// 4 MB is generous for a demo snapshot; anything larger is rejected before
// decoding.
const maxSnapshotBytes = 4 << 20

// Handler exposes snapshot export/import over HTTP.
type Handler struct {
	src ProjectSource
}

func NewHandler(src ProjectSource) *Handler {
	return &Handler{src: src}
}

func (h *Handler) export(c *gin.Context) {
	snap, err := Export(c.Request.Context(), h.src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) importSnapshot(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSnapshotBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unreadable body"})
		return
	}
	if len(payload) > maxSnapshotBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": "snapshot too large"})
		return
	}

	n, err := Import(c.Request.Context(), h.src, payload)
	if err != nil {
		if errors.Is(err, ErrInvalidSnapshot) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid data format"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "imported": n})
}

// Register attaches snapshot routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/export", h.export)
	rg.POST("/import", h.importSnapshot)
}
