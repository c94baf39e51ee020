package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sify-labs/boq-backend/internal/projects/domain"
)

// Handler exposes the persona slot over HTTP.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) get(c *gin.Context) {
	persona, err := h.store.GetPersona(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "persona": persona})
}

type setPersonaReq struct {
	Persona string `json:"persona"`
}

func (h *Handler) set(c *gin.Context) {
	var req setPersonaReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Persona) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if !domain.ValidPersona(req.Persona) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown persona"})
		return
	}

	// Last write wins, unconditionally.
	if err := h.store.SetPersona(c.Request.Context(), req.Persona); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "persona": req.Persona})
}

// Register attaches session routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/persona", h.get)
	rg.PUT("/persona", h.set)
}
