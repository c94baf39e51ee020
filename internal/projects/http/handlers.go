package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sify-labs/boq-backend/internal/boq"
	"github.com/sify-labs/boq-backend/internal/projects/domain"
	"github.com/sify-labs/boq-backend/internal/scenarios"
	"github.com/sify-labs/boq-backend/internal/session"
)

type createReq struct {
	CustomerName string `json:"customer_name"`
	ProjectName  string `json:"project_name"`
	FlowType     string `json:"flow_type"`
	ContractTerm int    `json:"contract_term_months"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.ProjectName) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if req.FlowType == "" {
		req.FlowType = domain.FlowStandard
	}

	p, err := h.svc.Create(c.Request.Context(), &domain.CreateProjectRequest{
		CustomerName: req.CustomerName,
		ProjectName:  req.ProjectName,
		FlowType:     req.FlowType,
		ContractTerm: req.ContractTerm,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidFlowType) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid flow type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		h.renderErr(c, err)
		return
	}
	sc := session.FromGin(c)
	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"project":     p,
		"total_price": h.svc.Totals(p),
		"can_act":     h.svc.CanAct(sc.Persona, p),
	})
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("public_id")); err != nil {
		h.renderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type updateReq struct {
	CustomerName string `json:"customer_name"`
	ProjectName  string `json:"project_name"`
	ContractTerm *int   `json:"contract_term_months"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p, err := h.svc.UpdateMeta(c.Request.Context(), c.Param("public_id"),
		req.CustomerName, req.ProjectName, req.ContractTerm)
	if err != nil {
		h.renderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type itemReq struct {
	Category string `json:"category"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	AskPrice *int64 `json:"ask_price"`
	// Optional caller-entered unit price; kept through re-derivation.
	UnitPrice *int64 `json:"unit_price"`

	VMConfig       *boq.VMConfig       `json:"vm_config"`
	StorageConfig  *boq.StorageConfig  `json:"storage_config"`
	NetworkConfig  *boq.NetworkConfig  `json:"network_config"`
	FirewallConfig *boq.FirewallConfig `json:"fw_config"`
	BackupConfig   *boq.BackupConfig   `json:"backup_config"`
	VPNConfig      *boq.VPNConfig      `json:"vpn_config"`
	InternetConfig *boq.InternetConfig `json:"inet_config"`
	CustomConfig   *boq.CustomConfig   `json:"custom_config"`
}

func (r itemReq) toItem() (boq.LineItem, bool) {
	cat, ok := boq.ParseCategory(r.Category)
	if !ok {
		return boq.LineItem{}, false
	}
	item := boq.LineItem{
		Category:       cat,
		SKU:            r.SKU,
		Quantity:       r.Quantity,
		AskPrice:       r.AskPrice,
		VMConfig:       r.VMConfig,
		StorageConfig:  r.StorageConfig,
		NetworkConfig:  r.NetworkConfig,
		FirewallConfig: r.FirewallConfig,
		BackupConfig:   r.BackupConfig,
		VPNConfig:      r.VPNConfig,
		InternetConfig: r.InternetConfig,
		CustomConfig:   r.CustomConfig,
	}
	if r.UnitPrice != nil {
		item.UnitPrice = *r.UnitPrice
	}
	return item, true
}

func (h *Handler) addItem(c *gin.Context) {
	var req itemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	item, ok := req.toItem()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown category"})
		return
	}

	p, saved, err := h.svc.AddItem(c.Request.Context(), c.Param("public_id"), item)
	if err != nil {
		h.renderErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"ok":          true,
		"item":        saved,
		"below_floor": saved.RequiresApproval,
		"total_price": h.svc.Totals(p),
	})
}

func (h *Handler) editItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid item index"})
		return
	}

	var req itemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	item, ok := req.toItem()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown category"})
		return
	}

	p, saved, err := h.svc.EditItem(c.Request.Context(), c.Param("public_id"), index, item, req.UnitPrice != nil)
	if err != nil {
		h.renderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"item":        saved,
		"below_floor": saved.RequiresApproval,
		"total_price": h.svc.Totals(p),
	})
}

func (h *Handler) removeItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid item index"})
		return
	}

	p, err := h.svc.RemoveItem(c.Request.Context(), c.Param("public_id"), index)
	if err != nil {
		h.renderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "total_price": h.svc.Totals(p)})
}

type matchReq struct {
	ScenarioID string `json:"scenario_id"`
}

func (h *Handler) match(c *gin.Context) {
	var req matchReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ScenarioID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, res, err := h.svc.MatchScenario(c.Request.Context(), c.Param("public_id"), req.ScenarioID)
	if err != nil {
		if errors.Is(err, scenarios.ErrUnknownScenario) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "scenario not found"})
			return
		}
		h.renderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":        true,
		"project":   p,
		"matched":   res.Matched,
		"unmatched": res.Unmatched,
	})
}

type reviewReq struct {
	Comments string `json:"comments"`
}

func (h *Handler) submit(c *gin.Context) {
	sc := session.FromGin(c)
	p, err := h.svc.Submit(c.Request.Context(), c.Param("public_id"), sc.Persona)
	if err != nil {
		h.renderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) approve(c *gin.Context) {
	var req reviewReq
	_ = c.ShouldBindJSON(&req)

	sc := session.FromGin(c)
	p, err := h.svc.Approve(c.Request.Context(), c.Param("public_id"), sc.Persona, req.Comments)
	if err != nil {
		h.renderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) reject(c *gin.Context) {
	var req reviewReq
	_ = c.ShouldBindJSON(&req)

	sc := session.FromGin(c)
	p, err := h.svc.Reject(c.Request.Context(), c.Param("public_id"), sc.Persona, req.Comments)
	if err != nil {
		h.renderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) listArchive(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "archive disabled"})
		return
	}
	entries, err := h.archive.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "snapshots": entries})
}

func (h *Handler) getArchive(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "archive disabled"})
		return
	}
	entry, err := h.archive.Get(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		h.renderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "snapshot": entry})
}

// renderErr maps domain sentinels onto HTTP statuses. Permission-denied is
// deliberately not an error surface here; view-only rendering happens through
// can_act on reads, and acting without permission is a 403.
func (h *Handler) renderErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
	case errors.Is(err, domain.ErrNotPermitted):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "persona may not act on this status"})
	case errors.Is(err, domain.ErrCommentRequired):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "rejection requires a comment"})
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrAlreadyApproved):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, boq.ErrIndexOutOfRange), errors.Is(err, boq.ErrNoConfig), errors.Is(err, boq.ErrBadQuantity):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
