package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sify-labs/boq-backend/internal/boq"
)

// Handler exposes the catalog read endpoints.
type Handler struct {
	rates  boq.RateCard
	prices *ReferencePriceStore // nil when Postgres is disabled
}

func NewHandler(rates boq.RateCard, prices *ReferencePriceStore) *Handler {
	return &Handler{rates: rates, prices: prices}
}

func (h *Handler) listSKUs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "skus": SKUs()})
}

func (h *Handler) getSKU(c *gin.Context) {
	sku, err := Lookup(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown sku"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "sku": sku})
}

func (h *Handler) rateCard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"rates": gin.H{
			"vcpu_rate":      h.rates.VCPURate,
			"ram_rate":       h.rates.RAMRate,
			"storage_rate":   h.rates.StorageRate,
			"os_adders":      h.rates.OSAdders,
			"feature_adders": h.rates.FeatureAdders,
			"custom_floor":   h.rates.CustomFloor,
		},
	})
}

func (h *Handler) referencePrices(c *gin.Context) {
	if h.prices == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "reference prices disabled"})
		return
	}

	vcpu, err := strconv.Atoi(c.DefaultQuery("vcpu", "0"))
	if err != nil || vcpu < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "vcpu required"})
		return
	}
	memoryGB, err := strconv.ParseFloat(c.DefaultQuery("memory_gb", "0"), 64)
	if err != nil || memoryGB <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "memory_gb required"})
		return
	}

	rows, err := h.prices.FindNearest(c.Request.Context(), vcpu, memoryGB, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "prices": rows})
}

// Register attaches catalog routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/skus", h.listSKUs)
	rg.GET("/skus/:id", h.getSKU)
	rg.GET("/rates", h.rateCard)
	rg.GET("/reference-prices", h.referencePrices)
}
