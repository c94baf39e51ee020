package catalog

import (
	"errors"
	"strings"

	"github.com/sify-labs/boq-backend/internal/boq"
)

var ErrUnknownSKU = errors.New("unknown sku")

// SKU is one orderable entry of the standard catalog.
type SKU struct {
	ID          string       `json:"id"`
	Category    boq.Category `json:"category"`
	Name        string       `json:"name"`
	FloorPrice  int64        `json:"floor_price"`
	Description string       `json:"description,omitempty"`
}

// skus is the standard catalog. Compute and Storage price off the rate card;
// their floor here is informational only.
var skus = []SKU{
	{ID: "CI-STD", Category: boq.CategoryCompute, Name: "Cloud Instance", FloorPrice: 0, Description: "Priced per vCPU/RAM/Storage rate card"},
	{ID: "ST-BLK", Category: boq.CategoryStorage, Name: "Block Storage", FloorPrice: 0, Description: "Priced per GB rate card"},
	{ID: "NW-LINK-100", Category: boq.CategoryNetwork, Name: "Network Link 100 Mbps", FloorPrice: 2500},
	{ID: "NW-LINK-1000", Category: boq.CategoryNetwork, Name: "Network Link 1 Gbps", FloorPrice: 9000},
	{ID: "SEC-FW-STD", Category: boq.CategorySecurity, Name: "Managed Firewall Standard", FloorPrice: 4500},
	{ID: "SEC-FW-ENT", Category: boq.CategorySecurity, Name: "Managed Firewall Enterprise", FloorPrice: 12000},
	{ID: "BKP-STD", Category: boq.CategoryBackup, Name: "Managed Backup", FloorPrice: 1800},
	{ID: "VPN-S2S", Category: boq.CategoryVPN, Name: "Site-to-Site VPN", FloorPrice: 1500},
	{ID: "VPN-RA", Category: boq.CategoryVPN, Name: "Remote Access VPN", FloorPrice: 900},
	{ID: "INET-DED-100", Category: boq.CategoryInternet, Name: "Dedicated Internet 100 Mbps", FloorPrice: 6000},
	{ID: "INET-SHR-100", Category: boq.CategoryInternet, Name: "Shared Internet 100 Mbps", FloorPrice: 2200},
}

// SKUs returns the standard catalog.
func SKUs() []SKU {
	out := make([]SKU, len(skus))
	copy(out, skus)
	return out
}

// Lookup finds a catalog entry by ID, case-insensitively.
func Lookup(id string) (SKU, error) {
	for _, s := range skus {
		if strings.EqualFold(s.ID, id) {
			return s, nil
		}
	}
	return SKU{}, ErrUnknownSKU
}

// DefaultRateCard returns the standard rate card. customFloor is the fallback
// floor for uncatalogued custom items (config knob, 5000 by default).
func DefaultRateCard(customFloor int64) boq.RateCard {
	floors := make(map[string]int64, len(skus))
	for _, s := range skus {
		if s.FloorPrice > 0 {
			floors[s.ID] = s.FloorPrice
		}
	}
	return boq.RateCard{
		VCPURate:    400,
		RAMRate:     200,
		StorageRate: 8,
		OSAdders: map[string]int64{
			"windows-2022": 800,
			"windows-2019": 700,
			"rhel-9":       500,
			"ubuntu-22.04": 0,
			"ubuntu-20.04": 0,
		},
		FeatureAdders: map[string]int64{
			"antivirus":  150,
			"backup":     300,
			"sql-server": 2000,
			"monitoring": 100,
		},
		SKUFloors:   floors,
		CustomFloor: customFloor,
	}
}
