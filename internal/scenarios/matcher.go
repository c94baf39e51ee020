package scenarios

import (
	"strings"

	"github.com/sify-labs/boq-backend/internal/boq"
)

// MatchResult splits a requirement sheet into items the matcher could map to
// catalog categories and items that stay unmatched custom rows.
type MatchResult struct {
	Matched   []boq.LineItem `json:"matched"`
	Unmatched []boq.LineItem `json:"unmatched"`
}

// Match maps scenario rows onto line items. The keyword inference below is
// an import-time heuristic only: items created through the API carry an
// explicit category.
func Match(sc Scenario, rates boq.RateCard) MatchResult {
	var res MatchResult
	for _, row := range sc.Rows {
		item, ok := inferItem(row)
		if !ok {
			item = boq.LineItem{
				Category:     boq.CategoryCustom,
				Quantity:     row.Quantity,
				CustomConfig: &boq.CustomConfig{Label: row.Label},
			}
			boq.Derive(&item, rates, false)
			res.Unmatched = append(res.Unmatched, item)
			continue
		}
		item.Quantity = row.Quantity
		boq.Derive(&item, rates, false)
		res.Matched = append(res.Matched, item)
	}
	return res
}

// inferItem classifies a free-text label by keyword and fills a sensible
// default config for the inferred category.
func inferItem(row Row) (boq.LineItem, bool) {
	label := strings.ToLower(row.Label)

	switch {
	case strings.Contains(label, "vdi"), strings.Contains(label, "vm"), strings.Contains(label, "server"):
		return boq.LineItem{
			Category: boq.CategoryCompute,
			SKU:      "CI-STD",
			VMConfig: &boq.VMConfig{VCPU: 4, RAMGB: 8, StorageGB: 100, OS: "windows-2022"},
		}, true
	case strings.Contains(label, "storage"):
		return boq.LineItem{
			Category:      boq.CategoryStorage,
			SKU:           "ST-BLK",
			StorageConfig: &boq.StorageConfig{SizeGB: 500, Type: "SSD", IOPS: 3000},
		}, true
	case strings.Contains(label, "vpn"):
		return boq.LineItem{
			Category:  boq.CategoryVPN,
			SKU:       "VPN-S2S",
			VPNConfig: &boq.VPNConfig{ConnectionType: "site-to-site", Tunnels: 1},
		}, true
	case strings.Contains(label, "network"), strings.Contains(label, "uplink"):
		return boq.LineItem{
			Category:      boq.CategoryNetwork,
			SKU:           "NW-LINK-100",
			NetworkConfig: &boq.NetworkConfig{BandwidthMbps: 100},
		}, true
	case strings.Contains(label, "firewall"), strings.Contains(label, "security"):
		return boq.LineItem{
			Category:       boq.CategorySecurity,
			SKU:            "SEC-FW-STD",
			FirewallConfig: &boq.FirewallConfig{RuleSet: "standard", Throughput: 500},
		}, true
	case strings.Contains(label, "backup"), strings.Contains(label, "dr "), strings.HasSuffix(label, "dr"):
		return boq.LineItem{
			Category:     boq.CategoryBackup,
			SKU:          "BKP-STD",
			BackupConfig: &boq.BackupConfig{SizeGB: 1000, RetentionDays: 30, Frequency: "daily"},
		}, true
	}
	return boq.LineItem{}, false
}
