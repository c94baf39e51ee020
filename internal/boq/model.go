package boq

import "strings"

// Category is the canonical line-item category. Inbound payloads are
// normalized through ParseCategory; the capitalized form is the only one
// persisted or compared against.
type Category string

const (
	CategoryCompute  Category = "Compute"
	CategoryStorage  Category = "Storage"
	CategoryNetwork  Category = "Network"
	CategorySecurity Category = "Security"
	CategoryBackup   Category = "Backup"
	CategoryVPN      Category = "VPN"
	CategoryInternet Category = "Internet"
	CategoryCustom   Category = "Custom"
)

// ParseCategory normalizes a category string case-insensitively.
// Unknown values map to ("", false); callers decide whether to reject or
// fall back to CategoryCustom.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "compute":
		return CategoryCompute, true
	case "storage":
		return CategoryStorage, true
	case "network":
		return CategoryNetwork, true
	case "security", "firewall":
		return CategorySecurity, true
	case "backup":
		return CategoryBackup, true
	case "vpn":
		return CategoryVPN, true
	case "internet":
		return CategoryInternet, true
	case "custom":
		return CategoryCustom, true
	}
	return "", false
}

// VMConfig describes a compute line item.
type VMConfig struct {
	VCPU      int      `json:"vcpu"`
	RAMGB     int      `json:"ram_gb"`
	StorageGB int      `json:"storage_gb"`
	OS        string   `json:"os"` // e.g. "windows-2022", "ubuntu-22.04"
	Features  []string `json:"features,omitempty"`
}

// StorageConfig describes a block/object storage line item.
type StorageConfig struct {
	SizeGB int    `json:"size_gb"`
	Type   string `json:"type"` // SSD, HDD, NVME
	IOPS   int    `json:"iops"`
}

// NetworkConfig describes a network link line item.
type NetworkConfig struct {
	BandwidthMbps int  `json:"bandwidth_mbps"`
	StaticIP      bool `json:"static_ip"`
	Firewall      bool `json:"firewall"`
}

// FirewallConfig describes a security line item.
type FirewallConfig struct {
	RuleSet    string `json:"rule_set"` // standard, advanced, enterprise
	Throughput int    `json:"throughput_mbps"`
}

// BackupConfig describes a backup line item.
type BackupConfig struct {
	SizeGB        int    `json:"size_gb"`
	RetentionDays int    `json:"retention_days"`
	Frequency     string `json:"frequency"` // daily, weekly
}

// VPNConfig describes a VPN line item.
type VPNConfig struct {
	ConnectionType string `json:"connection_type"` // site-to-site, remote-access
	Tunnels        int    `json:"tunnels"`
}

// InternetConfig describes an internet link line item.
type InternetConfig struct {
	BandwidthMbps int    `json:"bandwidth_mbps"`
	LinkType      string `json:"link_type"` // dedicated, shared
}

// CustomConfig carries a free-text label for items outside the standard
// catalog. Category keyword inference on the label happens only on import.
type CustomConfig struct {
	Label string `json:"label"`
	Notes string `json:"notes,omitempty"`
}

// LineItem is one row of a Bill of Quantities. InternalCode, Description,
// FloorPrice and TotalPrice are derived caches: every mutation path goes
// through Derive, which recomputes them from the config.
type LineItem struct {
	Category     Category `json:"category"`
	SKU          string   `json:"sku,omitempty"`
	InternalCode string   `json:"internal_code"`
	Description  string   `json:"description"`
	Quantity     int      `json:"quantity"`

	// All prices are whole currency units.
	FloorPrice int64  `json:"floor_price"`
	UnitPrice  int64  `json:"unit_price"`
	AskPrice   *int64 `json:"ask_price,omitempty"`
	TotalPrice int64  `json:"total_price"`

	RequiresApproval bool `json:"requires_approval"`
	Superseded       bool `json:"superseded,omitempty"`

	VMConfig       *VMConfig       `json:"vm_config,omitempty"`
	StorageConfig  *StorageConfig  `json:"storage_config,omitempty"`
	NetworkConfig  *NetworkConfig  `json:"network_config,omitempty"`
	FirewallConfig *FirewallConfig `json:"fw_config,omitempty"`
	BackupConfig   *BackupConfig   `json:"backup_config,omitempty"`
	VPNConfig      *VPNConfig      `json:"vpn_config,omitempty"`
	InternetConfig *InternetConfig `json:"inet_config,omitempty"`
	CustomConfig   *CustomConfig   `json:"custom_config,omitempty"`
}

// RateCard is the pricing input for the floor-price formula. It is plain
// data so the deriver stays pure; the default card lives in the catalog
// package.
type RateCard struct {
	VCPURate      int64            // per vCPU
	RAMRate       int64            // per GB RAM
	StorageRate   int64            // per GB storage
	OSAdders      map[string]int64 // keyed by OS identifier
	FeatureAdders map[string]int64 // keyed by feature identifier
	SKUFloors     map[string]int64 // per-SKU floor constants
	CustomFloor   int64            // fallback floor for Custom items
}
