package boq

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternalCode_Compute(t *testing.T) {
	item := LineItem{
		Category: CategoryCompute,
		VMConfig: &VMConfig{
			VCPU:      4,
			RAMGB:     8,
			StorageGB: 50,
			OS:        "windows-2022",
			Features:  []string{"backup", "antivirus", "sql-server", "monitoring"},
		},
	}

	code := InternalCode(item)
	assert.Equal(t, "CI-4C8R50S-WINDOWS-BKP-AV-SQL-MON", code)
}

func TestInternalCode_ComputeProperty(t *testing.T) {
	// Every compute code starts with CI- and embeds the configured vCPU and
	// RAM values verbatim.
	configs := []VMConfig{
		{VCPU: 2, RAMGB: 4, StorageGB: 40, OS: "ubuntu-22.04"},
		{VCPU: 16, RAMGB: 64, StorageGB: 500, OS: "rhel-9"},
		{VCPU: 96, RAMGB: 384, StorageGB: 2000, OS: "windows-2019", Features: []string{"backup"}},
	}

	for _, cfg := range configs {
		item := LineItem{Category: CategoryCompute, VMConfig: &cfg}
		code := InternalCode(item)
		require.True(t, strings.HasPrefix(code, "CI-"), "code %q missing prefix", code)
		assert.Contains(t, code, fmt.Sprintf("%dC", cfg.VCPU))
		assert.Contains(t, code, fmt.Sprintf("%dR", cfg.RAMGB))
	}
}

func TestInternalCode_Storage(t *testing.T) {
	item := LineItem{
		Category:      CategoryStorage,
		StorageConfig: &StorageConfig{SizeGB: 500, Type: "ssd", IOPS: 3000},
	}
	assert.Equal(t, "ST-500G-SSD-I3K", InternalCode(item))

	item.StorageConfig.IOPS = 500
	assert.Equal(t, "ST-500G-SSD-I500", InternalCode(item))
}

func TestInternalCode_Network(t *testing.T) {
	item := LineItem{
		Category:      CategoryNetwork,
		NetworkConfig: &NetworkConfig{BandwidthMbps: 100},
	}
	assert.Equal(t, "NW-100M", InternalCode(item))

	item.NetworkConfig.StaticIP = true
	item.NetworkConfig.Firewall = true
	assert.Equal(t, "NW-100M-SIP-FW", InternalCode(item))
}

func TestInternalCode_OtherCategories(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
		want string
	}{
		{
			name: "security",
			item: LineItem{Category: CategorySecurity, FirewallConfig: &FirewallConfig{RuleSet: "enterprise", Throughput: 500}},
			want: "SEC-FW-ENTERPRISE-500M",
		},
		{
			name: "backup",
			item: LineItem{Category: CategoryBackup, BackupConfig: &BackupConfig{SizeGB: 1000, RetentionDays: 30, Frequency: "daily"}},
			want: "BKP-1000G-DAILY-R30",
		},
		{
			name: "vpn",
			item: LineItem{Category: CategoryVPN, VPNConfig: &VPNConfig{ConnectionType: "site-to-site", Tunnels: 2}},
			want: "VPN-SITE-TO-SITE-T2",
		},
		{
			name: "internet",
			item: LineItem{Category: CategoryInternet, InternetConfig: &InternetConfig{BandwidthMbps: 100, LinkType: "dedicated"}},
			want: "INET-100M-DEDICATED",
		},
		{
			name: "custom",
			item: LineItem{Category: CategoryCustom, CustomConfig: &CustomConfig{Label: "Managed SAP BASIS"}},
			want: "CUST-MANAGED-SAP-BASI",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InternalCode(tt.item))
		})
	}
}

func TestInternalCode_MissingConfigKeepsExisting(t *testing.T) {
	item := LineItem{
		Category:     CategoryCompute,
		InternalCode: "LEGACY-CODE",
	}
	assert.Equal(t, "LEGACY-CODE", InternalCode(item))

	item.Category = Category("Mystery")
	assert.Equal(t, "LEGACY-CODE", InternalCode(item))
}

func TestParseCategory(t *testing.T) {
	for _, raw := range []string{"Compute", "COMPUTE", "compute", " compute "} {
		cat, ok := ParseCategory(raw)
		require.True(t, ok, "failed to parse %q", raw)
		assert.Equal(t, CategoryCompute, cat)
	}

	_, ok := ParseCategory("warehouse")
	assert.False(t, ok)
}
