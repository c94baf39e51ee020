package boq

import (
	"fmt"
	"strings"
)

// featureAbbrev is the fixed abbreviation table for compute feature tags.
var featureAbbrev = map[string]string{
	"antivirus":  "AV",
	"backup":     "BKP",
	"sql-server": "SQL",
}

// InternalCode derives the human-readable product code for an item from its
// category config. Items whose category is unknown or whose config is missing
// keep their existing code unchanged.
func InternalCode(item LineItem) string {
	switch item.Category {
	case CategoryCompute:
		if item.VMConfig != nil {
			return computeCode(*item.VMConfig)
		}
	case CategoryStorage:
		if item.StorageConfig != nil {
			return storageCode(*item.StorageConfig)
		}
	case CategoryNetwork:
		if item.NetworkConfig != nil {
			return networkCode(*item.NetworkConfig)
		}
	case CategorySecurity:
		if item.FirewallConfig != nil {
			return firewallCode(*item.FirewallConfig)
		}
	case CategoryBackup:
		if item.BackupConfig != nil {
			return backupCode(*item.BackupConfig)
		}
	case CategoryVPN:
		if item.VPNConfig != nil {
			return vpnCode(*item.VPNConfig)
		}
	case CategoryInternet:
		if item.InternetConfig != nil {
			return internetCode(*item.InternetConfig)
		}
	case CategoryCustom:
		if item.CustomConfig != nil {
			return customCode(*item.CustomConfig)
		}
	}
	return item.InternalCode
}

// Description derives the display description for an item. Custom items keep
// their label; everything else is generated from the config.
func Description(item LineItem) string {
	switch item.Category {
	case CategoryCompute:
		if c := item.VMConfig; c != nil {
			d := fmt.Sprintf("Cloud Instance %d vCPU / %d GB RAM / %d GB Storage, %s", c.VCPU, c.RAMGB, c.StorageGB, c.OS)
			if len(c.Features) > 0 {
				d += " with " + strings.Join(c.Features, ", ")
			}
			return d
		}
	case CategoryStorage:
		if c := item.StorageConfig; c != nil {
			return fmt.Sprintf("%s Storage %d GB @ %d IOPS", strings.ToUpper(c.Type), c.SizeGB, c.IOPS)
		}
	case CategoryNetwork:
		if c := item.NetworkConfig; c != nil {
			d := fmt.Sprintf("Network Link %d Mbps", c.BandwidthMbps)
			if c.StaticIP {
				d += ", static IP"
			}
			if c.Firewall {
				d += ", firewall"
			}
			return d
		}
	case CategorySecurity:
		if c := item.FirewallConfig; c != nil {
			return fmt.Sprintf("Managed Firewall (%s rule set, %d Mbps)", c.RuleSet, c.Throughput)
		}
	case CategoryBackup:
		if c := item.BackupConfig; c != nil {
			return fmt.Sprintf("Backup %d GB, %s, %d day retention", c.SizeGB, c.Frequency, c.RetentionDays)
		}
	case CategoryVPN:
		if c := item.VPNConfig; c != nil {
			return fmt.Sprintf("VPN %s, %d tunnel(s)", c.ConnectionType, c.Tunnels)
		}
	case CategoryInternet:
		if c := item.InternetConfig; c != nil {
			return fmt.Sprintf("Internet Link %d Mbps (%s)", c.BandwidthMbps, c.LinkType)
		}
	case CategoryCustom:
		if c := item.CustomConfig; c != nil && c.Label != "" {
			return c.Label
		}
	}
	return item.Description
}

func computeCode(c VMConfig) string {
	code := fmt.Sprintf("CI-%dC%dR%dS-%s", c.VCPU, c.RAMGB, c.StorageGB, osTag(c.OS))
	for _, f := range c.Features {
		code += "-" + featureTag(f)
	}
	return code
}

// osTag is the first token of the OS identifier, uppercased:
// "windows-2022" -> "WINDOWS".
func osTag(os string) string {
	tok := strings.FieldsFunc(strings.TrimSpace(os), func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	if len(tok) == 0 {
		return "OS"
	}
	return strings.ToUpper(tok[0])
}

func featureTag(f string) string {
	key := strings.ToLower(strings.TrimSpace(f))
	if abbr, ok := featureAbbrev[key]; ok {
		return abbr
	}
	if len(key) > 3 {
		key = key[:3]
	}
	return strings.ToUpper(key)
}

func storageCode(c StorageConfig) string {
	return fmt.Sprintf("ST-%dG-%s-I%s", c.SizeGB, strings.ToUpper(c.Type), iopsTag(c.IOPS))
}

// iopsTag renders IOPS >= 1000 as "{n}K".
func iopsTag(iops int) string {
	if iops >= 1000 {
		return fmt.Sprintf("%dK", iops/1000)
	}
	return fmt.Sprintf("%d", iops)
}

func networkCode(c NetworkConfig) string {
	code := fmt.Sprintf("NW-%dM", c.BandwidthMbps)
	if c.StaticIP {
		code += "-SIP"
	}
	if c.Firewall {
		code += "-FW"
	}
	return code
}

func firewallCode(c FirewallConfig) string {
	return fmt.Sprintf("SEC-FW-%s-%dM", strings.ToUpper(sanitizeToken(c.RuleSet)), c.Throughput)
}

func backupCode(c BackupConfig) string {
	return fmt.Sprintf("BKP-%dG-%s-R%d", c.SizeGB, strings.ToUpper(sanitizeToken(c.Frequency)), c.RetentionDays)
}

func vpnCode(c VPNConfig) string {
	return fmt.Sprintf("VPN-%s-T%d", strings.ToUpper(sanitizeToken(c.ConnectionType)), c.Tunnels)
}

func internetCode(c InternetConfig) string {
	return fmt.Sprintf("INET-%dM-%s", c.BandwidthMbps, strings.ToUpper(sanitizeToken(c.LinkType)))
}

func customCode(c CustomConfig) string {
	tag := strings.ToUpper(sanitizeToken(c.Label))
	if tag == "" {
		tag = "ITEM"
	}
	if len(tag) > 16 {
		tag = tag[:16]
	}
	return "CUST-" + tag
}

// sanitizeToken keeps letters and digits and joins words with hyphens, so
// free-text labels become stable code fragments.
func sanitizeToken(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
