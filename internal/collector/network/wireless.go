package network

import (
	"context"
	"strings"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// Wireless inspects the security mode of the active Wi-Fi connection.
// Hosts without wireless hardware return a result with the Error
// field set so the analyzer treats it as not assessed.
func (c *Collector) Wireless(ctx context.Context) *types.WirelessInfo {
	var info types.WirelessInfo
	switch c.goos {
	case "windows":
		info = c.windowsWireless(ctx)
	case "darwin":
		info = c.darwinWireless(ctx)
	default:
		info = c.linuxWireless(ctx)
	}
	return &info
}

func (c *Collector) linuxWireless(ctx context.Context) types.WirelessInfo {
	out, err := c.runner.Run(ctx, "nmcli", "-t", "-f", "ACTIVE,SSID,SECURITY", "dev", "wifi")
	if err != nil {
		return types.WirelessInfo{Security: "unknown", Error: err.Error()}
	}
	return parseNmcliWifi(out)
}

func (c *Collector) darwinWireless(ctx context.Context) types.WirelessInfo {
	out, err := c.runner.Run(ctx,
		"/System/Library/PrivateFrameworks/Apple80211.framework/Versions/Current/Resources/airport", "-I")
	if err != nil {
		return types.WirelessInfo{Security: "unknown", Error: err.Error()}
	}
	return parseAirportInfo(out)
}

func (c *Collector) windowsWireless(ctx context.Context) types.WirelessInfo {
	out, err := c.runner.Run(ctx, "netsh", "wlan", "show", "interfaces")
	if err != nil {
		return types.WirelessInfo{Security: "unknown", Error: err.Error()}
	}
	return parseNetshWlan(out)
}

// parseNmcliWifi reads the active row of terse nmcli wifi output,
// e.g. "yes:HomeNet:WPA2".
func parseNmcliWifi(out string) types.WirelessInfo {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.SplitN(line, ":", 3)
		if len(fields) != 3 || fields[0] != "yes" {
			continue
		}
		return types.WirelessInfo{SSID: fields[1], Security: normalizeSecurity(fields[2])}
	}
	return types.WirelessInfo{Security: "unknown", Error: "no active wireless connection"}
}

// parseAirportInfo reads SSID and link auth from `airport -I`.
func parseAirportInfo(out string) types.WirelessInfo {
	info := types.WirelessInfo{Security: "unknown"}
	for _, line := range strings.Split(out, "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch strings.TrimSpace(key) {
		case "SSID":
			info.SSID = val
		case "link auth":
			info.Security = normalizeSecurity(val)
		}
	}
	if info.SSID == "" {
		info.Error = "no active wireless connection"
	}
	return info
}

// parseNetshWlan reads SSID and authentication from `netsh wlan show
// interfaces`.
func parseNetshWlan(out string) types.WirelessInfo {
	info := types.WirelessInfo{Security: "unknown"}
	for _, line := range strings.Split(out, "\n") {
		key, val, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch strings.TrimSpace(key) {
		case "SSID":
			if info.SSID == "" {
				info.SSID = val
			}
		case "Authentication":
			info.Security = normalizeSecurity(val)
		}
	}
	if info.SSID == "" {
		info.Error = "no active wireless connection"
	}
	return info
}

// normalizeSecurity collapses tool-specific security labels into the
// WEP/WPA/WPA2/WPA3/open taxonomy the analyzer scores against.
func normalizeSecurity(raw string) string {
	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "wpa3"):
		return "WPA3"
	case strings.Contains(lower, "wpa2"):
		return "WPA2"
	case strings.Contains(lower, "wep"):
		return "WEP"
	case strings.Contains(lower, "wpa"):
		return "WPA"
	case lower == "" || strings.Contains(lower, "none") || strings.Contains(lower, "open"):
		return "open"
	default:
		return raw
	}
}
